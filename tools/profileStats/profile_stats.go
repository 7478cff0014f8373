package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	csvFile string
)

func main() {
	csvFilePtr := flag.String("csvFile", csvFile, "profile CSV written by convadj profiles --csv")
	flag.Parse()
	csvFile = *csvFilePtr
	if len(csvFile) == 0 {
		flag.Usage()
		os.Exit(1)
	}
	fmt.Printf("Input file: %v\n", csvFile)
	f, err := os.Open(csvFile)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	defer f.Close()
	profiles, err := readCSV(f)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	for _, ps := range profiles {
		fmt.Println(ps.Summary())
	}
}

// ProfileSeries is one curve of a figure, as written one row per depth
type ProfileSeries struct {
	label, source, field, window string
	depth, value                 []float64
}

func (ps *ProfileSeries) Add(depth, value float64) {
	ps.depth = append(ps.depth, depth)
	ps.value = append(ps.value, value)
}

func (ps *ProfileSeries) Summary() string {
	var (
		iMax = floats.MaxIdx(ps.value)
		iMin = floats.MinIdx(ps.value)
	)
	return fmt.Sprintf("%s [%s, %s, t=%s] n=%d, min = %8.5g at z=%5.3f, max = %8.5g at z=%5.3f, mean = %8.5g",
		ps.label, ps.source, ps.field, ps.window, len(ps.value),
		ps.value[iMin], ps.depth[iMin], ps.value[iMax], ps.depth[iMax], stat.Mean(ps.value, nil))
}

// readCSV groups rows into series in the order the series first appear
func readCSV(r io.Reader) (profiles []*ProfileSeries, err error) {
	var (
		records      [][]string
		ok           bool
		ps           *ProfileSeries
		depth, value float64
		index        = make(map[[4]string]*ProfileSeries)
	)
	cr := csv.NewReader(bufio.NewReader(r))
	if records, err = cr.ReadAll(); err != nil {
		return
	}
	for i, rec := range records {
		if i == 0 {
			continue
		}
		if len(rec) != 6 {
			return nil, fmt.Errorf("line %d: expected 6 columns, have %d", i+1, len(rec))
		}
		key := [4]string{rec[0], rec[1], rec[2], rec[3]}
		if ps, ok = index[key]; !ok {
			ps = &ProfileSeries{label: rec[0], source: rec[1], field: rec[2], window: rec[3]}
			index[key] = ps
			profiles = append(profiles, ps)
		}
		if depth, err = strconv.ParseFloat(rec[4], 64); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		if value, err = strconv.ParseFloat(rec[5], 64); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		ps.Add(depth, value)
	}
	return
}
