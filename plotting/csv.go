package plotting

import (
	"encoding/csv"
	"os"
	"strconv"
)

var CSVHeader = []string{"label", "source", "field", "window", "depth", "value"}

// CSVSink writes every series in long format next to the figure output
type CSVSink struct{}

func (CSVSink) Render(fig *Figure) (err error) {
	var (
		path = WithExt(fig.Output, ".csv")
		f    *os.File
	)
	if err = ensureDir(path); err != nil {
		return
	}
	if f, err = os.Create(path); err != nil {
		return writeErr(path, err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err = w.Write(CSVHeader); err != nil {
		return writeErr(path, err)
	}
	for _, s := range fig.Series {
		window := s.Window.String()
		if s.Snapshot {
			window = strconv.Itoa(s.Window.Start)
		}
		for j, v := range s.Values {
			rec := []string{
				s.Label, s.Source, s.Field, window,
				strconv.FormatFloat(s.Depth[j], 'g', -1, 64),
				strconv.FormatFloat(v, 'g', -1, 64),
			}
			if err = w.Write(rec); err != nil {
				return writeErr(path, err)
			}
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return writeErr(path, err)
	}
	if err = f.Close(); err != nil {
		return writeErr(path, err)
	}
	return
}
