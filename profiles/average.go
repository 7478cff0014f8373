package profiles

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/mrivkah3/convective-adjustment/types"
)

/*
AverageWindow reduces field[w.Start:w.Stop:w.Stride, modeIndex, :] to a depth profile by taking
the arithmetic mean over the selected snapshots at each depth.

Every snapshot carries equal weight whatever the spacing of the time coordinate around it, so on
a non-uniform output cadence this is a sample mean and not a time average.
*/
func AverageWindow(field *types.TimeSeriesField, w types.Window, modeIndex int) (p types.Profile, err error) {
	var (
		slab *mat.Dense
		col  []float64
	)
	if err = checkMode(field, modeIndex); err != nil {
		return
	}
	if err = checkWindow(field, w); err != nil {
		return
	}
	if _, _, nd := field.Dims(); nd == 0 {
		p.Values = []float64{}
		return
	}
	slab = selectRows(field, w, modeIndex)
	nr, nd := slab.Dims()
	col = make([]float64, nr)
	p.Values = make([]float64, nd)
	for d := 0; d < nd; d++ {
		mat.Col(col, d, slab)
		p.Values[d] = stat.Mean(col, nil)
	}
	return
}

// Snapshot returns the depth profile stored at a single time index
func Snapshot(field *types.TimeSeriesField, index, modeIndex int) (p types.Profile, err error) {
	nt, _, nd := field.Dims()
	if err = checkMode(field, modeIndex); err != nil {
		return
	}
	if index < 0 || index >= nt {
		err = fmt.Errorf("%w: snapshot %d of %s, have %d time steps",
			ErrOutOfRangeWindow, index, field.Name, nt)
		return
	}
	p.Values = make([]float64, nd)
	copy(p.Values, field.Row(index, modeIndex))
	return
}

// selectRows gathers the windowed rows of one mode into a (samples x depth) matrix
func selectRows(field *types.TimeSeriesField, w types.Window, modeIndex int) (slab *mat.Dense) {
	var (
		step = w.Step()
		n    = w.Len()
		row  int
	)
	slab = mat.NewDense(n, field.ND, nil)
	for t := w.Start; t < w.Stop; t += step {
		slab.SetRow(row, field.Row(t, modeIndex))
		row++
	}
	return
}

func checkMode(field *types.TimeSeriesField, modeIndex int) error {
	if modeIndex < 0 || modeIndex >= field.NM {
		return fmt.Errorf("%w: mode %d of %s, have %d modes",
			ErrInvalidModeIndex, modeIndex, field.Name, field.NM)
	}
	return nil
}

func checkWindow(field *types.TimeSeriesField, w types.Window) error {
	switch {
	case w.Start < 0 || w.Stop > field.NT || w.Start > w.Stop || w.Step() < 1:
		return fmt.Errorf("%w: [%s) of %s, have %d time steps",
			ErrOutOfRangeWindow, w, field.Name, field.NT)
	case w.Len() == 0:
		return fmt.Errorf("%w: [%s) of %s", ErrEmptyWindow, w, field.Name)
	}
	return nil
}
