package types

import (
	"fmt"
)

/*
TimeSeriesField holds one analysis task as written by the solver: a real valued array indexed
by (time, mode, depth), stored flat in row-major order, together with the time coordinate of the
first axis and the depth coordinate of the last axis.
*/
type TimeSeriesField struct {
	Name       string
	NT, NM, ND int
	Data       []float64 // Data[(t*NM+m)*ND+d]
	Time       []float64 // len NT
	Depth      []float64 // len ND
}

func NewTimeSeriesField(name string, nt, nm, nd int, data, time, depth []float64) (f *TimeSeriesField, err error) {
	switch {
	case nt < 0 || nm < 0 || nd < 0:
		err = fmt.Errorf("field %q: negative dimensions [%d,%d,%d]", name, nt, nm, nd)
	case len(data) != nt*nm*nd:
		err = fmt.Errorf("field %q: have %d values, shape [%d,%d,%d] needs %d",
			name, len(data), nt, nm, nd, nt*nm*nd)
	case len(time) != nt:
		err = fmt.Errorf("field %q: time coordinate length %d, expected %d", name, len(time), nt)
	case len(depth) != nd:
		err = fmt.Errorf("field %q: depth coordinate length %d, expected %d", name, len(depth), nd)
	}
	if err != nil {
		return
	}
	f = &TimeSeriesField{
		Name:  name,
		NT:    nt,
		NM:    nm,
		ND:    nd,
		Data:  data,
		Time:  time,
		Depth: depth,
	}
	return
}

func (f *TimeSeriesField) At(t, m, d int) float64 {
	return f.Data[(t*f.NM+m)*f.ND+d]
}

// Row returns the depth profile stored at time index t and mode m, sharing storage with Data
func (f *TimeSeriesField) Row(t, m int) []float64 {
	var (
		i0 = (t*f.NM + m) * f.ND
	)
	return f.Data[i0 : i0+f.ND]
}

func (f *TimeSeriesField) Dims() (nt, nm, nd int) {
	return f.NT, f.NM, f.ND
}

func (f *TimeSeriesField) String() string {
	var (
		t0, t1 float64
	)
	if f.NT > 0 {
		t0, t1 = f.Time[0], f.Time[f.NT-1]
	}
	return fmt.Sprintf("%s [%d,%d,%d] t=%g..%g", f.Name, f.NT, f.NM, f.ND, t0, t1)
}
