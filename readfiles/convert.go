package readfiles

import (
	"fmt"
)

// Flatten3 converts a nested (time, mode, depth) array into row-major storage
func Flatten3(values interface{}) (data []float64, nt, nm, nd int, err error) {
	switch v := values.(type) {
	case [][][]float64:
		nt, nm, nd = dims3(v)
		data = make([]float64, 0, nt*nm*nd)
		for _, vm := range v {
			for _, vd := range vm {
				if len(vd) != nd {
					err = fmt.Errorf("ragged array, depth %d and %d", len(vd), nd)
					return
				}
				data = append(data, vd...)
			}
		}
	case [][][]float32:
		nt, nm, nd = dims3(v)
		data = make([]float64, 0, nt*nm*nd)
		for _, vm := range v {
			for _, vd := range vm {
				if len(vd) != nd {
					err = fmt.Errorf("ragged array, depth %d and %d", len(vd), nd)
					return
				}
				for _, f := range vd {
					data = append(data, float64(f))
				}
			}
		}
	case [][]float64:
		// A field stored without a mode axis is treated as having a single mode
		nt, nm = len(v), 1
		if nt > 0 {
			nd = len(v[0])
		}
		data = make([]float64, 0, nt*nd)
		for _, vd := range v {
			if len(vd) != nd {
				err = fmt.Errorf("ragged array, depth %d and %d", len(vd), nd)
				return
			}
			data = append(data, vd...)
		}
	default:
		err = fmt.Errorf("unsupported field storage %T, expected a real 3-D array", values)
	}
	if err == nil && len(data) != nt*nm*nd {
		err = fmt.Errorf("ragged array, %d values for shape [%d,%d,%d]", len(data), nt, nm, nd)
	}
	return
}

func dims3[T float32 | float64](v [][][]T) (nt, nm, nd int) {
	nt = len(v)
	if nt > 0 {
		nm = len(v[0])
		if nm > 0 {
			nd = len(v[0][0])
		}
	}
	return
}

// Flatten1 converts a coordinate, accepting a trailing unit axis
func Flatten1(values interface{}) (c []float64, err error) {
	switch v := values.(type) {
	case []float64:
		c = make([]float64, len(v))
		copy(c, v)
	case []float32:
		c = make([]float64, len(v))
		for i, f := range v {
			c[i] = float64(f)
		}
	case [][]float64:
		c = make([]float64, len(v))
		for i, row := range v {
			if len(row) != 1 {
				err = fmt.Errorf("coordinate has shape [%d,%d], expected 1-D", len(v), len(row))
				return
			}
			c[i] = row[0]
		}
	default:
		err = fmt.Errorf("unsupported coordinate storage %T", values)
	}
	return
}
