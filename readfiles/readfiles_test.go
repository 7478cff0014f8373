package readfiles

import (
	"path/filepath"
	"testing"

	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/batchatco/go-native-netcdf/netcdf/cdf"
	"github.com/batchatco/go-native-netcdf/netcdf/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrivkah3/convective-adjustment/types"
)

func TestFlatten(t *testing.T) {
	{ // float64 (time, mode, depth)
		v := [][][]float64{
			{{1, 2, 3}},
			{{4, 5, 6}},
		}
		data, nt, nm, nd, err := Flatten3(v)
		require.NoError(t, err)
		assert.Equal(t, [3]int{2, 1, 3}, [3]int{nt, nm, nd})
		assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, data)
	}
	{ // float32 is widened
		v := [][][]float32{
			{{1.5, 2}, {3, 4}},
		}
		data, nt, nm, nd, err := Flatten3(v)
		require.NoError(t, err)
		assert.Equal(t, [3]int{1, 2, 2}, [3]int{nt, nm, nd})
		assert.Equal(t, []float64{1.5, 2, 3, 4}, data)
	}
	{ // Missing mode axis
		data, nt, nm, nd, err := Flatten3([][]float64{{1, 2}, {3, 4}, {5, 6}})
		require.NoError(t, err)
		assert.Equal(t, [3]int{3, 1, 2}, [3]int{nt, nm, nd})
		assert.Len(t, data, 6)
	}
	{ // Ragged and unsupported storage
		_, _, _, _, err := Flatten3([][][]float64{{{1, 2}}, {{3}}})
		assert.Error(t, err)
		_, _, _, _, err = Flatten3([]complex128{1})
		assert.Error(t, err)
	}
	{ // Coordinates
		c, err := Flatten1([]float32{0, 0.5})
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 0.5}, c)
		c, err = Flatten1([][]float64{{1}, {2}})
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 2}, c)
		_, err = Flatten1([][]float64{{1, 2}})
		assert.Error(t, err)
		_, err = Flatten1("z")
		assert.Error(t, err)
	}
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "analysis", "analysis_s1.h5"))
	assert.ErrorIs(t, err, ErrSourceNotFound)
}

func TestScaleNames(t *testing.T) {
	sn := ScaleNames{Time: "t"}.Merge(DefaultScales)
	assert.Equal(t, "tasks", sn.TaskGroup)
	assert.Equal(t, "scales", sn.ScaleGroup)
	assert.Equal(t, "t", sn.Time)
	assert.Equal(t, "z", sn.Depth)
}

func TestMemStore(t *testing.T) {
	f, err := types.NewTimeSeriesField("N2 x=1", 1, 1, 2, []float64{1, 2}, []float64{0}, []float64{0, 1})
	require.NoError(t, err)
	ms := NewMemStore()
	ms.Add("A/analysis/analysis_s1.h5", f)
	{
		_, err = ms.Open("B/analysis/analysis_s1.h5")
		assert.ErrorIs(t, err, ErrSourceNotFound)
	}
	{
		ds, err := ms.Open("A/analysis/analysis_s1.h5")
		require.NoError(t, err)
		assert.Equal(t, []string{"N2 x=1"}, ds.Fields())
		got, err := ds.Field("N2 x=1")
		require.NoError(t, err)
		assert.Same(t, f, got)
		_, err = ds.Field("N2 x=2")
		assert.ErrorIs(t, err, ErrFieldNotFound)
		_, openNow, _ := ms.Stats()
		assert.Equal(t, 1, openNow)
		require.NoError(t, ds.Close())
		require.NoError(t, ds.Close())
		opens, openNow, maxOpen := ms.Stats()
		assert.Equal(t, [3]int{1, 0, 1}, [3]int{opens, openNow, maxOpen})
	}
}

type cdfVar struct {
	name string
	dims []string
	vals interface{}
}

// writeCDF writes a flat NetCDF file holding vars in order
func writeCDF(t *testing.T, path string, vars ...cdfVar) {
	cw, err := cdf.OpenWriter(path)
	require.NoError(t, err)
	for _, v := range vars {
		attrs, err := util.NewOrderedMap([]string{"long_name"},
			map[string]interface{}{"long_name": v.name})
		require.NoError(t, err)
		require.NoError(t, cw.AddVar(v.name, api.Variable{
			Values:     v.vals,
			Dimensions: v.dims,
			Attributes: attrs,
		}), v.name)
	}
	require.NoError(t, cw.Close())
}

// n2Values stores 10*t + d at every (t, 0, d)
func n2Values(nt, nd int) (v [][][]float64) {
	v = make([][][]float64, nt)
	for it := range v {
		row := make([]float64, nd)
		for d := range row {
			row[d] = float64(10*it + d)
		}
		v[it] = [][]float64{row}
	}
	return
}

func TestOpenFlatFile(t *testing.T) {
	var (
		dir   = t.TempDir()
		depth = []float64{0, 0.25, 0.5, 1}
	)
	{ // Time from the dimension name, depth from the z prefix
		path := filepath.Join(dir, "flat.nc")
		writeCDF(t, path,
			cdfVar{"N2", []string{"t", "mode", "zd"}, n2Values(3, 4)},
			cdfVar{"t", []string{"t"}, []float64{0, 0.5, 1}},
			cdfVar{"z_coarse", []string{"zc"}, []float64{0, 1}},
			cdfVar{"z_grid", []string{"zd"}, depth},
		)
		ds, err := Open(path)
		require.NoError(t, err)
		defer ds.Close()
		assert.Equal(t, []string{"N2", "t", "z_coarse", "z_grid"}, ds.Fields())
		f, err := ds.Field("N2")
		require.NoError(t, err)
		nt, nm, nd := f.Dims()
		assert.Equal(t, [3]int{3, 1, 4}, [3]int{nt, nm, nd})
		assert.Equal(t, 23., f.At(2, 0, 3))
		assert.Equal(t, []float64{10, 11, 12, 13}, f.Row(1, 0))
		assert.Equal(t, []float64{0, 0.5, 1}, f.Time)
		// z_coarse sorts first but has the wrong length
		assert.Equal(t, depth, f.Depth)
		_, err = ds.Field("N2 x=1")
		assert.ErrorIs(t, err, ErrFieldNotFound)
	}
	{ // sim_time is preferred, a field without a mode axis has one mode
		path := filepath.Join(dir, "sim_time.nc")
		writeCDF(t, path,
			cdfVar{"N2", []string{"t", "mode", "zd"}, n2Values(2, 4)},
			cdfVar{"b", []string{"t", "zd"}, [][]float64{{1, 2, 3, 4}, {5, 6, 7, 8}}},
			cdfVar{"sim_time", []string{"t"}, []float64{100, 100.5}},
			cdfVar{"t", []string{"t"}, []float64{0, 1}},
			cdfVar{"z", []string{"zd"}, depth},
		)
		ds, err := Open(path)
		require.NoError(t, err)
		f, err := ds.Field("N2")
		require.NoError(t, err)
		assert.Equal(t, []float64{100, 100.5}, f.Time)
		b, err := ds.Field("b")
		require.NoError(t, err)
		assert.Equal(t, 1, b.NM)
		assert.Equal(t, []float64{5, 6, 7, 8}, b.Row(1, 0))
		assert.Equal(t, depth, b.Depth)
		require.NoError(t, ds.Close())
		// Scale names can be overridden
		ds, err = NewOpener(ScaleNames{Time: "t"})(path)
		require.NoError(t, err)
		f, err = ds.Field("N2")
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 1}, f.Time)
		require.NoError(t, ds.Close())
	}
	{ // No time coordinate of the right length
		path := filepath.Join(dir, "no_time.nc")
		writeCDF(t, path,
			cdfVar{"N2", []string{"step", "mode", "zd"}, n2Values(3, 4)},
			cdfVar{"sim_time", []string{"s"}, []float64{0, 1}},
			cdfVar{"z", []string{"zd"}, depth},
		)
		ds, err := Open(path)
		require.NoError(t, err)
		defer ds.Close()
		_, err = ds.Field("N2")
		assert.ErrorIs(t, err, ErrFieldNotFound)
	}
	{ // No depth coordinate
		path := filepath.Join(dir, "no_depth.nc")
		writeCDF(t, path,
			cdfVar{"N2", []string{"t", "mode", "zd"}, n2Values(3, 4)},
			cdfVar{"sim_time", []string{"t"}, []float64{0, 1, 2}},
		)
		ds, err := Open(path)
		require.NoError(t, err)
		defer ds.Close()
		_, err = ds.Field("N2")
		assert.ErrorIs(t, err, ErrFieldNotFound)
	}
}
