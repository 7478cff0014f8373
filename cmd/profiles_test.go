package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrivkah3/convective-adjustment/InputParameters"
	"github.com/mrivkah3/convective-adjustment/batch"
	"github.com/mrivkah3/convective-adjustment/plotting"
	"github.com/mrivkah3/convective-adjustment/readfiles"
	"github.com/mrivkah3/convective-adjustment/types"
)

func constantField(t *testing.T, name string, nt, nd int, value float64) *types.TimeSeriesField {
	var (
		data  = make([]float64, nt*nd)
		tc    = make([]float64, nt)
		depth = make([]float64, nd)
	)
	for i := range data {
		data[i] = value
	}
	for i := range tc {
		tc[i] = float64(i)
	}
	for i := range depth {
		depth[i] = float64(i)
	}
	f, err := types.NewTimeSeriesField(name, nt, 1, nd, data, tc, depth)
	require.NoError(t, err)
	return f
}

func TestProcessExperiment(t *testing.T) {
	dir := t.TempDir()
	{ // Missing file name
		_, err := processExperiment(&ProfilesRun{})
		assert.Error(t, err)
	}
	{ // Command line switches merge into the file
		fileName := filepath.Join(dir, "experiment.yaml")
		require.NoError(t, os.WriteFile(fileName, []byte(exampleExperiment), 0644))
		ex, err := processExperiment(&ProfilesRun{
			ExperimentFile: fileName, CSV: true, Parallel: true, SQLite: "archive.db"})
		require.NoError(t, err)
		assert.Equal(t, "N2", ex.Quantity)
		assert.Len(t, ex.Sources, 2)
		assert.Equal(t, []string{"200:399"}, ex.Windows)
		assert.True(t, ex.Parallel)
		assert.True(t, ex.Plot.CSV)
		assert.Equal(t, "archive.db", ex.Plot.SQLite)
		assert.Len(t, ex.FieldSpecs(), 2)
	}
	{ // Invalid experiment is reported with the file name
		fileName := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(fileName, []byte("Quantity: N2\n"), 0644))
		_, err := processExperiment(&ProfilesRun{ExperimentFile: fileName})
		require.Error(t, err)
		assert.Contains(t, err.Error(), fileName)
	}
}

func TestBuildSink(t *testing.T) {
	ex := &InputParameters.Experiment{}
	assert.Equal(t, plotting.MultiSink{plotting.PNGSink{}}, buildSink(ex, nil))
	ex.Plot.CSV = true
	ex.Plot.SQLite = "a.db"
	ms := buildSink(ex, &ProfilesRun{Graph: true})
	require.Len(t, ms, 4)
	assert.IsType(t, plotting.CSVSink{}, ms[1])
	assert.Equal(t, plotting.SQLiteSink{Path: "a.db"}, ms[2])
	assert.IsType(t, plotting.DisplaySink{}, ms[3])
}

func TestRunProfiles(t *testing.T) {
	var (
		dir = t.TempDir()
		ms  = readfiles.NewMemStore()
	)
	ms.Add(filepath.Join("A", InputParameters.DefaultDatasetPath), constantField(t, "N2 x=1", 10, 5, 1))
	ms.Add(filepath.Join("B", InputParameters.DefaultDatasetPath), constantField(t, "N2 x=1", 10, 5, 2))
	ex := &InputParameters.Experiment{}
	require.NoError(t, ex.Parse([]byte(`
Quantity: N2
XPositions: ["1", "2"]
Sources: [{Dir: A}, {Dir: B}, {Dir: C}]
Windows: ["0:10"]
Plot: {CSV: true, Output: "`+dir+`/N2_x={x}.png"}
`)))
	results, err := RunProfiles(context.Background(), batch.NewDriver(ms.Open, nil), ex, &ProfilesRun{})
	require.NoError(t, err)
	require.Len(t, results, 2)
	{ // x=1 is present in A and B, C is missing
		r := results[0]
		assert.Equal(t, []string{"A", "B"}, r.Labels())
		assert.Len(t, r.Skipped, 1)
		assert.FileExists(t, filepath.Join(dir, "N2_x=1.png"))
		assert.FileExists(t, filepath.Join(dir, "N2_x=1.csv"))
	}
	{ // x=2 is in no source so no figure is written
		r := results[1]
		assert.Empty(t, r.Series)
		assert.Len(t, r.Skipped, 3)
		assert.NoFileExists(t, filepath.Join(dir, "N2_x=2.png"))
	}
}

func TestInspect(t *testing.T) {
	ms := readfiles.NewMemStore()
	ms.Add("run.h5", constantField(t, "b x=1", 4, 3, 0), constantField(t, "N2 x=1", 4, 3, 0))
	var buf bytes.Buffer
	require.NoError(t, Inspect(&buf, ms.Open, "run.h5"))
	out := buf.String()
	assert.Contains(t, out, "run.h5\n")
	assert.Contains(t, out, "N2 x=1 [4,1,3]")
	assert.Contains(t, out, "b x=1 [4,1,3]")
	assert.Error(t, Inspect(&buf, ms.Open, "missing.h5"))
}

func TestExperimentFiles(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "experiments", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, files)
	for _, fileName := range files {
		ex, err := processExperiment(&ProfilesRun{ExperimentFile: fileName})
		require.NoError(t, err, fileName)
		assert.NotEmpty(t, ex.FieldSpecs(), fileName)
	}
}

func TestSkipMessage(t *testing.T) {
	missing := batch.Skip{Source: "C", Path: "C/analysis/analysis_s1.h5",
		Reason: fmt.Errorf("%w: C/analysis/analysis_s1.h5", readfiles.ErrSourceNotFound)}
	assert.Equal(t, "File C/analysis/analysis_s1.h5 not found, skipped", skipMessage(missing))
	noField := batch.Skip{Source: "A", Path: "A/analysis/analysis_s1.h5",
		Reason: fmt.Errorf("%w: \"N2 x=2\"", readfiles.ErrFieldNotFound)}
	msg := skipMessage(noField)
	assert.NotContains(t, msg, "not found, skipped")
	assert.Contains(t, msg, "A/analysis/analysis_s1.h5 skipped")
	assert.Contains(t, msg, `"N2 x=2"`)
}
