package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	{
		file := filepath.Join(t.TempDir(), "profiles.log")
		require.NoError(t, Init(Options{Level: "info", File: file}))
		GetSugaredLogger().Infow("source skipped", "source", "simrbc10b")
		GetSugaredLogger().Debugw("not written at info level")
		Sync()
		data, err := os.ReadFile(file)
		require.NoError(t, err)
		assert.Contains(t, string(data), "simrbc10b")
		assert.NotContains(t, string(data), "not written")
	}
	{
		assert.Error(t, Init(Options{Level: "loud"}))
	}
	{
		require.NoError(t, Init(Options{Debug: true}))
		assert.NotNil(t, GetSugaredLogger())
	}
}
