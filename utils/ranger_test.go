package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRanger(t *testing.T) {
	var (
		i1, i2, s int
		err       error
	)
	// Dimension parsing
	{
		i1, i2, s, err = ParseSlice(":", 10)
		require.NoError(t, err)
		assert.Equal(t, [3]int{0, 10, 1}, [3]int{i1, i2, s})
		i1, i2, _, err = ParseSlice(":5", 10)
		require.NoError(t, err)
		assert.Equal(t, 0, i1)
		assert.Equal(t, 5, i2)
		i1, i2, _, err = ParseSlice("5:", 10)
		require.NoError(t, err)
		assert.Equal(t, 5, i1)
		assert.Equal(t, 10, i2)
		i1, i2, _, err = ParseSlice("2", 10)
		require.NoError(t, err)
		assert.Equal(t, 2, i1)
		assert.Equal(t, 3, i2)
		i1, i2, _, err = ParseSlice("end", 10)
		require.NoError(t, err)
		assert.Equal(t, 9, i1)
		assert.Equal(t, 10, i2)
		i1, i2, s, err = ParseSlice(" 200:399:1 ", 400)
		require.NoError(t, err)
		assert.Equal(t, [3]int{200, 399, 1}, [3]int{i1, i2, s})
		i1, i2, s, err = ParseSlice("::4", 40)
		require.NoError(t, err)
		assert.Equal(t, [3]int{0, 40, 4}, [3]int{i1, i2, s})
	}
	// Empty and negative ranges are returned as written
	{
		i1, i2, _, err = ParseSlice("5:5", 10)
		require.NoError(t, err)
		assert.Equal(t, 5, i1)
		assert.Equal(t, 5, i2)
		i1, i2, _, err = ParseSlice("-1:3", 10)
		require.NoError(t, err)
		assert.Equal(t, -1, i1)
		assert.Equal(t, 3, i2)
	}
	// Malformed phrases
	{
		for _, bad := range []string{"", "a:b", "1:2:3:4", "1:x", "0:10:y"} {
			_, _, _, err = ParseSlice(bad, 10)
			assert.ErrorIs(t, err, ErrBadSlice, bad)
		}
	}
}
