package profiles

import (
	"fmt"

	"github.com/mrivkah3/convective-adjustment/types"
)

// WindowLabel describes a window for a legend, by index bounds or by simulation time
func WindowLabel(field *types.TimeSeriesField, w types.Window, style types.LabelStyle) string {
	switch style {
	case types.LabelIndex:
		return fmt.Sprintf("t=%d-%d", w.Start, w.Stop)
	case types.LabelTime:
		if w.Start < 0 || w.Stop > field.NT || w.Stop <= w.Start {
			return ""
		}
		return fmt.Sprintf("t=%.2f-%.2f", field.Time[w.Start], field.Time[w.Stop-1])
	}
	return ""
}

func SnapshotLabel(field *types.TimeSeriesField, index int) string {
	if index < 0 || index >= field.NT {
		return ""
	}
	return fmt.Sprintf("t=%f", field.Time[index])
}

// JoinLabel appends a suffix to a legend label, skipping empty parts
func JoinLabel(label, suffix string) string {
	switch {
	case len(suffix) == 0:
		return label
	case len(label) == 0:
		return suffix
	}
	return label + " " + suffix
}
