package plotting

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot/plotutil"

	"github.com/mrivkah3/convective-adjustment/types"
)

var ErrOutputWrite = errors.New("unable to write plot output")

/*
Figure is everything a sink needs to draw one overlay of depth profiles. Series are drawn and
listed in the legend in slice order.
*/
type Figure struct {
	Title          string
	XLabel, YLabel string
	XLim, YLim     []float64 // empty for automatic
	Width, Height  float64   // inches
	Output         string
	Series         []types.Series
}

type Sink interface {
	Render(fig *Figure) error
}

// MultiSink renders to each sink in order and stops at the first failure
type MultiSink []Sink

func (ms MultiSink) Render(fig *Figure) error {
	for _, s := range ms {
		if err := s.Render(fig); err != nil {
			return err
		}
	}
	return nil
}

func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return writeErr(path, err)
	}
	return nil
}

func writeErr(path string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrOutputWrite, path, err)
}

// WithExt swaps the extension of the figure output, used by sinks writing alongside the image
func WithExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

func SeriesColor(i int) color.RGBA {
	return color.RGBAModel.Convert(plotutil.Color(i)).(color.RGBA)
}
