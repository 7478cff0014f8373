package plotting

import (
	"math"
	"time"

	"github.com/notargets/avs/assets"
	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"
)

/*
DisplaySink opens an interactive window with the profiles drawn as polylines and a text legend.
Render holds the window open for Hold, or until the process exits when Hold is zero.
*/
type DisplaySink struct {
	Width, Height int
	Hold          time.Duration
}

func (ds DisplaySink) Render(fig *Figure) error {
	var (
		xMin, xMax = float32(math.MaxFloat32), -float32(math.MaxFloat32)
		yMin, yMax = float32(math.MaxFloat32), -float32(math.MaxFloat32)
		w, h       = ds.Width, ds.Height
	)
	if w == 0 || h == 0 {
		w, h = 1024, 768
	}
	for _, s := range fig.Series {
		for j := range s.Values {
			if !finite(s.Values[j], s.Depth[j]) {
				continue
			}
			x, y := float32(s.Values[j]), float32(s.Depth[j])
			xMin, xMax = min(xMin, x), max(xMax, x)
			yMin, yMax = min(yMin, y), max(yMax, y)
		}
	}
	if len(fig.XLim) == 2 {
		xMin, xMax = float32(fig.XLim[0]), float32(fig.XLim[1])
	}
	if len(fig.YLim) == 2 {
		yMin, yMax = float32(fig.YLim[0]), float32(fig.YLim[1])
	}
	if xMin >= xMax || yMin >= yMax {
		// Nothing to draw
		return nil
	}
	ch := chart2d.NewChart2D(xMin, xMax, yMin, yMax, w, h, utils2.WHITE, utils2.BLACK)
	for i, s := range fig.Series {
		ch.AddLine(polyline(s.Values, s.Depth), SeriesColor(i))
	}
	pitch := uint32(18)
	for i, s := range fig.Series {
		tf := assets.NewTextFormatter("NotoSans", "Regular", pitch, SeriesColor(i), true, false)
		ch.Printf(tf, xMin+0.02*(xMax-xMin), yMax-float32(i+1)*0.05*(yMax-yMin), "%s", s.Label)
	}
	if ds.Hold > 0 {
		time.Sleep(ds.Hold)
		return nil
	}
	for {
		time.Sleep(time.Second)
	}
}

// polyline converts a profile into line segments x1,y1,x2,y2 as the chart expects
func polyline(x, y []float64) (line []float32) {
	if len(x) < 2 {
		return
	}
	line = make([]float32, 0, 4*(len(x)-1))
	for j := 1; j < len(x); j++ {
		if !finite(x[j-1], y[j-1], x[j], y[j]) {
			continue
		}
		line = append(line,
			float32(x[j-1]), float32(y[j-1]),
			float32(x[j]), float32(y[j]),
		)
	}
	return
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
