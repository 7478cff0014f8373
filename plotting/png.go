package plotting

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PNGSink draws each series as a line of value against depth, depth on the vertical axis
type PNGSink struct{}

func (PNGSink) Render(fig *Figure) (err error) {
	var (
		p = plot.New()
		l *plotter.Line
	)
	p.Title.Text = fig.Title
	p.X.Label.Text = fig.XLabel
	p.Y.Label.Text = fig.YLabel
	p.Add(plotter.NewGrid())
	for i, s := range fig.Series {
		for k, xys := range segments(s.Values, s.Depth) {
			if l, err = plotter.NewLine(xys); err != nil {
				return fmt.Errorf("%w: %s: series %q: %v", ErrOutputWrite, fig.Output, s.Label, err)
			}
			l.LineStyle.Color = SeriesColor(i)
			l.LineStyle.Width = vg.Points(1.5)
			p.Add(l)
			if k == 0 {
				p.Legend.Add(s.Label, l)
			}
		}
	}
	p.Legend.Top = true
	if len(fig.XLim) == 2 {
		p.X.Min, p.X.Max = fig.XLim[0], fig.XLim[1]
	}
	if len(fig.YLim) == 2 {
		p.Y.Min, p.Y.Max = fig.YLim[0], fig.YLim[1]
	}
	if err = ensureDir(fig.Output); err != nil {
		return
	}
	w, h := fig.Width, fig.Height
	if w <= 0 {
		w = 6
	}
	if h <= 0 {
		h = 4
	}
	if err = p.Save(vg.Length(w)*vg.Inch, vg.Length(h)*vg.Inch, fig.Output); err != nil {
		return writeErr(fig.Output, err)
	}
	return
}

// segments splits a profile at NaN or Inf values so holes in the data are drawn as gaps
func segments(values, depth []float64) (segs []plotter.XYs) {
	var (
		cur plotter.XYs
	)
	for j := range values {
		x, y := values[j], depth[j]
		if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
			if len(cur) != 0 {
				segs = append(segs, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: x, Y: y})
	}
	if len(cur) != 0 {
		segs = append(segs, cur)
	}
	return
}
