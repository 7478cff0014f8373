package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mrivkah3/convective-adjustment/InputParameters"
	"github.com/mrivkah3/convective-adjustment/cache"
	"github.com/mrivkah3/convective-adjustment/plotting"
	"github.com/mrivkah3/convective-adjustment/profiles"
	"github.com/mrivkah3/convective-adjustment/readfiles"
	"github.com/mrivkah3/convective-adjustment/types"
	"github.com/mrivkah3/convective-adjustment/utils"
)

// Skip records a source left out of a figure and why
type Skip struct {
	Source string
	Path   string
	Reason error
}

type Result struct {
	Spec    InputParameters.FieldSpec
	Series  []types.Series
	Skipped []Skip
}

func (r *Result) Labels() (labels []string) {
	for _, s := range r.Series {
		labels = append(labels, s.Label)
	}
	return
}

type Driver struct {
	Open     readfiles.Opener
	Log      *zap.SugaredLogger
	Cache    *cache.ProfileCache // optional
	Parallel bool
}

func NewDriver(open readfiles.Opener, log *zap.SugaredLogger) *Driver {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Driver{Open: open, Log: log}
}

// sourceResult is the output of one source, kept in its own slot so order survives concurrency
type sourceResult struct {
	series []types.Series
	skip   *Skip
}

/*
Run produces the profiles of one field for every configured source, in source order and within a
source in window then snapshot order. Missing files and fields are logged and skipped; bad windows
or mode indices abort the run.
*/
func (d *Driver) Run(ctx context.Context, ex *InputParameters.Experiment, spec InputParameters.FieldSpec) (r *Result, err error) {
	var (
		slots = make([]sourceResult, len(ex.Sources))
	)
	r = &Result{Spec: spec}
	if d.Parallel && len(ex.Sources) > 1 {
		g, gctx := errgroup.WithContext(ctx)
		for i := range ex.Sources {
			g.Go(func() (err error) {
				slots[i], err = d.runSource(gctx, ex, spec, ex.Sources[i])
				return
			})
		}
		if err = g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, src := range ex.Sources {
			if slots[i], err = d.runSource(ctx, ex, spec, src); err != nil {
				return nil, err
			}
		}
	}
	for _, sr := range slots {
		if sr.skip != nil {
			r.Skipped = append(r.Skipped, *sr.skip)
		}
		r.Series = append(r.Series, sr.series...)
	}
	return
}

// RunAll runs every configured field in order
func (d *Driver) RunAll(ctx context.Context, ex *InputParameters.Experiment) (results []*Result, err error) {
	for _, spec := range ex.FieldSpecs() {
		var r *Result
		if r, err = d.Run(ctx, ex, spec); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return
}

func (d *Driver) runSource(ctx context.Context, ex *InputParameters.Experiment, spec InputParameters.FieldSpec,
	src InputParameters.Source) (sr sourceResult, err error) {
	var (
		path  = filepath.Join(src.Dir, ex.DatasetPath)
		ds    readfiles.Dataset
		field *types.TimeSeriesField
	)
	if err = ctx.Err(); err != nil {
		return
	}
	skip := func(reason error) (sourceResult, error) {
		d.Log.Warnw("source skipped", "source", src.Dir, "path", path, "field", spec.Name, "reason", reason)
		return sourceResult{skip: &Skip{Source: src.Dir, Path: path, Reason: reason}}, nil
	}
	if ds, err = d.Open(path); err != nil {
		if errors.Is(err, readfiles.ErrSourceNotFound) {
			return skip(err)
		}
		return
	}
	defer ds.Close()
	if field, err = ds.Field(spec.Name); err != nil {
		if errors.Is(err, readfiles.ErrFieldNotFound) {
			return skip(err)
		}
		return
	}
	if n := utils.CountNan(field.Data); n != 0 {
		d.Log.Warnw("field contains NaN values", "path", path, "field", spec.Name, "count", n)
	}
	d.Log.Debugw("field loaded", "path", path, "field", field.String())
	sr.series, err = d.reduce(ex, path, src, field)
	return
}

func (d *Driver) reduce(ex *InputParameters.Experiment, path string, src InputParameters.Source,
	field *types.TimeSeriesField) (series []types.Series, err error) {
	var (
		style = ex.LabelStyle()
		label = src.Name()
	)
	for _, ws := range ex.Windows {
		var (
			w types.Window
			p types.Profile
		)
		if w.Start, w.Stop, w.Stride, err = utils.ParseSlice(ws, field.NT); err != nil {
			return
		}
		if p, err = d.average(path, field, w, false, ex.ModeIndex); err != nil {
			return nil, fmt.Errorf("%s: %w", src.Dir, err)
		}
		p.Label = profiles.JoinLabel(label, profiles.WindowLabel(field, w, style))
		series = append(series, d.series(p, field, src, w, false))
	}
	for _, index := range ex.Snapshots {
		var (
			w = types.NewWindow(index, index+1)
			p types.Profile
		)
		if p, err = d.average(path, field, w, true, ex.ModeIndex); err != nil {
			return nil, fmt.Errorf("%s: %w", src.Dir, err)
		}
		p.Label = profiles.JoinLabel(label, profiles.SnapshotLabel(field, index))
		series = append(series, d.series(p, field, src, w, true))
	}
	return
}

func (d *Driver) average(path string, field *types.TimeSeriesField, w types.Window, snapshot bool,
	mode int) (p types.Profile, err error) {
	var (
		key      cache.Key
		useCache = d.Cache != nil
	)
	if useCache {
		if key, err = cache.NewKey(path, field.Name, w, snapshot, mode); err != nil {
			d.Log.Debugw("profile cache bypassed", "path", path, "error", err)
			useCache, err = false, nil
		} else if values, ok := d.Cache.Get(key); ok && len(values) == field.ND {
			p.Values = values
			return
		}
	}
	if snapshot {
		p, err = profiles.Snapshot(field, w.Start, mode)
	} else {
		p, err = profiles.AverageWindow(field, w, mode)
	}
	if err != nil {
		return
	}
	if useCache {
		if cerr := d.Cache.Put(key, p.Values); cerr != nil {
			d.Log.Warnw("unable to cache profile", "path", path, "error", cerr)
		}
	}
	return
}

func (d *Driver) series(p types.Profile, field *types.TimeSeriesField, src InputParameters.Source,
	w types.Window, snapshot bool) (s types.Series) {
	s = types.NewSeries(p, field.Depth)
	s.Source = src.Dir
	s.Field = field.Name
	s.Window = w
	s.Snapshot = snapshot
	return
}

// Figure assembles the plot of one result, expanding {quantity} and {x} in title and output
func Figure(ex *InputParameters.Experiment, r *Result) *plotting.Figure {
	var (
		pp    = ex.Plot
		title = pp.Title
	)
	if len(title) == 0 {
		title = ex.Title
	}
	return &plotting.Figure{
		Title:  ex.Expand(title, r.Spec.X),
		XLabel: ex.Expand(pp.XLabel, r.Spec.X),
		YLabel: pp.YLabel,
		XLim:   pp.XLim,
		YLim:   pp.YLim,
		Width:  pp.Width,
		Height: pp.Height,
		Output: ex.Expand(pp.Output, r.Spec.X),
		Series: r.Series,
	}
}
