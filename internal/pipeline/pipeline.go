package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/banshee-data/magplot/internal/config"
	"github.com/banshee-data/magplot/internal/fsutil"
	"github.com/banshee-data/magplot/internal/monitoring"
	"github.com/banshee-data/magplot/internal/plotting"
	"github.com/banshee-data/magplot/internal/sample"
	"github.com/banshee-data/magplot/internal/smooth"
)

var logf = monitoring.Component("pipeline")

// Display shows a finished figure. Interactive displays block until dismissed.
type Display interface {
	Show(ctx context.Context, fig *plotting.Figure) error
}

// Options configures one pipeline run.
type Options struct {
	Mode Mode
	// Datasets lists the recordings: four for ModeGrid, one for ModeSingle.
	Datasets []config.Dataset
	Load     sample.Options

	// Smooth enables Gaussian smoothing in ModeSingle.
	Smooth     bool
	Sigma      float64
	SmoothOpts []smooth.Option

	// FS defaults to the OS filesystem.
	FS fsutil.FileSystem
	// RunID defaults to a fresh UUID.
	RunID string
}

// OptionsFromConfig translates a validated RunConfig into pipeline options.
func OptionsFromConfig(cfg *config.RunConfig) (Options, error) {
	mode, err := ParseMode(cfg.GetMode())
	if err != nil {
		return Options{}, err
	}
	opts := Options{
		Mode:   mode,
		Load:   sample.Options{SkipHeader: cfg.GetSkipHeader()},
		Smooth: cfg.GetSmooth(),
		Sigma:  cfg.GetSigma(),
		SmoothOpts: []smooth.Option{
			smooth.WithTruncate(cfg.GetTruncate()),
			smooth.WithMode(cfg.GetBoundary()),
		},
	}
	if mode == ModeGrid {
		opts.Datasets = cfg.GetDatasets()
	} else {
		opts.Datasets = []config.Dataset{cfg.GetSingleDataset()}
	}
	return opts, nil
}

// Pipeline is a single pass over a set of recordings.
type Pipeline struct {
	opts   Options
	state  State
	tables []*sample.Table
	series []Series
}

// New validates opts and returns an Unloaded pipeline.
func New(opts Options) (*Pipeline, error) {
	want := 1
	if opts.Mode == ModeGrid {
		want = plotting.GridCells
	}
	if len(opts.Datasets) != want {
		return nil, fmt.Errorf("%s mode needs %d datasets, got %d", opts.Mode, want, len(opts.Datasets))
	}
	if opts.Mode == ModeSingle && opts.Smooth {
		// Reject a bad sigma before any file is touched.
		if err := smooth.Validate(opts.Sigma, smooth.DefaultTruncate); err != nil {
			return nil, err
		}
	}
	if opts.FS == nil {
		opts.FS = fsutil.OSFileSystem{}
	}
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	return &Pipeline{opts: opts}, nil
}

// RunID identifies this run in logs and output names.
func (p *Pipeline) RunID() string { return p.opts.RunID }

// State returns the pipeline's current state.
func (p *Pipeline) State() State { return p.state }

// Load reads every dataset. All recordings are loaded before any is computed.
func (p *Pipeline) Load() error {
	if p.state != Unloaded {
		return fmt.Errorf("load: pipeline is %s", p.state)
	}
	tables := make([]*sample.Table, 0, len(p.opts.Datasets))
	for _, d := range p.opts.Datasets {
		lopts := p.opts.Load
		if d.Header {
			lopts.SkipHeader = true
		}
		t, err := sample.LoadFS(p.opts.FS, d.Path, lopts)
		if err != nil {
			return fmt.Errorf("load %s: %w", d.Label, err)
		}
		logf("run %s: loaded %s (%d samples from %s)", p.opts.RunID, d.Label, t.Len(), d.Path)
		tables = append(tables, t)
	}
	p.tables = tables
	p.state = Loaded
	return nil
}

// Compute derives the magnitude series of every loaded table, smoothing it
// in single mode when enabled. Repeated calls return the same series.
func (p *Pipeline) Compute() ([]Series, error) {
	if p.state == Unloaded {
		return nil, fmt.Errorf("compute: pipeline is %s", p.state)
	}
	if p.series != nil {
		return p.series, nil
	}

	series := make([]Series, len(p.tables))
	for i, t := range p.tables {
		s := Series{
			Label:     p.opts.Datasets[i].Label,
			Source:    t.Source,
			Magnitude: sample.Magnitude(t),
		}
		if p.opts.Mode == ModeSingle && p.opts.Smooth {
			smoothed, err := smooth.Gaussian(s.Magnitude, p.opts.Sigma, p.opts.SmoothOpts...)
			if err != nil {
				return nil, fmt.Errorf("smooth %s: %w", s.Label, err)
			}
			s.Smoothed = smoothed
			s.Sigma = p.opts.Sigma
		}
		sum := Summarize(s.Values())
		logf("run %s: %s n=%d mean=%.4f std=%.4f min=%.4f max=%.4f",
			p.opts.RunID, s.Label, sum.Count, sum.Mean, sum.StdDev, sum.Min, sum.Max)
		series[i] = s
	}
	p.series = series
	return series, nil
}

// Figure builds the figure for the computed series.
func (p *Pipeline) Figure() (*plotting.Figure, error) {
	series, err := p.Compute()
	if err != nil {
		return nil, err
	}
	if p.opts.Mode == ModeSingle {
		return SingleFigure(series[0]), nil
	}
	var grid [plotting.GridCells]Series
	copy(grid[:], series)
	return GridFigure(grid), nil
}

// Plot builds the figure and shows it on d. It blocks as long as d does.
func (p *Pipeline) Plot(ctx context.Context, d Display) error {
	if p.state != Loaded {
		return fmt.Errorf("plot: pipeline is %s", p.state)
	}
	fig, err := p.Figure()
	if err != nil {
		return err
	}
	if err := d.Show(ctx, fig); err != nil {
		return fmt.Errorf("show %s: %w", fig.Name, err)
	}
	p.state = Plotted
	logf("run %s: plotted %s", p.opts.RunID, fig.Name)
	return nil
}

// Run performs a complete pass: load, compute, plot.
func Run(ctx context.Context, opts Options, d Display) error {
	p, err := New(opts)
	if err != nil {
		return err
	}
	if err := p.Load(); err != nil {
		return err
	}
	if _, err := p.Compute(); err != nil {
		return err
	}
	return p.Plot(ctx, d)
}
