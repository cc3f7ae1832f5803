package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/banshee-data/magplot/internal/smooth"
)

// Run modes.
const (
	ModeGrid   = "grid"
	ModeSingle = "single"
)

// GridDatasets is the number of recordings compared in grid mode.
const GridDatasets = 4

// Dataset names one recording to load.
type Dataset struct {
	Label string `json:"label" yaml:"label"`
	Path  string `json:"path" yaml:"path"`
	// Header marks a file whose first record is column names.
	Header bool `json:"header,omitempty" yaml:"header,omitempty"`
}

// DefaultDatasets are the four labelled recordings compared in grid mode.
var DefaultDatasets = []Dataset{
	{Label: "label_0", Path: "data/label_0_data.csv"},
	{Label: "label_1b", Path: "data/label_1b_data.csv"},
	{Label: "label_2", Path: "data/label_2_data.csv"},
	{Label: "label_3", Path: "data/label_3_data.csv"},
}

// DefaultSingleDataset is the recording plotted in single mode. It is
// exported by the logger app with a column-name row.
var DefaultSingleDataset = Dataset{Label: "sensor_data_a", Path: "./sensor_data_a.csv", Header: true}

// RunConfig is the root configuration for one magplot run. Every field is
// optional; the Get* methods supply defaults for anything left unset, so an
// empty file (or no file at all) reproduces the built-in comparison run.
type RunConfig struct {
	Mode *string `json:"mode,omitempty" yaml:"mode,omitempty"`

	// Inputs
	Datasets      []Dataset `json:"datasets,omitempty" yaml:"datasets,omitempty"`
	SingleDataset *Dataset  `json:"single_dataset,omitempty" yaml:"single_dataset,omitempty"`
	SkipHeader    *bool     `json:"skip_header,omitempty" yaml:"skip_header,omitempty"`

	// Smoothing (single mode)
	Smooth   *bool    `json:"smooth,omitempty" yaml:"smooth,omitempty"`
	Sigma    *float64 `json:"sigma,omitempty" yaml:"sigma,omitempty"`
	Truncate *float64 `json:"truncate,omitempty" yaml:"truncate,omitempty"`
	Boundary *string  `json:"boundary,omitempty" yaml:"boundary,omitempty"` // reflect, mirror, nearest, wrap, constant

	// Output
	View        *bool   `json:"view,omitempty" yaml:"view,omitempty"`
	Listen      *string `json:"listen,omitempty" yaml:"listen,omitempty"`
	OpenBrowser *bool   `json:"open_browser,omitempty" yaml:"open_browser,omitempty"`
	PNGDir      *string `json:"png_dir,omitempty" yaml:"png_dir,omitempty"`
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrString(v string) *string    { return &v }

// EmptyRunConfig returns a RunConfig with all fields unset.
func EmptyRunConfig() *RunConfig {
	return &RunConfig{}
}

// DefaultRunConfig returns a RunConfig with every field populated with its default.
func DefaultRunConfig() *RunConfig {
	single := DefaultSingleDataset
	return &RunConfig{
		Mode:          ptrString(ModeGrid),
		Datasets:      append([]Dataset(nil), DefaultDatasets...),
		SingleDataset: &single,
		SkipHeader:    ptrBool(false),
		Smooth:        ptrBool(true),
		Sigma:         ptrFloat64(0.5),
		Truncate:      ptrFloat64(smooth.DefaultTruncate),
		Boundary:      ptrString("reflect"),
		View:          ptrBool(true),
		Listen:        ptrString("localhost:0"),
		OpenBrowser:   ptrBool(true),
		PNGDir:        ptrString(""),
	}
}

// LoadRunConfig loads a RunConfig from a JSON or YAML file, chosen by extension.
// Fields omitted from the file keep their defaults.
func LoadRunConfig(path string) (*RunConfig, error) {
	cleanPath := filepath.Clean(path)
	ext := filepath.Ext(cleanPath)
	if ext != ".json" && ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("config file must have .json, .yaml or .yml extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyRunConfig()
	if ext == ".json" {
		err = json.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", filepath.Base(cleanPath), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *RunConfig) Validate() error {
	mode := c.GetMode()
	if mode != ModeGrid && mode != ModeSingle {
		return fmt.Errorf("mode must be %q or %q, got %q", ModeGrid, ModeSingle, mode)
	}

	if c.Datasets != nil && len(c.Datasets) != GridDatasets {
		return fmt.Errorf("datasets must list exactly %d recordings, got %d", GridDatasets, len(c.Datasets))
	}
	for i, d := range c.GetDatasets() {
		if d.Path == "" {
			return fmt.Errorf("datasets[%d]: path is required", i)
		}
	}
	if c.SingleDataset != nil && c.SingleDataset.Path == "" {
		return fmt.Errorf("single_dataset: path is required")
	}

	if err := smooth.Validate(c.GetSigma(), c.GetTruncate()); err != nil {
		return fmt.Errorf("smoothing: %w", err)
	}
	if c.Boundary != nil {
		if _, ok := smooth.ParseMode(*c.Boundary); !ok {
			return fmt.Errorf("unknown boundary mode %q", *c.Boundary)
		}
	}

	if c.GetView() && c.GetListen() == "" {
		return fmt.Errorf("listen address is required when view is enabled")
	}
	return nil
}

// GetMode returns the run mode or the default (grid).
func (c *RunConfig) GetMode() string {
	if c.Mode == nil || *c.Mode == "" {
		return ModeGrid
	}
	return *c.Mode
}

// GetDatasets returns the grid recordings or the defaults.
func (c *RunConfig) GetDatasets() []Dataset {
	if len(c.Datasets) == 0 {
		return append([]Dataset(nil), DefaultDatasets...)
	}
	out := append([]Dataset(nil), c.Datasets...)
	for i := range out {
		if out[i].Label == "" {
			out[i].Label = labelFromPath(out[i].Path)
		}
	}
	return out
}

// GetSingleDataset returns the single-mode recording or the default.
func (c *RunConfig) GetSingleDataset() Dataset {
	if c.SingleDataset == nil {
		return DefaultSingleDataset
	}
	d := *c.SingleDataset
	if d.Label == "" {
		d.Label = labelFromPath(d.Path)
	}
	return d
}

// GetSkipHeader reports whether the first record of every file is a header.
// Datasets with Header set skip theirs regardless.
func (c *RunConfig) GetSkipHeader() bool {
	if c.SkipHeader == nil {
		return false
	}
	return *c.SkipHeader
}

// GetSmooth reports whether single mode smooths the magnitude series.
func (c *RunConfig) GetSmooth() bool {
	if c.Smooth == nil {
		return true
	}
	return *c.Smooth
}

// GetSigma returns the Gaussian standard deviation or the default.
func (c *RunConfig) GetSigma() float64 {
	if c.Sigma == nil {
		return 0.5
	}
	return *c.Sigma
}

// GetTruncate returns the kernel half-width in standard deviations or the default.
func (c *RunConfig) GetTruncate() float64 {
	if c.Truncate == nil {
		return smooth.DefaultTruncate
	}
	return *c.Truncate
}

// GetBoundary returns the smoothing boundary mode or the default (reflect).
func (c *RunConfig) GetBoundary() smooth.Mode {
	if c.Boundary == nil {
		return smooth.Reflect
	}
	m, _ := smooth.ParseMode(*c.Boundary)
	return m
}

// GetView reports whether the interactive viewer is shown.
func (c *RunConfig) GetView() bool {
	if c.View == nil {
		return true
	}
	return *c.View
}

// GetListen returns the viewer listen address or the default.
func (c *RunConfig) GetListen() string {
	if c.Listen == nil {
		return "localhost:0"
	}
	return *c.Listen
}

// GetOpenBrowser reports whether the viewer launches the system browser.
func (c *RunConfig) GetOpenBrowser() bool {
	if c.OpenBrowser == nil {
		return true
	}
	return *c.OpenBrowser
}

// GetPNGDir returns the PNG output directory; empty disables PNG output.
func (c *RunConfig) GetPNGDir() string {
	if c.PNGDir == nil {
		return ""
	}
	return *c.PNGDir
}

// SetMode overrides the run mode.
func (c *RunConfig) SetMode(v string) { c.Mode = ptrString(v) }

// SetSigma overrides the Gaussian standard deviation.
func (c *RunConfig) SetSigma(v float64) { c.Sigma = ptrFloat64(v) }

// SetSmooth overrides whether single mode smooths.
func (c *RunConfig) SetSmooth(v bool) { c.Smooth = ptrBool(v) }

// SetView overrides whether the interactive viewer is shown.
func (c *RunConfig) SetView(v bool) { c.View = ptrBool(v) }

// SetListen overrides the viewer listen address.
func (c *RunConfig) SetListen(v string) { c.Listen = ptrString(v) }

// SetOpenBrowser overrides whether the browser is launched.
func (c *RunConfig) SetOpenBrowser(v bool) { c.OpenBrowser = ptrBool(v) }

// SetPNGDir overrides the PNG output directory.
func (c *RunConfig) SetPNGDir(v string) { c.PNGDir = ptrString(v) }

func labelFromPath(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}
