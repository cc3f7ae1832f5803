// Command magplot plots the per-sample magnitude of 3-axis sensor recordings.
//
// Run without arguments it compares the four labelled recordings under data/
// in a 2×2 grid and opens an interactive viewer, returning once the viewer is
// closed (or on Ctrl-C). -mode single plots one Gaussian-smoothed recording.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/banshee-data/magplot/internal/config"
	"github.com/banshee-data/magplot/internal/monitoring"
	"github.com/banshee-data/magplot/internal/pipeline"
	"github.com/banshee-data/magplot/internal/plotting"
	"github.com/banshee-data/magplot/internal/version"
	"github.com/banshee-data/magplot/internal/viewer"
)

var (
	configFile  = flag.String("config", "", "Path to a JSON or YAML run config (defaults are built in)")
	mode        = flag.String("mode", "", "Run mode: grid or single (overrides config)")
	sigma       = flag.Float64("sigma", 0, "Gaussian sigma for single mode (overrides config)")
	noSmooth    = flag.Bool("no-smooth", false, "Plot the raw magnitude in single mode")
	listen      = flag.String("listen", "", "Viewer listen address (overrides config)")
	pngDir      = flag.String("png", "", "Also write the figure as PNG under this directory")
	noView      = flag.Bool("no-view", false, "Do not start the interactive viewer")
	openBrowser = flag.Bool("open", true, "Open the viewer in the system browser")
	verbose     = flag.Bool("v", false, "Log progress to stderr")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}
	if !*verbose {
		monitoring.SetLogger(nil)
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stderr); err != nil {
		var renderErr *plotting.RenderError
		if errors.As(err, &renderErr) && renderErr.Op == "open browser" {
			log.Fatalf("magplot: %v (use -open=false to print the viewer URL instead)", err)
		}
		log.Fatalf("magplot: %v", err)
	}
}

// loadConfig reads the optional config file and applies flag overrides.
func loadConfig() (*config.RunConfig, error) {
	cfg := config.EmptyRunConfig()
	if *configFile != "" {
		var err error
		if cfg, err = config.LoadRunConfig(*configFile); err != nil {
			return nil, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			cfg.SetMode(*mode)
		case "sigma":
			cfg.SetSigma(*sigma)
		case "no-smooth":
			cfg.SetSmooth(!*noSmooth)
		case "listen":
			cfg.SetListen(*listen)
		case "png":
			cfg.SetPNGDir(*pngDir)
		case "no-view":
			cfg.SetView(!*noView)
		case "open":
			cfg.SetOpenBrowser(*openBrowser)
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// run wires the configured displays to one pipeline pass.
func run(ctx context.Context, cfg *config.RunConfig, stderr io.Writer) error {
	opts, err := pipeline.OptionsFromConfig(cfg)
	if err != nil {
		return err
	}
	p, err := pipeline.New(opts)
	if err != nil {
		return err
	}

	display, err := displays(cfg, p.RunID(), stderr)
	if err != nil {
		return err
	}

	if err := p.Load(); err != nil {
		return err
	}
	if _, err := p.Compute(); err != nil {
		return err
	}
	return p.Plot(ctx, display)
}

func displays(cfg *config.RunConfig, runID string, stderr io.Writer) (pipeline.MultiDisplay, error) {
	var ds pipeline.MultiDisplay
	if dir := cfg.GetPNGDir(); dir != "" {
		ds = append(ds, &plotting.PNGDisplay{Dir: plotting.MakeOutputDir(dir, runID, time.Now())})
	}
	if cfg.GetView() {
		ds = append(ds, viewer.New(viewer.Config{
			Address:     cfg.GetListen(),
			OpenBrowser: cfg.GetOpenBrowser(),
			Ready: func(url string) {
				if !cfg.GetOpenBrowser() {
					// Without a browser the URL is the only way to reach the figure.
					fmt.Fprintf(stderr, "viewer: %s\n", url)
				}
			},
		}))
	}
	if len(ds) == 0 {
		return nil, fmt.Errorf("nothing to do: viewer disabled and no PNG directory set")
	}
	return ds, nil
}
