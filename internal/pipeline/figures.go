package pipeline

import (
	"context"
	"fmt"

	"github.com/banshee-data/magplot/internal/plotting"
)

// Axis labels. Single plots use the time/acceleration wording of the
// analysis notebooks.
const (
	gridXLabel   = "sample"
	gridYLabel   = "magnitude"
	singleXLabel = "time"
	singleYLabel = "acceleration"
)

// SingleFigure lays out one series as a 1×1 figure.
func SingleFigure(s Series) *plotting.Figure {
	title := s.Label
	if s.Smoothed != nil {
		title = fmt.Sprintf("%s (gaussian, sigma=%g)", s.Label, s.Sigma)
	}
	return plotting.NewSingleFigure(s.Label+"_magnitude", title, plotting.Panel{
		Title:  title,
		XLabel: singleXLabel,
		YLabel: singleYLabel,
		Series: s.Values(),
	})
}

// GridFigure lays out four series row-major in a 2×2 figure.
func GridFigure(series [plotting.GridCells]Series) *plotting.Figure {
	var panels [plotting.GridCells]plotting.Panel
	for i, s := range series {
		panels[i] = plotting.Panel{
			Title:  s.Label,
			XLabel: gridXLabel,
			YLabel: gridYLabel,
			Series: s.Values(),
		}
	}
	return plotting.NewGridFigure("magnitude_grid", "Magnitude comparison", panels)
}

// PlotSingle shows one series on d.
func PlotSingle(ctx context.Context, d Display, s Series) error {
	return d.Show(ctx, SingleFigure(s))
}

// PlotGrid shows four series on d in a 2×2 grid.
func PlotGrid(ctx context.Context, d Display, series [plotting.GridCells]Series) error {
	return d.Show(ctx, GridFigure(series))
}

// MultiDisplay shows a figure on each display in order. Put blocking
// displays last.
type MultiDisplay []Display

// Show implements Display.
func (m MultiDisplay) Show(ctx context.Context, fig *plotting.Figure) error {
	for _, d := range m {
		if err := d.Show(ctx, fig); err != nil {
			return err
		}
	}
	return nil
}
