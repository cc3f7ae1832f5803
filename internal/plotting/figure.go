// Package plotting lays out magnitude series as line-chart figures and
// renders them to PNG with gonum/plot.
package plotting

import (
	"fmt"
	"math"

	"gonum.org/v1/plot/plotter"
)

// GridCells is the number of panels in a grid figure (2×2, row-major).
const GridCells = 4

// Default figure sizes in inches.
const (
	SingleSizeInches = 10.0
	GridSizeInches   = 20.0
)

// Panel is one line chart. Its x-values are the sample indices 0..N-1.
type Panel struct {
	Title  string
	XLabel string
	YLabel string
	Series []float64
}

// XYs returns the panel's points with X set to the sample index.
func (p Panel) XYs() plotter.XYs {
	pts := make(plotter.XYs, len(p.Series))
	for i, v := range p.Series {
		pts[i] = plotter.XY{X: float64(i), Y: v}
	}
	return pts
}

// Segments splits the panel into runs of finite points. NaN and Inf
// samples become gaps, since gonum/plot refuses non-finite data.
func (p Panel) Segments() []plotter.XYs {
	var segs []plotter.XYs
	var cur plotter.XYs
	for i, v := range p.Series {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			if len(cur) > 0 {
				segs = append(segs, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: float64(i), Y: v})
	}
	if len(cur) > 0 {
		segs = append(segs, cur)
	}
	return segs
}

// Figure is a rows×cols arrangement of panels sharing one drawing surface.
type Figure struct {
	// Name identifies the figure in file names and page titles.
	Name         string
	Title        string
	Rows         int
	Cols         int
	WidthInches  float64
	HeightInches float64
	Panels       []Panel
}

// NewSingleFigure wraps one panel in a 1×1 figure.
func NewSingleFigure(name, title string, p Panel) *Figure {
	return &Figure{
		Name:         name,
		Title:        title,
		Rows:         1,
		Cols:         1,
		WidthInches:  SingleSizeInches,
		HeightInches: SingleSizeInches,
		Panels:       []Panel{p},
	}
}

// NewGridFigure arranges four panels in a 2×2 grid: top-left, top-right,
// bottom-left, bottom-right.
func NewGridFigure(name, title string, panels [GridCells]Panel) *Figure {
	return &Figure{
		Name:         name,
		Title:        title,
		Rows:         2,
		Cols:         2,
		WidthInches:  GridSizeInches,
		HeightInches: GridSizeInches,
		Panels:       panels[:],
	}
}

// At returns the panel at the given row and column.
func (f *Figure) At(row, col int) Panel {
	return f.Panels[row*f.Cols+col]
}

// Validate checks that the layout and panel count agree.
func (f *Figure) Validate() error {
	if f == nil {
		return fmt.Errorf("nil figure")
	}
	if f.Rows <= 0 || f.Cols <= 0 {
		return fmt.Errorf("figure %q: invalid layout %dx%d", f.Name, f.Rows, f.Cols)
	}
	if len(f.Panels) != f.Rows*f.Cols {
		return fmt.Errorf("figure %q: %dx%d layout needs %d panels, got %d",
			f.Name, f.Rows, f.Cols, f.Rows*f.Cols, len(f.Panels))
	}
	if f.WidthInches <= 0 || f.HeightInches <= 0 {
		return fmt.Errorf("figure %q: invalid size %gx%g in", f.Name, f.WidthInches, f.HeightInches)
	}
	return nil
}
