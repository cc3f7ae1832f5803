package plotting

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"path/filepath"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/banshee-data/magplot/internal/fsutil"
)

// newPanelPlot builds the gonum plot for one panel.
func newPanelPlot(p Panel, c color.Color) (*plot.Plot, error) {
	pl := plot.New()
	pl.Title.Text = p.Title
	pl.X.Label.Text = p.XLabel
	pl.Y.Label.Text = p.YLabel
	pl.Add(plotter.NewGrid())

	for _, seg := range p.Segments() {
		line, err := plotter.NewLine(seg)
		if err != nil {
			return nil, err
		}
		line.Color = c
		line.Width = vg.Points(1)
		pl.Add(line)
	}

	// Keep the x-axis spanning the whole index range even when the
	// ends of the series are gaps.
	if n := len(p.Series); n > 1 {
		pl.X.Min = 0
		pl.X.Max = float64(n - 1)
	}
	return pl, nil
}

// Plots builds one gonum plot per panel, indexed [row][col].
func Plots(fig *Figure) ([][]*plot.Plot, error) {
	if err := fig.Validate(); err != nil {
		return nil, &RenderError{Op: "layout", Err: err}
	}
	colors := palette(len(fig.Panels))
	plots := make([][]*plot.Plot, fig.Rows)
	for r := range plots {
		plots[r] = make([]*plot.Plot, fig.Cols)
		for c := range plots[r] {
			i := r*fig.Cols + c
			pl, err := newPanelPlot(fig.Panels[i], colors[i])
			if err != nil {
				return nil, &RenderError{Op: "plot", Err: fmt.Errorf("panel %d (%s): %w", i, fig.Panels[i].Title, err)}
			}
			plots[r][c] = pl
		}
	}
	return plots, nil
}

// RenderPNG draws the figure onto a single PNG image and writes it to w.
func RenderPNG(fig *Figure, w io.Writer) error {
	plots, err := Plots(fig)
	if err != nil {
		return err
	}

	img := vgimg.New(vg.Length(fig.WidthInches)*vg.Inch, vg.Length(fig.HeightInches)*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      fig.Rows,
		Cols:      fig.Cols,
		PadX:      5 * vg.Millimeter,
		PadY:      5 * vg.Millimeter,
		PadTop:    3 * vg.Millimeter,
		PadBottom: 3 * vg.Millimeter,
		PadLeft:   3 * vg.Millimeter,
		PadRight:  3 * vg.Millimeter,
	}

	canvases := plot.Align(plots, tiles, dc)
	for r := range plots {
		for c := range plots[r] {
			plots[r][c].Draw(canvases[r][c])
		}
	}

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		return &RenderError{Op: "encode png", Err: err}
	}
	return nil
}

// PNGBytes renders the figure into memory.
func PNGBytes(fig *Figure) ([]byte, error) {
	var buf bytes.Buffer
	if err := RenderPNG(fig, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SavePNG renders the figure to dir/<name>.png on fsys and returns the path.
func SavePNG(fsys fsutil.FileSystem, fig *Figure, dir string) (string, error) {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return "", &RenderError{Op: "create output dir", Err: err}
	}
	path := filepath.Join(dir, fig.Name+".png")
	f, err := fsys.Create(path)
	if err != nil {
		return "", &RenderError{Op: "create " + path, Err: err}
	}
	if err := RenderPNG(fig, f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", &RenderError{Op: "close " + path, Err: err}
	}
	return path, nil
}

// FormatTimestamp generates a timestamp string for directory naming.
func FormatTimestamp(t time.Time) string {
	return t.Format("20060102_150405")
}

// MakeOutputDir returns baseDir/<timestamp>_<run> for one run's PNG files.
func MakeOutputDir(baseDir, runID string, now time.Time) string {
	if len(runID) > 8 {
		runID = runID[:8]
	}
	return filepath.Join(baseDir, FormatTimestamp(now)+"_"+runID)
}
