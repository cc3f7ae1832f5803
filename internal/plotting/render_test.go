package plotting

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/magplot/internal/fsutil"
)

func TestPlots_FourLineSeries(t *testing.T) {
	plots, err := Plots(scenarioGrid())
	require.NoError(t, err)
	require.Len(t, plots, 2)
	for r := range plots {
		require.Len(t, plots[r], 2)
		for c := range plots[r] {
			pl := plots[r][c]
			assert.Equal(t, 0.0, pl.X.Min)
			assert.Equal(t, 2.0, pl.X.Max)
			assert.Equal(t, "sample", pl.X.Label.Text)
			assert.Equal(t, "magnitude", pl.Y.Label.Text)
		}
	}
	assert.Equal(t, "label_1b", plots[0][1].Title.Text)
}

func TestRenderPNG_Grid(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPNG(scenarioGrid(), &buf))

	grid, err := png.DecodeConfig(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, grid.Width, grid.Height)

	single, err := PNGBytes(NewSingleFigure("single", "", Panel{Series: []float64{3, 0, 5}}))
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(single))
	require.NoError(t, err)
	assert.Equal(t, 2*cfg.Width, grid.Width, "grid figure is twice the single figure size")
}

func TestRenderPNG_NonFiniteAndEmptySeries(t *testing.T) {
	panels := [GridCells]Panel{
		{Title: "gaps", Series: []float64{1, math.NaN(), 3, math.Inf(1)}},
		{Title: "empty"},
		{Title: "all nan", Series: []float64{math.NaN(), math.NaN()}},
		{Title: "flat", Series: []float64{0, 0, 0}},
	}
	data, err := PNGBytes(NewGridFigure("edge", "", panels))
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestRenderPNG_BadLayout(t *testing.T) {
	err := RenderPNG(&Figure{Name: "broken", Rows: 2, Cols: 2}, &bytes.Buffer{})
	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, "layout", renderErr.Op)
}

func TestPNGDisplay_Show(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	d := &PNGDisplay{FS: mfs, Dir: "plots/run"}

	require.NoError(t, d.Show(context.Background(), scenarioGrid()))
	require.Equal(t, []string{filepath.Join("plots/run", "grid.png")}, d.Paths)

	data, ok := mfs.Contents(d.Paths[0])
	require.True(t, ok)
	_, err := png.DecodeConfig(bytes.NewReader(data))
	assert.NoError(t, err)
}

func TestPNGDisplay_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := &PNGDisplay{FS: fsutil.NewMemoryFileSystem(), Dir: "plots"}
	assert.ErrorIs(t, d.Show(ctx, scenarioGrid()), context.Canceled)
	assert.Empty(t, d.Paths)
}

func TestMakeOutputDir(t *testing.T) {
	now := time.Date(2026, 1, 7, 17, 31, 29, 0, time.UTC)
	assert.Equal(t, filepath.Join("plots", "20260107_173129_0f8fad5b"),
		MakeOutputDir("plots", "0f8fad5b-d9cb-469f-a165-70867728950e", now))
	assert.Equal(t, filepath.Join("plots", "20260107_173129_abc"), MakeOutputDir("plots", "abc", now))
}
