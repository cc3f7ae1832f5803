package plotting

import (
	"context"

	"github.com/banshee-data/magplot/internal/fsutil"
	"github.com/banshee-data/magplot/internal/monitoring"
)

// PNGDisplay "shows" a figure by writing it to a PNG file. It returns
// immediately and is used when no interactive viewer is wanted.
type PNGDisplay struct {
	FS  fsutil.FileSystem
	Dir string

	// Paths collects every file written, in order.
	Paths []string
}

// Show renders fig to Dir.
func (d *PNGDisplay) Show(ctx context.Context, fig *Figure) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fsys := d.FS
	if fsys == nil {
		fsys = fsutil.OSFileSystem{}
	}
	path, err := SavePNG(fsys, fig, d.Dir)
	if err != nil {
		return err
	}
	d.Paths = append(d.Paths, path)
	monitoring.Logf("wrote %s (%d panels)", path, len(fig.Panels))
	return nil
}
