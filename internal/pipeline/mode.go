package pipeline

import (
	"fmt"

	"github.com/banshee-data/magplot/internal/config"
)

// Mode selects which figure the pipeline produces.
type Mode int

const (
	// ModeGrid compares four recordings in a 2×2 grid.
	ModeGrid Mode = iota
	// ModeSingle plots one recording, optionally smoothed.
	ModeSingle
)

func (m Mode) String() string {
	switch m {
	case ModeGrid:
		return config.ModeGrid
	case ModeSingle:
		return config.ModeSingle
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode maps a mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case config.ModeGrid, "":
		return ModeGrid, nil
	case config.ModeSingle:
		return ModeSingle, nil
	}
	return ModeGrid, fmt.Errorf("unknown mode %q", s)
}

// State is the pipeline's position in its single pass.
type State int

const (
	Unloaded State = iota
	Loaded
	Plotted
)

func (s State) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Loaded:
		return "loaded"
	case Plotted:
		return "plotted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
