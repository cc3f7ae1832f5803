// Package pipeline runs the magnitude-plot pipeline: load one or more 3-axis
// recordings, derive each recording's magnitude series, optionally smooth it,
// and hand the resulting figure to a Display.
//
// A Pipeline moves through three states, Unloaded → Loaded → Plotted, in one
// pass. Grid mode compares four recordings in a 2×2 figure; single mode
// plots one recording, Gaussian-smoothed when enabled.
package pipeline
