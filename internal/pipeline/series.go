package pipeline

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Series is the derived data for one recording.
type Series struct {
	Label     string
	Source    string
	Magnitude []float64
	// Smoothed is nil unless smoothing was applied.
	Smoothed []float64
	Sigma    float64
}

// Values returns the series that gets plotted: the smoothed one when present.
func (s Series) Values() []float64 {
	if s.Smoothed != nil {
		return s.Smoothed
	}
	return s.Magnitude
}

// Summary holds descriptive statistics of a series.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summarize computes descriptive statistics of values. Non-finite inputs
// make the moments NaN; an empty series yields all-NaN statistics.
func Summarize(values []float64) Summary {
	s := Summary{Count: len(values)}
	switch len(values) {
	case 0:
		s.Mean, s.StdDev, s.Min, s.Max = math.NaN(), math.NaN(), math.NaN(), math.NaN()
		return s
	case 1:
		s.Mean, s.StdDev = values[0], 0
	default:
		s.Mean, s.StdDev = stat.MeanStdDev(values, nil)
	}
	s.Min = floats.Min(values)
	s.Max = floats.Max(values)
	return s
}
