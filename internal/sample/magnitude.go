package sample

import "math"

// Magnitude returns the Euclidean norm of every sample, in table order.
// Non-finite inputs propagate through the arithmetic; nothing is rejected.
func Magnitude(t *Table) []float64 {
	out := make([]float64, t.Len())
	if t == nil {
		return out
	}
	for i, s := range t.Samples {
		out[i] = Norm(s)
	}
	return out
}

// Norm is sqrt(x²+y²+z²) for a single sample.
func Norm(s Sample) float64 {
	return math.Sqrt(s.X*s.X + s.Y*s.Y + s.Z*s.Z)
}
