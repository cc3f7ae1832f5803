package sample

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
)

func randomTable(r *rand.Rand, n int) *Table {
	t := &Table{Samples: make([]Sample, n)}
	for i := range t.Samples {
		t.Samples[i] = Sample{
			X: r.NormFloat64() * 10,
			Y: r.NormFloat64() * 10,
			Z: r.NormFloat64() * 10,
		}
	}
	return t
}

func TestMagnitude_Scenario(t *testing.T) {
	table := &Table{Samples: []Sample{{1, 2, 2}, {0, 0, 0}, {3, 4, 0}}}
	assert.Equal(t, []float64{3, 0, 5}, Magnitude(table))
}

func TestMagnitude_LengthAndSign(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for _, n := range []int{0, 1, 17, 1000} {
		table := randomTable(r, n)
		got := Magnitude(table)
		assert.Len(t, got, n)
		for i, v := range got {
			assert.GreaterOrEqual(t, v, 0.0, "index %d", i)
		}
	}
}

func TestMagnitude_ZeroRowIsExactlyZero(t *testing.T) {
	table := &Table{Samples: []Sample{{0, 0, 0}, {-0.0, 0, -0.0}}}
	for _, v := range Magnitude(table) {
		assert.Equal(t, 0.0, v)
	}
}

func TestNorm_PermutationInvariant(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		x, y, z := r.NormFloat64()*100, r.NormFloat64()*100, r.NormFloat64()*100
		want := Norm(Sample{x, y, z})
		for _, p := range []Sample{{x, z, y}, {y, x, z}, {y, z, x}, {z, x, y}, {z, y, x}} {
			assert.InDelta(t, want, Norm(p), 1e-9*want)
		}
	}
	// Integer-valued inputs are exact regardless of order.
	assert.Equal(t, Norm(Sample{2, 3, 6}), Norm(Sample{6, 2, 3}))
}

func TestMagnitude_Idempotent(t *testing.T) {
	table := randomTable(rand.New(rand.NewSource(3)), 256)
	table.Samples = append(table.Samples, Sample{math.NaN(), 1, 1})

	first := Magnitude(table)
	second := Magnitude(table)
	if diff := cmp.Diff(first, second, cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("recomputation differs (-first +second):\n%s", diff)
	}
	for i := range first {
		if !math.IsNaN(first[i]) {
			assert.Equal(t, math.Float64bits(first[i]), math.Float64bits(second[i]))
		}
	}
}

func TestMagnitude_NonFinitePropagates(t *testing.T) {
	table := &Table{Samples: []Sample{
		{math.NaN(), 0, 0},
		{math.Inf(-1), 0, 0},
		{-3, -4, 0},
	}}
	got := Magnitude(table)
	assert.True(t, math.IsNaN(got[0]))
	assert.True(t, math.IsInf(got[1], 1))
	assert.Equal(t, 5.0, got[2])
}
