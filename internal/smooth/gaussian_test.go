package smooth

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

func TestGaussian_MatchesReferenceValues(t *testing.T) {
	// Reference values from scipy.ndimage.gaussian_filter1d([1, 2, 3, 4, 5], sigma).
	tests := []struct {
		sigma float64
		want  []float64
	}{
		{1, []float64{1.42704095, 2.06782203, 3, 3.93217797, 4.57295905}},
		{4, []float64{2.91948343, 2.95023502, 3, 3.04976498, 3.08051657}},
	}
	for _, tt := range tests {
		got, err := Gaussian([]float64{1, 2, 3, 4, 5}, tt.sigma)
		require.NoError(t, err)
		assert.InDeltaSlice(t, tt.want, got, 1e-7, "sigma=%v", tt.sigma)
	}
}

func TestGaussian_InvalidSigma(t *testing.T) {
	for _, sigma := range []float64{0, -0.5, -1, math.NaN(), math.Inf(1)} {
		_, err := Gaussian([]float64{1, 2, 3}, sigma)
		require.Error(t, err, "sigma=%v", sigma)

		var paramErr *InvalidParameterError
		require.True(t, errors.As(err, &paramErr), "sigma=%v: got %T", sigma, err)
		assert.Equal(t, "sigma", paramErr.Name)
	}

	_, err := Gaussian([]float64{1}, 1, WithTruncate(0))
	var paramErr *InvalidParameterError
	require.True(t, errors.As(err, &paramErr))
	assert.Equal(t, "truncate", paramErr.Name)
}

func TestGaussian_PreservesLengthAndInput(t *testing.T) {
	in := []float64{3, 0, 5, 1, 4}
	orig := append([]float64(nil), in...)

	for _, sigma := range []float64{0.1, 0.5, 2, 50} {
		got, err := Gaussian(in, sigma)
		require.NoError(t, err)
		assert.Len(t, got, len(in))
	}
	assert.Equal(t, orig, in)

	empty, err := Gaussian(nil, 1)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGaussian_ConstantSeriesUnchanged(t *testing.T) {
	in := []float64{9.81, 9.81, 9.81, 9.81, 9.81, 9.81}
	for _, mode := range []Mode{Reflect, Mirror, Nearest, Wrap} {
		got, err := Gaussian(in, 1.5, WithMode(mode))
		require.NoError(t, err)
		assert.InDeltaSlice(t, in, got, 1e-12, "mode=%v", mode)
	}
}

func TestGaussian_DoublingSigmaDoesNotIncreaseVariance(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	series := make([]float64, 4000)
	for i := range series {
		series[i] = 9.81 + r.NormFloat64() + 0.5*math.Sin(float64(i)/50)
	}

	prev := stat.Variance(series, nil)
	for _, sigma := range []float64{0.5, 1, 2, 4, 8} {
		got, err := Gaussian(series, sigma)
		require.NoError(t, err)
		v := stat.Variance(got, nil)
		assert.LessOrEqual(t, v, prev, "sigma=%v", sigma)
		prev = v
	}
}

func TestGaussian_BoundaryModes(t *testing.T) {
	in := []float64{1, 2, 3}
	// sigma=1, truncate=1 gives a three-tap kernel [a, 1-2a, a].
	w, err := Kernel(1, 1)
	require.NoError(t, err)
	require.Len(t, w, 3)
	a := w[0]

	tests := []struct {
		name  string
		opt   Option
		first float64
		last  float64
	}{
		{"reflect", WithMode(Reflect), 1 + a, 3 - a},
		{"nearest", WithMode(Nearest), 1 + a, 3 - a},
		{"mirror", WithMode(Mirror), 1 + 2*a, 3 - 2*a},
		{"wrap", WithMode(Wrap), 1 + 3*a, 3 - 3*a},
		{"constant", WithConstant(10), 1 + 10*a, 3 + 6*a},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Gaussian(in, 1, WithTruncate(1), tt.opt)
			require.NoError(t, err)
			assert.InDelta(t, tt.first, got[0], 1e-12)
			assert.InDelta(t, 2.0, got[1], 1e-12)
			assert.InDelta(t, tt.last, got[2], 1e-12)
		})
	}
}

func TestGaussian_SingleSample(t *testing.T) {
	for _, mode := range []Mode{Reflect, Mirror, Nearest, Wrap} {
		got, err := Gaussian([]float64{4}, 3, WithMode(mode))
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{4}, got, 1e-12, "mode=%v", mode)
	}
}

func TestKernel(t *testing.T) {
	w, err := Kernel(0.5, DefaultTruncate)
	require.NoError(t, err)
	// radius = int(4*0.5 + 0.5) = 2
	assert.Len(t, w, 5)
	assert.InDelta(t, 1.0, floats.Sum(w), 1e-12)
	assert.Equal(t, w[0], w[4])
	assert.Equal(t, w[1], w[3])
	assert.Greater(t, w[2], w[1])

	w, err = Kernel(0.1, DefaultTruncate)
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, w)
}

func TestParseMode(t *testing.T) {
	for _, name := range []string{"reflect", "mirror", "nearest", "wrap", "constant"} {
		m, ok := ParseMode(name)
		require.True(t, ok, name)
		assert.Equal(t, name, m.String())
	}
	_, ok := ParseMode("zero-pad")
	assert.False(t, ok)
	assert.Equal(t, "unknown", Mode(99).String())
}

// direct applies the full 2r+1 tap kernel to the extended series.
func direct(series []float64, sigma float64, o options) []float64 {
	r := int(radius(sigma, o.truncate))
	w := kernel(sigma, r)
	out := make([]float64, len(series))
	for i := range out {
		for k, wk := range w {
			out[i] += wk * o.at(series, i+k-r)
		}
	}
	return out
}

func TestGaussian_WideKernelMatchesDirect(t *testing.T) {
	in := []float64{3, 0, 5, 1, 4}
	modes := []options{
		{truncate: DefaultTruncate, mode: Reflect},
		{truncate: DefaultTruncate, mode: Mirror},
		{truncate: DefaultTruncate, mode: Nearest},
		{truncate: DefaultTruncate, mode: Wrap},
		{truncate: DefaultTruncate, mode: Constant, cval: 7},
		{truncate: 2.3, mode: Reflect},
	}
	for _, o := range modes {
		for _, sigma := range []float64{1.7, 6, 200, 3000} {
			got, err := Gaussian(in, sigma, WithTruncate(o.truncate), WithMode(o.mode), func(p *options) { p.cval = o.cval })
			require.NoError(t, err)
			assert.InDeltaSlice(t, direct(in, sigma, o), got, 1e-10, "mode=%v truncate=%v sigma=%v", o.mode, o.truncate, sigma)
		}
	}
}

func TestGaussian_HugeSigmaIsFlat(t *testing.T) {
	in := []float64{0, 0, 10, 0, 0}
	tests := []struct {
		opt  Option
		want float64
	}{
		{WithMode(Reflect), 2},
		{WithMode(Wrap), 2},
		{WithMode(Mirror), 2.5},
		{WithMode(Nearest), 0},
		{WithConstant(1), 1},
	}
	for _, tt := range tests {
		for _, sigma := range []float64{1e9, 1e18, 3e18, 1e300} {
			got, err := Gaussian(in, sigma, tt.opt)
			require.NoError(t, err, "sigma=%v", sigma)
			require.Len(t, got, len(in))
			for i, v := range got {
				assert.InDelta(t, tt.want, v, 1e-6, "sigma=%v i=%d", sigma, i)
			}
		}
	}
}

func TestGaussian_WiderSigmaFlattensPeak(t *testing.T) {
	in := []float64{0, 0, 10, 0, 0}
	prev := math.Inf(1)
	for _, sigma := range []float64{0.5, 1, 2, 4} {
		got, err := Gaussian(in, sigma)
		require.NoError(t, err)
		assert.Less(t, got[2], prev, "sigma=%v", sigma)
		prev = got[2]
	}
}

func TestKernel_TooWide(t *testing.T) {
	_, err := Kernel(1e18, DefaultTruncate)
	var paramErr *InvalidParameterError
	require.True(t, errors.As(err, &paramErr))
	assert.Equal(t, "sigma", paramErr.Name)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(0.5, DefaultTruncate))
	assert.Error(t, Validate(0, DefaultTruncate))
	assert.Error(t, Validate(1, math.NaN()))
}
