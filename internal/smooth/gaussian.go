// Package smooth implements 1-D Gaussian smoothing of sample series.
//
// The kernel and boundary handling follow scipy.ndimage.gaussian_filter1d:
// the kernel radius is int(truncate*sigma + 0.5), weights are normalised to
// sum to one, and the series is extended past its ends according to Mode
// (reflect by default).
package smooth

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultTruncate is the kernel half-width in standard deviations.
const DefaultTruncate = 4.0

// Mode selects how the series is extended beyond its ends.
type Mode int

const (
	// Reflect extends by reflecting about the edge of the last sample (d c b a | a b c d | d c b a).
	Reflect Mode = iota
	// Mirror reflects about the centre of the last sample (d c b | a b c d | c b a).
	Mirror
	// Nearest repeats the edge sample (a a a | a b c d | d d d).
	Nearest
	// Wrap treats the series as periodic (a b c d | a b c d | a b c d).
	Wrap
	// Constant pads with a fixed value (k k k | a b c d | k k k).
	Constant
)

var modeNames = [...]string{"reflect", "mirror", "nearest", "wrap", "constant"}

func (m Mode) String() string {
	if int(m) >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// ParseMode maps a boundary mode name to a Mode.
func ParseMode(name string) (Mode, bool) {
	for i, n := range modeNames {
		if n == name {
			return Mode(i), true
		}
	}
	return Reflect, false
}

type options struct {
	truncate float64
	mode     Mode
	cval     float64
}

// Option configures Gaussian.
type Option func(*options)

// WithTruncate sets the kernel half-width in standard deviations.
func WithTruncate(truncate float64) Option {
	return func(o *options) { o.truncate = truncate }
}

// WithMode sets the boundary mode.
func WithMode(mode Mode) Option {
	return func(o *options) { o.mode = mode }
}

// WithConstant selects Constant mode padding with cval.
func WithConstant(cval float64) Option {
	return func(o *options) {
		o.mode = Constant
		o.cval = cval
	}
}

// maxKernelRadius bounds the explicit weight slice returned by Kernel.
const maxKernelRadius = 1 << 24

// Validate reports whether sigma and truncate describe a usable kernel.
func Validate(sigma, truncate float64) error {
	if !(sigma > 0) || math.IsInf(sigma, 1) {
		return &InvalidParameterError{Name: "sigma", Value: sigma, Want: "a positive finite number"}
	}
	if !(truncate > 0) || math.IsInf(truncate, 1) {
		return &InvalidParameterError{Name: "truncate", Value: truncate, Want: "a positive finite number"}
	}
	return nil
}

// radius is int(truncate*sigma + 0.5), kept as a float so that very wide
// kernels do not overflow.
func radius(sigma, truncate float64) float64 {
	return math.Floor(truncate*sigma + 0.5)
}

// Kernel returns the normalised Gaussian weights for sigma, of length 2r+1
// with r = int(truncate*sigma + 0.5).
func Kernel(sigma, truncate float64) ([]float64, error) {
	if err := Validate(sigma, truncate); err != nil {
		return nil, err
	}
	r := radius(sigma, truncate)
	if r > maxKernelRadius {
		return nil, &InvalidParameterError{Name: "sigma", Value: sigma,
			Want: fmt.Sprintf("small enough for a kernel radius of at most %d", maxKernelRadius)}
	}
	return kernel(sigma, int(r)), nil
}

func kernel(sigma float64, r int) []float64 {
	weights := make([]float64, 2*r+1)
	for i := range weights {
		weights[i] = gauss(float64(i-r) / sigma)
	}
	floats.Scale(1/floats.Sum(weights), weights)
	return weights
}

func gauss(u float64) float64 {
	return math.Exp(-u * u / 2)
}

// Gaussian smooths series with a Gaussian kernel of standard deviation sigma.
// The result has the same length as series; series is not modified.
func Gaussian(series []float64, sigma float64, opts ...Option) ([]float64, error) {
	o := options{truncate: DefaultTruncate, mode: Reflect}
	for _, opt := range opts {
		opt(&o)
	}
	if err := Validate(sigma, o.truncate); err != nil {
		return nil, err
	}

	n := len(series)
	out := make([]float64, n)
	if n == 0 {
		return out, nil
	}

	r := radius(sigma, o.truncate)
	if r > float64(n) {
		o.wide(series, sigma, r, out)
		return out, nil
	}

	weights := kernel(sigma, int(r))
	padded := make([]float64, n+2*int(r))
	for i := range padded {
		padded[i] = o.at(series, i-int(r))
	}
	// The kernel is symmetric, so correlation and convolution coincide.
	for i := range out {
		out[i] = floats.Dot(weights, padded[i:i+len(weights)])
	}
	return out, nil
}

// wide smooths with a kernel longer than the series. Taps that land on the
// same extended sample are summed first, so the work and memory depend on
// the series length rather than on r.
func (o options) wide(series []float64, sigma, r float64, out []float64) {
	n := len(series)
	if o.mode == Constant || o.mode == Nearest {
		left, right := o.cval, o.cval
		if o.mode == Nearest {
			left, right = series[0], series[n-1]
		}
		total := latticeSum(0, 1, -r, r, sigma)
		for i := range out {
			sum := 0.0
			for j, v := range series {
				sum += gauss(float64(j-i)/sigma) * v
			}
			sum += left * latticeSum(0, 1, -r, float64(-1-i), sigma)
			sum += right * latticeSum(0, 1, float64(n-i), r, sigma)
			out[i] = sum / total
		}
		return
	}

	// Reflect, mirror and wrap extensions repeat with this period.
	period := 2 * n
	switch o.mode {
	case Mirror:
		period = max(2*n-2, 1)
	case Wrap:
		period = n
	}
	folded := make([]float64, period)
	for j := range folded {
		folded[j] = latticeSum(float64(j), float64(period), -r, r, sigma)
	}
	floats.Scale(1/floats.Sum(folded), folded)
	for i := range out {
		sum := 0.0
		for j, w := range folded {
			sum += w * o.at(series, i+j)
		}
		out[i] = sum
	}
}

// at returns series[i] with i extended past either end according to the mode.
func (o options) at(series []float64, i int) float64 {
	n := len(series)
	if i >= 0 && i < n {
		return series[i]
	}
	switch o.mode {
	case Constant:
		return o.cval
	case Nearest:
		if i < 0 {
			return series[0]
		}
		return series[n-1]
	case Wrap:
		return series[mod(i, n)]
	case Mirror:
		if n == 1 {
			return series[0]
		}
		period := 2*n - 2
		i = mod(i, period)
		if i >= n {
			i = period - i
		}
		return series[i]
	default:
		period := 2 * n
		i = mod(i, period)
		if i >= n {
			i = period - 1 - i
		}
		return series[i]
	}
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
