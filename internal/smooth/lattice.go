package smooth

import "math"

const (
	// maxDirectTerms is the longest lattice summed term by term when the
	// Gaussian is smooth enough for Euler-Maclaurin.
	maxDirectTerms = 64
	// eulerMaclaurinScale is the smallest sigma/step for which three
	// correction terms reach float64 precision.
	eulerMaclaurinScale = 16
	// underflowSigmas is where exp(-u²/2) underflows to zero.
	underflowSigmas = 40
)

// latticeSum returns the sum of exp(-y²/2σ²) over the points
// y = offset + m*step that lie in [lo, hi].
func latticeSum(offset, step, lo, hi, sigma float64) float64 {
	fine := sigma/step >= eulerMaclaurinScale
	if !fine {
		lo = math.Max(lo, -underflowSigmas*sigma)
		hi = math.Min(hi, underflowSigmas*sigma)
	}
	m0 := math.Ceil((lo - offset) / step)
	m1 := math.Floor((hi - offset) / step)
	if !(m1 >= m0) {
		return 0
	}
	if fine && m1-m0 >= maxDirectTerms {
		return eulerMaclaurin((offset+m0*step)/sigma, (offset+m1*step)/sigma, step/sigma)
	}
	sum := 0.0
	for c := 0; c <= int(m1-m0); c++ {
		sum += gauss((offset + (m0+float64(c))*step) / sigma)
	}
	return sum
}

// eulerMaclaurin approximates the lattice sum between u0 and u1 (in units
// of sigma) with spacing p = step/sigma.
func eulerMaclaurin(u0, u1, p float64) float64 {
	sum := math.Sqrt(math.Pi/2) * gaussMass(u0, u1) / p
	sum += (gauss(u0) + gauss(u1)) / 2
	sum += (derivative(1, u1, p) - derivative(1, u0, p)) / 12
	sum -= (derivative(3, u1, p) - derivative(3, u0, p)) / 720
	sum += (derivative(5, u1, p) - derivative(5, u0, p)) / 30240
	return sum
}

// gaussMass is erf(u1/√2) - erf(u0/√2), computed from erfc in the tails.
func gaussMass(u0, u1 float64) float64 {
	switch {
	case u0 >= 0:
		return math.Erfc(u0/math.Sqrt2) - math.Erfc(u1/math.Sqrt2)
	case u1 <= 0:
		return math.Erfc(-u1/math.Sqrt2) - math.Erfc(-u0/math.Sqrt2)
	default:
		return math.Erf(u1/math.Sqrt2) - math.Erf(u0/math.Sqrt2)
	}
}

// derivative is step^k times the k-th derivative of exp(-y²/2σ²) at y = uσ,
// for odd k up to 5.
func derivative(k int, u, p float64) float64 {
	if math.IsInf(u, 0) {
		return 0
	}
	var he float64
	switch k {
	case 1:
		he = u
	case 3:
		he = u*u*u - 3*u
	case 5:
		he = u*u*u*u*u - 10*u*u*u + 15*u
	}
	return -math.Pow(p, float64(k)) * he * gauss(u)
}
