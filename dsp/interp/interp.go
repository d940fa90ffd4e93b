package interp

import (
	"errors"
	"fmt"
	"math"

	gonuminterp "gonum.org/v1/gonum/interp"
)

// Errors returned by interpolator construction.
var (
	ErrLengthMismatch = errors.New("interp: knots and values must have same length")
	ErrTooFewPoints   = errors.New("interp: at least two knots required")
	ErrNotIncreasing  = errors.New("interp: knots must be strictly increasing")
	ErrNonFinite      = errors.New("interp: knots and values must be finite")
)

// Linear2 interpolates between x0 and x1 at fraction t in [0,1].
func Linear2(t, x0, x1 float64) float64 {
	return x0 + t*(x1-x0)
}

// PiecewiseLinear interpolates linearly between knots and clamps to the end
// values outside the knot range.
type PiecewiseLinear struct {
	fit    gonuminterp.PiecewiseLinear
	lo, hi float64
	yLo    float64
	yHi    float64
}

// NewPiecewiseLinear fits an interpolator through (xs[i], ys[i]).
// xs must be strictly increasing and every knot and value finite.
func NewPiecewiseLinear(xs, ys []float64) (*PiecewiseLinear, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: %d knots, %d values", ErrLengthMismatch, len(xs), len(ys))
	}
	if len(xs) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(xs))
	}
	for i := range xs {
		if !isFinite(xs[i]) || !isFinite(ys[i]) {
			return nil, fmt.Errorf("%w: index %d", ErrNonFinite, i)
		}
		if i > 0 && xs[i] <= xs[i-1] {
			return nil, fmt.Errorf("%w: index %d (%v <= %v)", ErrNotIncreasing, i, xs[i], xs[i-1])
		}
	}

	p := &PiecewiseLinear{
		lo:  xs[0],
		hi:  xs[len(xs)-1],
		yLo: ys[0],
		yHi: ys[len(ys)-1],
	}
	// Inputs are validated above; gonum panics on the same conditions.
	if err := p.fit.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("interp: fit: %w", err)
	}
	return p, nil
}

// At returns the interpolated value at x.
func (p *PiecewiseLinear) At(x float64) float64 {
	switch {
	case x <= p.lo:
		return p.yLo
	case x >= p.hi:
		return p.yHi
	default:
		return p.fit.Predict(x)
	}
}

// Domain returns the first and last knot.
func (p *PiecewiseLinear) Domain() (lo, hi float64) {
	return p.lo, p.hi
}

// SampleTo evaluates the interpolator at every x in xs and writes to dst.
// dst must have the same length as xs.
func (p *PiecewiseLinear) SampleTo(dst, xs []float64) {
	for i, x := range xs {
		dst[i] = p.At(x)
	}
}

// Sample evaluates the interpolator at every x in xs.
func (p *PiecewiseLinear) Sample(xs []float64) []float64 {
	out := make([]float64, len(xs))
	p.SampleTo(out, xs)
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
