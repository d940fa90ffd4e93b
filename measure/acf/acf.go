package acf

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-interpacf/dsp/conv"
)

// Result bundles the resampled grid with its autocorrelation.
type Result struct {
	Grid Grid
	Mean float64   // subtracted before correlating
	Lag  []float64 // lag axis, see LagUnit
	ACF  []float64 // ACF[0] == 1
}

// InterpolatedACF resamples (times, values) onto a uniform grid and returns
// the normalized autocorrelation for every lag 0..N-1 of the N-point grid.
//
// times must be strictly ascending and finite; values may hold NaN or ±Inf
// markers for missing samples. The returned slices have equal length and
// acf[0] is exactly 1.
func InterpolatedACF(times, values []float64, opts ...Option) (lag, acf []float64, err error) {
	res, err := Compute(times, values, opts...)
	if err != nil {
		return nil, nil, err
	}
	return res.Lag, res.ACF, nil
}

// Compute is [InterpolatedACF] returning the intermediate grid as well.
func Compute(times, values []float64, opts ...Option) (*Result, error) {
	cfg := ApplyOptions(opts...)

	grid, err := resample(times, values, cfg)
	if err != nil {
		return nil, err
	}

	if floats.Max(grid.Values) == floats.Min(grid.Values) {
		return nil, degenerateInput("values", -1, "resampled series is constant")
	}

	mean := stat.Mean(grid.Values, nil)
	centered := make([]float64, grid.Len())
	copy(centered, grid.Values)
	floats.AddConst(-mean, centered)

	r, err := autocorrelate(centered, cfg.Method)
	if err != nil {
		return nil, err
	}
	if err := conv.Normalize(r); err != nil {
		if errors.Is(err, conv.ErrZeroEnergy) {
			return nil, degenerateInput("values", -1, "zero variance after mean subtraction")
		}
		return nil, fmt.Errorf("acf: normalize: %w", err)
	}

	return &Result{
		Grid: grid,
		Mean: mean,
		Lag:  lagAxis(len(r), grid.Step, cfg.Lag),
		ACF:  r,
	}, nil
}

func autocorrelate(x []float64, method Method) ([]float64, error) {
	var (
		r   []float64
		err error
	)
	switch method {
	case MethodDirect:
		r, err = conv.AutoCorrelate(x)
	case MethodFFT:
		r, err = conv.AutoCorrelateFFT(x)
	default:
		r, err = conv.AutoCorrelateAuto(x)
	}
	if err != nil {
		return nil, fmt.Errorf("acf: autocorrelate: %w", err)
	}
	return r, nil
}

func lagAxis(n int, step float64, unit LagUnit) []float64 {
	lag := make([]float64, n)
	for k := range lag {
		if unit == LagIndex {
			lag[k] = float64(k)
		} else {
			lag[k] = float64(k) * step
		}
	}
	return lag
}
