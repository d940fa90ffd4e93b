package acf

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-interpacf/dsp/interp"
	"github.com/cwbudde/algo-interpacf/stats/cadence"
)

// gridSlack absorbs rounding when the span is an integer multiple of the
// step, so the last timestamp still lands on the grid.
const gridSlack = 1e-9

// Grid is a light curve resampled onto constant spacing.
type Grid struct {
	Times  []float64 // Times[i] = Times[0] + i*Step
	Values []float64 // interpolated values, no missing samples
	Step   float64
	Filled int // grid points that do not coincide with a valid sample
}

// Len returns the number of grid points.
func (g Grid) Len() int {
	return len(g.Times)
}

// Resample places the series on a uniform grid from the first to the last
// timestamp. Missing samples (NaN or ±Inf values, or absent timestamps) are
// filled by linear interpolation between the neighbouring valid samples;
// grid points outside the valid samples take the nearest valid value.
func Resample(times, values []float64, opts ...Option) (Grid, error) {
	cfg := ApplyOptions(opts...)
	return resample(times, values, cfg)
}

func resample(times, values []float64, cfg Config) (Grid, error) {
	if err := validateSeries(times, values); err != nil {
		return Grid{}, err
	}

	step, err := gridStep(times, cfg.Step)
	if err != nil {
		return Grid{}, err
	}

	n, err := gridLength(times[0], times[len(times)-1], step, cfg.MaxGridLength)
	if err != nil {
		return Grid{}, err
	}

	validT, validV := validSamples(times, values)
	if len(validT) < 2 {
		return Grid{}, degenerateInput("values", -1, "need at least 2 finite samples, got %d", len(validT))
	}

	fit, err := interp.NewPiecewiseLinear(validT, validV)
	if err != nil {
		return Grid{}, fmt.Errorf("acf: interpolate: %w", err)
	}

	g := Grid{
		Times:  make([]float64, n),
		Values: make([]float64, n),
		Step:   step,
	}
	for i := range g.Times {
		g.Times[i] = times[0] + float64(i)*step
	}
	fit.SampleTo(g.Values, g.Times)
	g.Filled = countFilled(g.Times, validT, step)

	return g, nil
}

func validateSeries(times, values []float64) error {
	if len(times) != len(values) {
		return invalidInput("values", -1, "length %d does not match times length %d", len(values), len(times))
	}
	for i, t := range times {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return invalidInput("times", i, "non-finite timestamp %v", t)
		}
		if i == 0 {
			continue
		}
		switch prev := times[i-1]; {
		case t == prev:
			return invalidInput("times", i, "duplicate timestamp %v", t)
		case t < prev:
			return invalidInput("times", i, "timestamps not ascending (%v after %v)", t, prev)
		}
	}
	return nil
}

func gridStep(times []float64, mode StepMode) (float64, error) {
	var (
		step float64
		ok   bool
	)
	switch mode {
	case StepMedian:
		step, ok = cadence.MedianStep(times)
	default:
		step, ok = cadence.MinStep(times)
	}
	if !ok {
		return 0, degenerateInput("times", -1, "need at least 2 distinct timestamps, got %d", len(times))
	}
	if !(step > 0) || math.IsInf(step, 0) {
		return 0, degenerateInput("times", -1, "grid step %v is not positive", step)
	}
	return step, nil
}

func gridLength(first, last, step float64, limit int) (int, error) {
	intervals := math.Floor((last-first)/step + gridSlack)
	if intervals+1 > float64(limit) {
		return 0, degenerateInput("times", -1, "grid of %.0f points at step %v exceeds limit %d", intervals+1, step, limit)
	}
	return int(intervals) + 1, nil
}

func validSamples(times, values []float64) ([]float64, []float64) {
	validT := make([]float64, 0, len(times))
	validV := make([]float64, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		validT = append(validT, times[i])
		validV = append(validV, v)
	}
	return validT, validV
}

// countFilled counts grid times without a valid sample within a small
// fraction of the step. Both inputs are ascending.
func countFilled(grid, valid []float64, step float64) int {
	tol := step * 1e-6
	filled := 0
	j := 0
	for _, g := range grid {
		for j < len(valid) && valid[j] < g-tol {
			j++
		}
		if j < len(valid) && math.Abs(valid[j]-g) <= tol {
			continue
		}
		filled++
	}
	return filled
}
