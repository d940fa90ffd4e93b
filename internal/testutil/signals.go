package testutil

import (
	"math"
	"math/rand"
)

// Cadence returns n timestamps starting at start and spaced by step.
func Cadence(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

// SampledSine evaluates amplitude*sin(2*pi*t/period) at every timestamp.
func SampledSine(times []float64, period, amplitude float64) []float64 {
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = amplitude * math.Sin(2*math.Pi*t/period)
	}
	return out
}

// Ramp returns offset + slope*t for every timestamp.
func Ramp(times []float64, slope, offset float64) []float64 {
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = offset + slope*t
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// WithGaps returns a copy of values with the given indices replaced by NaN.
// Out-of-range indices are ignored.
func WithGaps(values []float64, indices ...int) []float64 {
	out := append([]float64(nil), values...)
	for _, idx := range indices {
		if idx >= 0 && idx < len(out) {
			out[idx] = math.NaN()
		}
	}
	return out
}

// DropSamples removes the given indices from both times and values, which
// models gaps expressed as absent timestamps rather than marker values.
func DropSamples(times, values []float64, indices ...int) ([]float64, []float64) {
	skip := make(map[int]struct{}, len(indices))
	for _, idx := range indices {
		skip[idx] = struct{}{}
	}
	outT := make([]float64, 0, len(times))
	outV := make([]float64, 0, len(values))
	for i := range times {
		if _, ok := skip[i]; ok {
			continue
		}
		outT = append(outT, times[i])
		outV = append(outV, values[i])
	}
	return outT, outV
}
