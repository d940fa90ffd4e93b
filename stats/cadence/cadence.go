// Package cadence summarizes the sampling cadence of a timestamp vector.
//
// Light curves from space photometry are nominally evenly sampled but carry
// dropped cadences, downlink gaps and occasional jitter. [Calculate] reports
// the step statistics needed to choose a uniform resampling grid.
package cadence

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GapFactor is the multiple of the median step above which a consecutive
// difference counts as a gap.
const GapFactor = 1.5

// Stats holds cadence statistics of a timestamp vector.
type Stats struct {
	Length     int
	Distinct   int // number of distinct timestamps (ties counted once)
	First      float64
	Last       float64
	Span       float64 // Last - First
	MinStep    float64 // smallest positive consecutive difference
	MedianStep float64 // median of positive consecutive differences
	MaxStep    float64
	MeanStep   float64
	Gaps       int  // positive steps larger than GapFactor*MedianStep
	Sorted     bool // non-decreasing
}

// Calculate computes cadence statistics. Step statistics consider only
// positive consecutive differences, so duplicate or out-of-order timestamps
// do not produce zero or negative steps. Without any positive difference all
// step fields are zero.
func Calculate(times []float64) Stats {
	n := len(times)
	s := Stats{Length: n, Sorted: true}
	if n == 0 {
		return s
	}

	s.First = times[0]
	s.Last = times[n-1]
	s.Span = s.Last - s.First
	s.Distinct = 1

	steps := positiveSteps(times)
	for i := 1; i < n; i++ {
		switch d := times[i] - times[i-1]; {
		case d < 0:
			s.Sorted = false
			s.Distinct++
		case d > 0:
			s.Distinct++
		}
	}
	if len(steps) == 0 {
		return s
	}

	s.MinStep = floats.Min(steps)
	s.MaxStep = floats.Max(steps)
	s.MeanStep = stat.Mean(steps, nil)
	s.MedianStep = median(steps)

	limit := GapFactor * s.MedianStep
	for _, d := range steps {
		if d > limit {
			s.Gaps++
		}
	}
	return s
}

// MinStep returns the smallest positive difference between consecutive
// timestamps. ok is false when no positive difference exists.
func MinStep(times []float64) (step float64, ok bool) {
	steps := positiveSteps(times)
	if len(steps) == 0 {
		return 0, false
	}
	return floats.Min(steps), true
}

// MedianStep returns the median positive difference between consecutive
// timestamps. ok is false when no positive difference exists.
func MedianStep(times []float64) (step float64, ok bool) {
	steps := positiveSteps(times)
	if len(steps) == 0 {
		return 0, false
	}
	return median(steps), true
}

func positiveSteps(times []float64) []float64 {
	if len(times) < 2 {
		return nil
	}
	steps := make([]float64, 0, len(times)-1)
	for i := 1; i < len(times); i++ {
		if d := times[i] - times[i-1]; d > 0 && !math.IsInf(d, 0) {
			steps = append(steps, d)
		}
	}
	return steps
}

// median sorts x in place.
func median(x []float64) float64 {
	sort.Float64s(x)
	mid := len(x) / 2
	if len(x)%2 == 1 {
		return x[mid]
	}
	return 0.5 * (x[mid-1] + x[mid])
}
