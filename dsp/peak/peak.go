// Package peak locates strict local maxima in sampled curves.
//
// A strict local maximum is an index i with x[i-1] < x[i] > x[i+1]. The
// first and last samples are never maxima, and flat tops are not reported.
package peak

import "errors"

// ErrNotFound is returned when a curve has no strict local maximum in the
// searched range.
var ErrNotFound = errors.New("peak: no local maximum")

// RelativeMaxima returns the indices of all strict local maxima of x in
// ascending order.
func RelativeMaxima(x []float64) []int {
	var out []int
	for i := 1; i+1 < len(x); i++ {
		if isLocalMax(x, i) {
			out = append(out, i)
		}
	}
	return out
}

// FirstLocalMax returns the smallest index i >= start that is a strict local
// maximum. start values below 1 are treated as 1.
func FirstLocalMax(x []float64, start int) (int, error) {
	if start < 1 {
		start = 1
	}
	for i := start; i+1 < len(x); i++ {
		if isLocalMax(x, i) {
			return i, nil
		}
	}
	return -1, ErrNotFound
}

// HighestLocalMax returns the strict local maximum with the largest value
// among indices >= start. Ties resolve to the smaller index.
func HighestLocalMax(x []float64, start int) (int, error) {
	if start < 1 {
		start = 1
	}
	best := -1
	for i := start; i+1 < len(x); i++ {
		if isLocalMax(x, i) && (best < 0 || x[i] > x[best]) {
			best = i
		}
	}
	if best < 0 {
		return -1, ErrNotFound
	}
	return best, nil
}

func isLocalMax(x []float64, i int) bool {
	return x[i-1] < x[i] && x[i] > x[i+1]
}
