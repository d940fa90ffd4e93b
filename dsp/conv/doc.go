// Package conv provides valid-mode convolution for short smoothing kernels
// and one-sided autocorrelation routines.
//
// # Usage
//
//	y, err := conv.Valid(padded, kernel) // len(padded)-len(kernel)+1 outputs
//	r, err := conv.AutoCorrelate(x)      // lags 0..len(x)-1
//
// # Autocorrelation
//
// [AutoCorrelate] evaluates r[k] = sum_i x[i]*x[i+k] for every non-negative
// lag by direct summation, O(N^2). [AutoCorrelateFFT] computes the same sums
// through a zero-padded FFT in O(N log N); the two agree up to floating-point
// rounding. [AutoCorrelateAuto] picks one by length.
//
// [Normalize] divides a lag curve by its zero-lag value. The zero-lag entry
// of the result is exactly 1.0.
package conv
