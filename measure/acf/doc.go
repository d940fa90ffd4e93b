// Package acf computes the autocorrelation function of gapped or unevenly
// sampled light curves and extracts their dominant period.
//
// The pipeline has two stages:
//
//   - [InterpolatedACF] resamples (time, value) pairs onto a uniform grid,
//     filling missing samples by linear interpolation, subtracts the mean and
//     returns the normalized one-sided autocorrelation per lag.
//   - [DominantPeriod] optionally smooths that curve and returns the lag of
//     its first strict local maximum after lag 0.
//
// # Missing data
//
// A sample is missing when its value is NaN or ±Inf, or when its timestamp
// is simply absent from the input. The grid step is the smallest positive
// spacing between consecutive timestamps (see [WithStep] for the median
// alternative), so a gap never widens the grid. Grid points before the first
// or after the last valid sample take the value of that sample; nothing is
// extrapolated linearly.
//
// # Usage
//
//	lag, r, err := acf.InterpolatedACF(times, flux)
//	if err != nil {
//		return err
//	}
//	period, err := acf.DominantPeriod(lag, r)
//	if errors.Is(err, acf.ErrNoPeakFound) {
//		// retry with different smoothing or a longer light curve
//	}
//
// # Errors
//
// Every failure wraps one of [ErrInvalidInput], [ErrDegenerateInput],
// [ErrNoPeakFound] or [ErrRender]. Input errors are [*InputError] values
// naming the offending parameter.
//
// Both operations are pure: they keep no state between calls and may be used
// concurrently with distinct input slices.
package acf
