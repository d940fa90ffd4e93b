package acf

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/cwbudde/algo-interpacf/dsp/peak"
	"github.com/cwbudde/algo-interpacf/dsp/smooth"
)

// Diagnostic is the data handed to a [Renderer] after a successful peak
// search. Lag and Raw are restricted to the searched lag range. Smoothed is
// nil when smoothing was disabled.
type Diagnostic struct {
	Lag       []float64
	Raw       []float64
	Smoothed  []float64
	PeakIndex int // index into Lag of the selected peak
	Period    float64
}

// Renderer presents a [Diagnostic], e.g. as a plot. It has no influence on
// the period returned by [DominantPeriod].
type Renderer interface {
	Render(d Diagnostic) error
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(d Diagnostic) error

// Render calls f(d).
func (f RendererFunc) Render(d Diagnostic) error {
	return f(d)
}

// DominantPeriod returns the lag of the first strict local maximum after
// lag 0 of the (optionally smoothed) autocorrelation curve, in the units of
// lag.
//
// By default the curve is smoothed with a boxcar whose odd width is
// DefaultWindowFraction of the curve length (at least 3). There is no
// fallback to the global maximum: a curve without a local maximum yields
// ErrNoPeakFound.
//
// When a Renderer is configured and fails, the period is still returned,
// together with an error wrapping ErrRender.
func DominantPeriod(lag, acf []float64, opts ...PeriodOption) (float64, error) {
	cfg := ApplyPeriodOptions(opts...)

	if err := validateCurve(lag, acf); err != nil {
		return math.NaN(), err
	}

	lagLim, acfLim := limitLags(lag, acf, cfg.MinLag, cfg.MaxLag)
	if len(lagLim) == 0 {
		return math.NaN(), fmt.Errorf("%w: no lags within (%v, %v)", ErrNoPeakFound, cfg.MinLag, cfg.MaxLag)
	}

	curve := acfLim
	var smoothed []float64
	if cfg.Smooth {
		var err error
		smoothed, err = smoothCurve(acfLim, cfg)
		if err != nil {
			return math.NaN(), err
		}
		curve = smoothed
	}

	idx, err := selectPeak(curve, cfg.Selection)
	if err != nil {
		if errors.Is(err, peak.ErrNotFound) {
			return math.NaN(), fmt.Errorf("%w: no local maximum in %d lags after lag %v",
				ErrNoPeakFound, len(curve), lagLim[0])
		}
		return math.NaN(), err
	}
	period := lagLim[idx]

	if cfg.Renderer != nil {
		d := Diagnostic{
			Lag:       slices.Clone(lagLim),
			Raw:       slices.Clone(acfLim),
			Smoothed:  slices.Clone(smoothed),
			PeakIndex: idx,
			Period:    period,
		}
		if err := cfg.Renderer.Render(d); err != nil {
			return period, fmt.Errorf("%w: %w", ErrRender, err)
		}
	}

	return period, nil
}

func validateCurve(lag, acf []float64) error {
	if len(lag) != len(acf) {
		return invalidInput("acf", -1, "length %d does not match lag length %d", len(acf), len(lag))
	}
	if len(lag) == 0 {
		return invalidInput("lag", -1, "empty curve")
	}
	for i := range lag {
		if math.IsNaN(lag[i]) || math.IsInf(lag[i], 0) {
			return invalidInput("lag", i, "non-finite lag %v", lag[i])
		}
		if math.IsNaN(acf[i]) || math.IsInf(acf[i], 0) {
			return invalidInput("acf", i, "non-finite correlation %v", acf[i])
		}
	}
	return nil
}

// limitLags keeps entries with min < lag < max. NaN bounds are ignored.
func limitLags(lag, acf []float64, min, max float64) ([]float64, []float64) {
	if math.IsNaN(min) && math.IsNaN(max) {
		return lag, acf
	}
	lagOut := make([]float64, 0, len(lag))
	acfOut := make([]float64, 0, len(acf))
	for i, l := range lag {
		if !math.IsNaN(min) && l <= min {
			continue
		}
		if !math.IsNaN(max) && l >= max {
			continue
		}
		lagOut = append(lagOut, l)
		acfOut = append(acfOut, acf[i])
	}
	return lagOut, acfOut
}

func smoothCurve(x []float64, cfg PeriodConfig) ([]float64, error) {
	var (
		out []float64
		err error
	)
	switch cfg.Smoother {
	case SmoothGaussian:
		radius := int(math.Round(cfg.Window))
		out, err = smooth.Gaussian(x, smooth.FWHMToSigma(cfg.FWHM), radius)
	default:
		out, err = smooth.Boxcar(x, smooth.BoxcarWidth(len(x), cfg.WindowFraction))
	}
	if err != nil {
		return nil, fmt.Errorf("acf: smooth: %w", err)
	}
	return out, nil
}

func selectPeak(curve []float64, sel PeakSelection) (int, error) {
	if sel == PeakHighest {
		return peak.HighestLocalMax(curve, 1)
	}
	return peak.FirstLocalMax(curve, 1)
}
