package acf

import "math"

// StepMode selects how the uniform grid step is derived from the timestamps.
type StepMode int

const (
	// StepMinimum uses the smallest positive spacing between consecutive
	// timestamps.
	StepMinimum StepMode = iota
	// StepMedian uses the median positive spacing. Jittered cadences then do
	// not force an overly fine grid, at the cost of merging samples closer
	// than the median.
	StepMedian
)

// LagUnit selects the unit of the returned lag axis.
type LagUnit int

const (
	// LagTime reports lag k as k*step, in the units of the timestamps.
	LagTime LagUnit = iota
	// LagIndex reports lag k as the grid offset k.
	LagIndex
)

// Method selects the autocorrelation algorithm. All methods agree up to
// floating-point rounding.
type Method int

const (
	// MethodAuto uses direct summation for short grids and the FFT above
	// conv.FFTThreshold points.
	MethodAuto Method = iota
	MethodDirect
	MethodFFT
)

// DefaultMaxGridLength bounds the number of grid points so that a single
// near-duplicate timestamp pair cannot request an enormous grid.
const DefaultMaxGridLength = 1 << 22

// Config holds settings for [InterpolatedACF] and [Resample].
type Config struct {
	Step          StepMode
	Lag           LagUnit
	Method        Method
	MaxGridLength int
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the default resampling and correlation settings.
func DefaultConfig() Config {
	return Config{
		Step:          StepMinimum,
		Lag:           LagTime,
		Method:        MethodAuto,
		MaxGridLength: DefaultMaxGridLength,
	}
}

// WithStep selects the grid step estimator.
func WithStep(mode StepMode) Option {
	return func(cfg *Config) {
		if mode == StepMinimum || mode == StepMedian {
			cfg.Step = mode
		}
	}
}

// WithLagUnit selects the unit of the lag axis.
func WithLagUnit(unit LagUnit) Option {
	return func(cfg *Config) {
		if unit == LagTime || unit == LagIndex {
			cfg.Lag = unit
		}
	}
}

// WithMethod selects the autocorrelation algorithm.
func WithMethod(method Method) Option {
	return func(cfg *Config) {
		if method >= MethodAuto && method <= MethodFFT {
			cfg.Method = method
		}
	}
}

// WithMaxGridLength overrides DefaultMaxGridLength.
func WithMaxGridLength(n int) Option {
	return func(cfg *Config) {
		if n >= 2 {
			cfg.MaxGridLength = n
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Smoother selects the smoothing kernel used by [DominantPeriod].
type Smoother int

const (
	// SmoothBoxcar is a moving average whose width is a fraction of the
	// curve length.
	SmoothBoxcar Smoother = iota
	// SmoothGaussian is a truncated Gaussian with fixed width in lags.
	SmoothGaussian
)

// PeakSelection selects which local maximum [DominantPeriod] reports.
type PeakSelection int

const (
	// PeakFirst reports the first local maximum after lag 0. The highest
	// maximum can belong to a harmonic.
	PeakFirst PeakSelection = iota
	// PeakHighest reports the local maximum with the largest smoothed value.
	PeakHighest
)

// Smoothing defaults. The Gaussian defaults follow McQuillan, Aigrain &
// Mazeh (2013), MNRAS 432, 1203.
const (
	DefaultWindowFraction = 0.05
	DefaultGaussianFWHM   = 18.0
	DefaultGaussianWindow = 56.0
)

// PeriodConfig holds settings for [DominantPeriod].
type PeriodConfig struct {
	Smooth         bool
	Smoother       Smoother
	WindowFraction float64 // boxcar width as a fraction of the curve length
	FWHM           float64 // Gaussian full width at half maximum, in lags
	Window         float64 // Gaussian truncation radius, in lags
	MinLag         float64 // exclusive lower bound, NaN for none
	MaxLag         float64 // exclusive upper bound, NaN for none
	Selection      PeakSelection
	Renderer       Renderer
}

// PeriodOption mutates a PeriodConfig.
type PeriodOption func(*PeriodConfig)

// DefaultPeriodConfig returns boxcar smoothing, no lag limits, first-peak
// selection and no renderer.
func DefaultPeriodConfig() PeriodConfig {
	return PeriodConfig{
		Smooth:         true,
		Smoother:       SmoothBoxcar,
		WindowFraction: DefaultWindowFraction,
		FWHM:           DefaultGaussianFWHM,
		Window:         DefaultGaussianWindow,
		MinLag:         math.NaN(),
		MaxLag:         math.NaN(),
		Selection:      PeakFirst,
	}
}

// WithSmoothing enables or disables smoothing before the peak search.
func WithSmoothing(enabled bool) PeriodOption {
	return func(cfg *PeriodConfig) {
		cfg.Smooth = enabled
	}
}

// WithWindowFraction sets the boxcar width as a fraction of the curve length.
func WithWindowFraction(fraction float64) PeriodOption {
	return func(cfg *PeriodConfig) {
		if fraction > 0 && fraction <= 1 {
			cfg.WindowFraction = fraction
		}
	}
}

// WithGaussian switches to Gaussian smoothing with the given FWHM and
// truncation radius, both in lags.
func WithGaussian(fwhm, window float64) PeriodOption {
	return func(cfg *PeriodConfig) {
		cfg.Smoother = SmoothGaussian
		if fwhm > 0 && !math.IsInf(fwhm, 0) {
			cfg.FWHM = fwhm
		}
		if window >= 0 && !math.IsInf(window, 0) {
			cfg.Window = window
		}
	}
}

// WithMinLag only considers lags strictly greater than min.
func WithMinLag(min float64) PeriodOption {
	return func(cfg *PeriodConfig) {
		cfg.MinLag = min
	}
}

// WithMaxLag only considers lags strictly less than max.
func WithMaxLag(max float64) PeriodOption {
	return func(cfg *PeriodConfig) {
		cfg.MaxLag = max
	}
}

// WithPeakSelection selects first or highest local maximum.
func WithPeakSelection(sel PeakSelection) PeriodOption {
	return func(cfg *PeriodConfig) {
		if sel == PeakFirst || sel == PeakHighest {
			cfg.Selection = sel
		}
	}
}

// WithRenderer requests a diagnostic rendering of the searched curve.
func WithRenderer(r Renderer) PeriodOption {
	return func(cfg *PeriodConfig) {
		cfg.Renderer = r
	}
}

// ApplyPeriodOptions applies zero or more options to the default config.
func ApplyPeriodOptions(opts ...PeriodOption) PeriodConfig {
	cfg := DefaultPeriodConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
