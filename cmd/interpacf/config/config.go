// Package config parses the interpacf command line.
//
// Settings come from, in order of precedence:
//  1. Command-line flags
//  2. INTERPACF_* environment variables (flag name upper-cased, '-' as '_')
//  3. The YAML file named by -config or INTERPACF_CONFIG
//  4. Default values
//
// Example YAML file:
//
//	format: json
//	time_path: data.bjd
//	value_path: data.flux
//	step: median
//	window_fraction: 0.1
//	peak: highest
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-interpacf/internal/lightcurve"
	"github.com/cwbudde/algo-interpacf/measure/acf"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "INTERPACF_"

// ErrUsage is returned for missing or surplus positional arguments.
var ErrUsage = errors.New("usage: interpacf [flags] <file|->")

// Config holds all command configuration.
type Config struct {
	Input      string
	ConfigFile string
	LogLevel   string
	LogFormat  string

	Format      string
	TimeColumn  int
	ValueColumn int
	TimePath    string
	ValuePath   string

	Step          string
	Lag           string
	Method        string
	MaxGridLength int

	Smooth         bool
	Gauss          bool
	WindowFraction float64
	FWHM           float64
	Window         float64
	MinLag         float64
	MaxLag         float64
	Peak           string

	Plot    string
	PlotCSV string
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		LogLevel:       "info",
		LogFormat:      "text",
		Format:         "auto",
		TimeColumn:     lightcurve.DefaultTimeColumn,
		ValueColumn:    lightcurve.DefaultValueColumn,
		TimePath:       lightcurve.DefaultTimePath,
		ValuePath:      lightcurve.DefaultValuePath,
		Step:           "min",
		Lag:            "time",
		Method:         "auto",
		MaxGridLength:  acf.DefaultMaxGridLength,
		Smooth:         true,
		WindowFraction: acf.DefaultWindowFraction,
		FWHM:           acf.DefaultGaussianFWHM,
		Window:         acf.DefaultGaussianWindow,
		MinLag:         math.NaN(),
		MaxLag:         math.NaN(),
		Peak:           "first",
	}
}

// fileConfig mirrors Config for YAML decoding; nil fields are absent.
type fileConfig struct {
	LogLevel       *string  `yaml:"log_level"`
	LogFormat      *string  `yaml:"log_format"`
	Format         *string  `yaml:"format"`
	TimeColumn     *int     `yaml:"time_col"`
	ValueColumn    *int     `yaml:"value_col"`
	TimePath       *string  `yaml:"time_path"`
	ValuePath      *string  `yaml:"value_path"`
	Step           *string  `yaml:"step"`
	Lag            *string  `yaml:"lag"`
	Method         *string  `yaml:"method"`
	MaxGridLength  *int     `yaml:"max_grid"`
	Smooth         *bool    `yaml:"smooth"`
	Gauss          *bool    `yaml:"gauss"`
	WindowFraction *float64 `yaml:"window_fraction"`
	FWHM           *float64 `yaml:"fwhm"`
	Window         *float64 `yaml:"window"`
	MinLag         *float64 `yaml:"min_lag"`
	MaxLag         *float64 `yaml:"max_lag"`
	Peak           *string  `yaml:"peak"`
	Plot           *string  `yaml:"plot"`
	PlotCSV        *string  `yaml:"plot_csv"`
}

// Load parses args (without the program name). Flag usage and parse errors
// are written to output. flag.ErrHelp is returned for -h.
func Load(args []string, output io.Writer) (*Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet("interpacf", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), ErrUsage.Error())
		fs.PrintDefaults()
	}

	fs.StringVar(&cfg.ConfigFile, "config", getEnv(envKey("config"), ""), "YAML configuration file")
	fs.StringVar(&cfg.LogLevel, "log-level", getEnv(envKey("log-level"), cfg.LogLevel), "Log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFormat, "log-format", getEnv(envKey("log-format"), cfg.LogFormat), "Log format: text or json")

	fs.StringVar(&cfg.Format, "format", getEnv(envKey("format"), cfg.Format), "Input format: auto, csv or json")
	fs.IntVar(&cfg.TimeColumn, "time-col", getEnvInt(envKey("time-col"), cfg.TimeColumn), "Zero-based time column (csv)")
	fs.IntVar(&cfg.ValueColumn, "value-col", getEnvInt(envKey("value-col"), cfg.ValueColumn), "Zero-based value column (csv)")
	fs.StringVar(&cfg.TimePath, "time-path", getEnv(envKey("time-path"), cfg.TimePath), "gjson path of the time array (json)")
	fs.StringVar(&cfg.ValuePath, "value-path", getEnv(envKey("value-path"), cfg.ValuePath), "gjson path of the value array (json)")

	fs.StringVar(&cfg.Step, "step", getEnv(envKey("step"), cfg.Step), "Grid step: min or median timestamp difference")
	fs.StringVar(&cfg.Lag, "lag", getEnv(envKey("lag"), cfg.Lag), "Lag unit: time or index")
	fs.StringVar(&cfg.Method, "method", getEnv(envKey("method"), cfg.Method), "Correlation method: auto, direct or fft")
	fs.IntVar(&cfg.MaxGridLength, "max-grid", getEnvInt(envKey("max-grid"), cfg.MaxGridLength), "Maximum number of grid points")

	fs.BoolVar(&cfg.Smooth, "smooth", getEnvBool(envKey("smooth"), cfg.Smooth), "Smooth the ACF before the peak search")
	fs.BoolVar(&cfg.Gauss, "gauss", getEnvBool(envKey("gauss"), cfg.Gauss), "Use a Gaussian instead of a boxcar kernel")
	fs.Float64Var(&cfg.WindowFraction, "window-fraction", getEnvFloat(envKey("window-fraction"), cfg.WindowFraction), "Boxcar width as a fraction of the ACF length")
	fs.Float64Var(&cfg.FWHM, "fwhm", getEnvFloat(envKey("fwhm"), cfg.FWHM), "Gaussian FWHM in lags")
	fs.Float64Var(&cfg.Window, "window", getEnvFloat(envKey("window"), cfg.Window), "Gaussian truncation radius in lags")
	fs.Float64Var(&cfg.MinLag, "min-lag", getEnvFloat(envKey("min-lag"), cfg.MinLag), "Exclusive lower lag bound (NaN for none)")
	fs.Float64Var(&cfg.MaxLag, "max-lag", getEnvFloat(envKey("max-lag"), cfg.MaxLag), "Exclusive upper lag bound (NaN for none)")
	fs.StringVar(&cfg.Peak, "peak", getEnv(envKey("peak"), cfg.Peak), "Peak selection: first or highest")

	fs.StringVar(&cfg.Plot, "plot", getEnv(envKey("plot"), ""), "Diagnostic chart on stderr: text")
	fs.StringVar(&cfg.PlotCSV, "plot-csv", getEnv(envKey("plot-csv"), ""), "Write diagnostic CSV to this path")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, ErrUsage
	}
	cfg.Input = fs.Arg(0)

	if cfg.ConfigFile != "" {
		explicit := make(map[string]bool)
		fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		if err := cfg.mergeFile(cfg.ConfigFile, func(name string) bool {
			return explicit[name] || os.Getenv(envKey(name)) != ""
		}); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeFile applies settings from a YAML file, skipping names for which
// set reports an explicit flag or environment value.
func (c *Config) mergeFile(path string, set func(name string) bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	mergeValue(&c.LogLevel, fc.LogLevel, set("log-level"))
	mergeValue(&c.LogFormat, fc.LogFormat, set("log-format"))
	mergeValue(&c.Format, fc.Format, set("format"))
	mergeValue(&c.TimeColumn, fc.TimeColumn, set("time-col"))
	mergeValue(&c.ValueColumn, fc.ValueColumn, set("value-col"))
	mergeValue(&c.TimePath, fc.TimePath, set("time-path"))
	mergeValue(&c.ValuePath, fc.ValuePath, set("value-path"))
	mergeValue(&c.Step, fc.Step, set("step"))
	mergeValue(&c.Lag, fc.Lag, set("lag"))
	mergeValue(&c.Method, fc.Method, set("method"))
	mergeValue(&c.MaxGridLength, fc.MaxGridLength, set("max-grid"))
	mergeValue(&c.Smooth, fc.Smooth, set("smooth"))
	mergeValue(&c.Gauss, fc.Gauss, set("gauss"))
	mergeValue(&c.WindowFraction, fc.WindowFraction, set("window-fraction"))
	mergeValue(&c.FWHM, fc.FWHM, set("fwhm"))
	mergeValue(&c.Window, fc.Window, set("window"))
	mergeValue(&c.MinLag, fc.MinLag, set("min-lag"))
	mergeValue(&c.MaxLag, fc.MaxLag, set("max-lag"))
	mergeValue(&c.Peak, fc.Peak, set("peak"))
	mergeValue(&c.Plot, fc.Plot, set("plot"))
	mergeValue(&c.PlotCSV, fc.PlotCSV, set("plot-csv"))
	return nil
}

func mergeValue[T any](dst *T, v *T, explicit bool) {
	if v != nil && !explicit {
		*dst = *v
	}
}

// Validate checks enumerated settings and numeric ranges.
func (c *Config) Validate() error {
	if _, err := lightcurve.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("config: -format: %w", err)
	}
	if _, err := c.stepMode(); err != nil {
		return err
	}
	if _, err := c.lagUnit(); err != nil {
		return err
	}
	if _, err := c.method(); err != nil {
		return err
	}
	if _, err := c.peakSelection(); err != nil {
		return err
	}
	if c.TimeColumn < 0 || c.ValueColumn < 0 {
		return errors.New("config: columns must be >= 0")
	}
	if c.MaxGridLength < 2 {
		return fmt.Errorf("config: -max-grid must be >= 2, got %d", c.MaxGridLength)
	}
	if !(c.WindowFraction > 0 && c.WindowFraction <= 1) {
		return fmt.Errorf("config: -window-fraction must be in (0, 1], got %v", c.WindowFraction)
	}
	if !(c.FWHM > 0) || !(c.Window >= 1) {
		return fmt.Errorf("config: -fwhm must be > 0 and -window >= 1, got %v and %v", c.FWHM, c.Window)
	}
	switch c.Plot {
	case "", "none", "text":
	default:
		return fmt.Errorf("config: -plot must be text or none, got %q", c.Plot)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("config: -log-format must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// LoadOptions returns the light curve reader settings.
func (c *Config) LoadOptions() lightcurve.Options {
	format, _ := lightcurve.ParseFormat(c.Format)
	return lightcurve.Options{
		Format:      format,
		TimeColumn:  c.TimeColumn,
		ValueColumn: c.ValueColumn,
		TimePath:    c.TimePath,
		ValuePath:   c.ValuePath,
	}
}

// ACFOptions returns the resampling and correlation options.
func (c *Config) ACFOptions() []acf.Option {
	step, _ := c.stepMode()
	unit, _ := c.lagUnit()
	method, _ := c.method()
	return []acf.Option{
		acf.WithStep(step),
		acf.WithLagUnit(unit),
		acf.WithMethod(method),
		acf.WithMaxGridLength(c.MaxGridLength),
	}
}

// PeriodOptions returns the peak search options without a renderer.
func (c *Config) PeriodOptions() []acf.PeriodOption {
	sel, _ := c.peakSelection()
	opts := []acf.PeriodOption{
		acf.WithSmoothing(c.Smooth),
		acf.WithWindowFraction(c.WindowFraction),
		acf.WithMinLag(c.MinLag),
		acf.WithMaxLag(c.MaxLag),
		acf.WithPeakSelection(sel),
	}
	if c.Gauss {
		opts = append(opts, acf.WithGaussian(c.FWHM, c.Window))
	}
	return opts
}

func (c *Config) stepMode() (acf.StepMode, error) {
	switch strings.ToLower(c.Step) {
	case "min", "minimum":
		return acf.StepMinimum, nil
	case "median":
		return acf.StepMedian, nil
	}
	return 0, fmt.Errorf("config: -step must be min or median, got %q", c.Step)
}

func (c *Config) lagUnit() (acf.LagUnit, error) {
	switch strings.ToLower(c.Lag) {
	case "time":
		return acf.LagTime, nil
	case "index":
		return acf.LagIndex, nil
	}
	return 0, fmt.Errorf("config: -lag must be time or index, got %q", c.Lag)
}

func (c *Config) method() (acf.Method, error) {
	switch strings.ToLower(c.Method) {
	case "auto":
		return acf.MethodAuto, nil
	case "direct":
		return acf.MethodDirect, nil
	case "fft":
		return acf.MethodFFT, nil
	}
	return 0, fmt.Errorf("config: -method must be auto, direct or fft, got %q", c.Method)
}

func (c *Config) peakSelection() (acf.PeakSelection, error) {
	switch strings.ToLower(c.Peak) {
	case "first":
		return acf.PeakFirst, nil
	case "highest":
		return acf.PeakHighest, nil
	}
	return 0, fmt.Errorf("config: -peak must be first or highest, got %q", c.Peak)
}

func envKey(flagName string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var i int
		if _, err := fmt.Sscanf(value, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		var f float64
		if _, err := fmt.Sscanf(value, "%g", &f); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}
