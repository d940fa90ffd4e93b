package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cwbudde/algo-interpacf/cmd/interpacf/config"
	"github.com/cwbudde/algo-interpacf/internal/lightcurve"
	"github.com/cwbudde/algo-interpacf/measure/acf"
	"github.com/cwbudde/algo-interpacf/measure/acf/acfplot"
)

// run loads cfg.Input ("-" for stdin), computes the interpolated ACF and
// writes the dominant period to stdout. A failing diagnostic renderer is
// logged and does not fail the run.
func run(cfg *config.Config, stdin io.Reader, stdout, stderr io.Writer, log *slog.Logger) error {
	curve, err := loadCurve(cfg, stdin)
	if err != nil {
		return err
	}
	log.Debug("loaded light curve",
		"input", cfg.Input,
		"format", curve.Format.String(),
		"samples", curve.Len(),
		"missing", curve.Missing,
	)

	res, err := acf.Compute(curve.Times, curve.Values, cfg.ACFOptions()...)
	if err != nil {
		return fmt.Errorf("autocorrelation: %w", err)
	}
	log.Info("resampled",
		"step", res.Grid.Step,
		"points", res.Grid.Len(),
		"filled", res.Grid.Filled,
		"mean", res.Mean,
	)

	renderers, closeAll, err := diagnosticRenderers(cfg, stderr)
	if err != nil {
		return err
	}
	opts := cfg.PeriodOptions()
	if len(renderers) > 0 {
		opts = append(opts, acf.WithRenderer(multiRenderer(renderers)))
	}

	period, err := acf.DominantPeriod(res.Lag, res.ACF, opts...)
	if cerr := closeAll(); cerr != nil && err == nil {
		err = fmt.Errorf("%w: %w", acf.ErrRender, cerr)
	}
	switch {
	case errors.Is(err, acf.ErrRender):
		log.Warn("diagnostic output failed", "error", err)
	case err != nil:
		return fmt.Errorf("period: %w", err)
	}

	log.Info("dominant period", "period", period, "lag_unit", cfg.Lag)
	_, err = fmt.Fprintf(stdout, "%g\n", period)
	return err
}

func loadCurve(cfg *config.Config, stdin io.Reader) (lightcurve.Curve, error) {
	if cfg.Input == "-" {
		return lightcurve.Read(stdin, cfg.LoadOptions())
	}
	return lightcurve.Load(cfg.Input, cfg.LoadOptions())
}

// diagnosticRenderers builds the renderers requested by -plot and -plot-csv.
// The returned close function releases any opened files.
func diagnosticRenderers(cfg *config.Config, stderr io.Writer) ([]acf.Renderer, func() error, error) {
	var (
		renderers []acf.Renderer
		files     []*os.File
	)
	closeAll := func() error {
		var errs []error
		for _, f := range files {
			errs = append(errs, f.Close())
		}
		return errors.Join(errs...)
	}

	if cfg.Plot == "text" {
		renderers = append(renderers, acfplot.NewText(stderr, acfplot.DefaultWidth, acfplot.DefaultHeight))
	}
	if cfg.PlotCSV != "" {
		f, err := os.Create(cfg.PlotCSV)
		if err != nil {
			return nil, nil, fmt.Errorf("plot csv: %w", err)
		}
		files = append(files, f)
		renderers = append(renderers, acfplot.NewCSV(f))
	}
	return renderers, closeAll, nil
}

func multiRenderer(rs []acf.Renderer) acf.Renderer {
	return acf.RendererFunc(func(d acf.Diagnostic) error {
		var errs []error
		for _, r := range rs {
			errs = append(errs, r.Render(d))
		}
		return errors.Join(errs...)
	})
}
