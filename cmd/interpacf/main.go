// Command interpacf estimates the dominant period of an unevenly sampled,
// gapped time series from its interpolated autocorrelation function.
//
// Usage:
//
//	interpacf [flags] <file|->
//
// The input is delimited text (time and value columns) or JSON (two arrays
// addressed by gjson paths), optionally gzip or zstd compressed. The period
// is printed on stdout in the lag unit; diagnostics go to stderr.
//
// Examples:
//
//	interpacf lightcurve.csv
//	interpacf -value-col 3 -step median kepler.tbl.gz
//	interpacf -format json -time-path data.bjd -value-path data.flux lc.json.zst
//	interpacf -gauss -peak highest -plot text lightcurve.csv
//	interpacf -smooth=false -max-lag 30 -plot-csv acf.csv lightcurve.csv
//
// Every flag can also be set through an INTERPACF_* environment variable or
// a YAML file given with -config; see package config.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/cwbudde/algo-interpacf/cmd/interpacf/config"
	"github.com/cwbudde/algo-interpacf/cmd/interpacf/logger"
)

func main() {
	cfg, err := config.Load(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "interpacf:", err)
		os.Exit(2)
	}

	log := logger.New(cfg, os.Stderr)
	slog.SetDefault(log)

	if err := run(cfg, os.Stdin, os.Stdout, os.Stderr, log); err != nil {
		log.Error("period estimation failed", "input", cfg.Input, "error", err)
		os.Exit(1)
	}
}
