// Package acfplot renders [acf.Diagnostic] values for inspection: as a CSV
// table for external plotting tools or as a character chart for terminals.
package acfplot

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-interpacf/measure/acf"
)

// ErrEmptyDiagnostic is returned when a diagnostic carries no samples.
var ErrEmptyDiagnostic = errors.New("acfplot: empty diagnostic")

// CSV writes one row per lag with columns lag, acf, smoothed and peak.
// smoothed is empty when smoothing was disabled; peak is 1 on the selected
// lag and 0 elsewhere.
type CSV struct {
	w io.Writer
}

// NewCSV returns a CSV renderer writing to w.
func NewCSV(w io.Writer) *CSV {
	return &CSV{w: w}
}

// Render implements acf.Renderer.
func (c *CSV) Render(d acf.Diagnostic) error {
	if len(d.Lag) == 0 {
		return ErrEmptyDiagnostic
	}

	cw := csv.NewWriter(c.w)
	if err := cw.Write([]string{"lag", "acf", "smoothed", "peak"}); err != nil {
		return fmt.Errorf("acfplot: write header: %w", err)
	}
	for i := range d.Lag {
		smoothed := ""
		if d.Smoothed != nil {
			smoothed = formatFloat(d.Smoothed[i])
		}
		peak := "0"
		if i == d.PeakIndex {
			peak = "1"
		}
		record := []string{formatFloat(d.Lag[i]), formatFloat(d.Raw[i]), smoothed, peak}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("acfplot: write row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("acfplot: flush: %w", err)
	}
	return nil
}

// Chart size defaults.
const (
	DefaultWidth  = 72
	DefaultHeight = 16
)

// Text draws the raw curve with '.', the smoothed curve with '*' and the
// selected period as a vertical '|' column.
type Text struct {
	w      io.Writer
	width  int
	height int
}

// NewText returns a chart renderer. Non-positive sizes select the defaults.
func NewText(w io.Writer, width, height int) *Text {
	if width <= 1 {
		width = DefaultWidth
	}
	if height <= 1 {
		height = DefaultHeight
	}
	return &Text{w: w, width: width, height: height}
}

// Render implements acf.Renderer.
func (t *Text) Render(d acf.Diagnostic) error {
	n := len(d.Lag)
	if n == 0 {
		return ErrEmptyDiagnostic
	}

	width := t.width
	if n < width {
		width = n
	}
	lo, hi := valueRange(d.Raw, d.Smoothed)

	rows := make([][]byte, t.height)
	for r := range rows {
		rows[r] = []byte(strings.Repeat(" ", width))
	}

	column := func(i int) int {
		if n == 1 {
			return 0
		}
		return int(math.Round(float64(i) * float64(width-1) / float64(n-1)))
	}
	row := func(v float64) int {
		if hi == lo {
			return t.height / 2
		}
		return int(math.Round((hi - v) / (hi - lo) * float64(t.height-1)))
	}

	peakCol := column(d.PeakIndex)
	for r := range rows {
		rows[r][peakCol] = '|'
	}
	for i := 0; i < n; i++ {
		rows[row(d.Raw[i])][column(i)] = '.'
	}
	if d.Smoothed != nil {
		for i := 0; i < n; i++ {
			rows[row(d.Smoothed[i])][column(i)] = '*'
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "ACF  period=%s  (lag index %d)\n", formatFloat(d.Period), d.PeakIndex)
	for r, line := range rows {
		label := "      "
		switch r {
		case 0:
			label = fmt.Sprintf("%6.2f", hi)
		case len(rows) - 1:
			label = fmt.Sprintf("%6.2f", lo)
		}
		fmt.Fprintf(&b, "%s %s\n", label, strings.TrimRight(string(line), " "))
	}
	fmt.Fprintf(&b, "       lag %s .. %s\n", formatFloat(d.Lag[0]), formatFloat(d.Lag[n-1]))

	if _, err := io.WriteString(t.w, b.String()); err != nil {
		return fmt.Errorf("acfplot: write chart: %w", err)
	}
	return nil
}

func valueRange(series ...[]float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, v := range s {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	return lo, hi
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
