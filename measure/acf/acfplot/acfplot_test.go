package acfplot

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/cwbudde/algo-interpacf/measure/acf"
)

func sampleDiagnostic() acf.Diagnostic {
	return acf.Diagnostic{
		Lag:       []float64{0, 0.5, 1, 1.5, 2},
		Raw:       []float64{1, 0.1, 0.6, 0.2, -0.3},
		Smoothed:  []float64{0.7, 0.57, 0.3, 0.17, -0.13},
		PeakIndex: 2,
		Period:    1,
	}
}

func TestCSVRender(t *testing.T) {
	var buf bytes.Buffer
	if err := NewCSV(&buf).Render(sampleDiagnostic()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 6 {
		t.Fatalf("got %d records, want 6", len(records))
	}
	if strings.Join(records[0], ",") != "lag,acf,smoothed,peak" {
		t.Fatalf("header = %v", records[0])
	}
	if strings.Join(records[3], ",") != "1,0.6,0.3,1" {
		t.Fatalf("peak row = %v", records[3])
	}
	if records[1][3] != "0" {
		t.Fatalf("non-peak row marked: %v", records[1])
	}
}

func TestCSVRenderWithoutSmoothing(t *testing.T) {
	d := sampleDiagnostic()
	d.Smoothed = nil

	var buf bytes.Buffer
	if err := NewCSV(&buf).Render(d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if records[1][2] != "" {
		t.Fatalf("smoothed column = %q, want empty", records[1][2])
	}
}

func TestTextRender(t *testing.T) {
	var buf bytes.Buffer
	if err := NewText(&buf, 5, 6).Render(sampleDiagnostic()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// Title, 6 chart rows, lag axis.
	if len(lines) != 8 {
		t.Fatalf("got %d lines, want 8:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "ACF  period=1 ") {
		t.Fatalf("title = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "  1.00 ") || !strings.HasPrefix(lines[6], " -0.30 ") {
		t.Fatalf("axis labels missing:\n%s", out)
	}
	for _, mark := range []string{".", "*", "|"} {
		if !strings.Contains(out, mark) {
			t.Fatalf("chart lacks %q:\n%s", mark, out)
		}
	}
	if !strings.Contains(lines[7], "lag 0 .. 2") {
		t.Fatalf("lag axis = %q", lines[7])
	}
}

func TestTextRenderDefaults(t *testing.T) {
	r := NewText(&bytes.Buffer{}, 0, -3)
	if r.width != DefaultWidth || r.height != DefaultHeight {
		t.Fatalf("size = %dx%d, want defaults", r.width, r.height)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestRenderErrors(t *testing.T) {
	for name, r := range map[string]acf.Renderer{
		"csv":  NewCSV(failingWriter{}),
		"text": NewText(failingWriter{}, 10, 4),
	} {
		if err := r.Render(sampleDiagnostic()); err == nil {
			t.Errorf("%s: expected write error", name)
		}
		if err := r.Render(acf.Diagnostic{}); !errors.Is(err, ErrEmptyDiagnostic) {
			t.Errorf("%s: expected ErrEmptyDiagnostic, got %v", name, err)
		}
	}
}

func TestRendererDrivesDominantPeriod(t *testing.T) {
	lag := []float64{0, 1, 2, 3, 4}
	r := []float64{1, 0.1, 0.6, 0.2, -0.3}

	var buf bytes.Buffer
	period, err := acf.DominantPeriod(lag, r, acf.WithSmoothing(false), acf.WithRenderer(NewCSV(&buf)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if period != 2 {
		t.Fatalf("period = %v, want 2", period)
	}
	if !strings.Contains(buf.String(), "2,0.6,,1") {
		t.Fatalf("peak row missing from CSV:\n%s", buf.String())
	}
}
