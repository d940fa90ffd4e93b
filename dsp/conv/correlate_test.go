package conv

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-interpacf/internal/testutil"
)

func TestAutoCorrelate(t *testing.T) {
	// r[k] = sum x[i]*x[i+k] for x = [1, 2, 3]
	result, err := AutoCorrelate([]float64{1, 2, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, result, []float64{14, 8, 3}, 1e-12)
}

func TestAutoCorrelateSingleSample(t *testing.T) {
	result, err := AutoCorrelate([]float64{-2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, result, []float64{4}, 0)
}

func TestAutoCorrelateFFTMatchesDirect(t *testing.T) {
	for _, n := range []int{1, 2, 7, 64, 257} {
		x := testutil.DeterministicNoise(int64(n), 1, n)

		direct, err := AutoCorrelate(x)
		if err != nil {
			t.Fatalf("n=%d: AutoCorrelate failed: %v", n, err)
		}
		fft, err := AutoCorrelateFFT(x)
		if err != nil {
			t.Fatalf("n=%d: AutoCorrelateFFT failed: %v", n, err)
		}

		diff, err := testutil.MaxAbsDiff(direct, fft)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if diff > 1e-9 {
			t.Errorf("n=%d: max diff %g between direct and FFT", n, diff)
		}
	}
}

func TestAutoCorrelateAutoUsesBothPaths(t *testing.T) {
	for _, n := range []int{FFTThreshold, FFTThreshold + 1} {
		x := testutil.DeterministicNoise(7, 1, n)
		got, err := AutoCorrelateAuto(x)
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		want, _ := AutoCorrelate(x)
		diff, _ := testutil.MaxAbsDiff(got, want)
		if diff > 1e-8 {
			t.Errorf("n=%d: max diff %g", n, diff)
		}
	}
}

func TestAutoCorrelateErrors(t *testing.T) {
	if _, err := AutoCorrelate(nil); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("AutoCorrelate: expected ErrEmptyInput, got %v", err)
	}
	if _, err := AutoCorrelateFFT([]float64{}); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("AutoCorrelateFFT: expected ErrEmptyInput, got %v", err)
	}
}

func TestNormalize(t *testing.T) {
	r := []float64{3, 1.5, -3, 0.3}
	if err := Normalize(r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r[0] != 1 {
		t.Fatalf("r[0] = %v, want exactly 1", r[0])
	}
	testutil.RequireSliceNearlyEqual(t, r, []float64{1, 0.5, -1, 0.1}, 1e-15)
}

func TestNormalizeZeroLagExactlyOne(t *testing.T) {
	// Values whose reciprocal product is not exactly one.
	for _, v := range []float64{3, 49, 0.1, 1e-300, 7.000000000000001} {
		r := []float64{v, v / 2}
		if err := Normalize(r); err != nil {
			t.Fatalf("v=%v: unexpected error: %v", v, err)
		}
		if r[0] != 1 {
			t.Fatalf("v=%v: r[0] = %v", v, r[0])
		}
	}
}

func TestNormalizeErrors(t *testing.T) {
	for _, r := range [][]float64{{0, 1}, {math.NaN(), 1}, {math.Inf(1)}} {
		if err := Normalize(r); !errors.Is(err, ErrZeroEnergy) {
			t.Errorf("Normalize(%v): expected ErrZeroEnergy, got %v", r, err)
		}
	}
	if err := Normalize(nil); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}
