package conv

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-interpacf/internal/testutil"
)

func TestValid(t *testing.T) {
	tests := []struct {
		name   string
		x      []float64
		kernel []float64
		want   []float64
	}{
		{"boxcar", []float64{1, 2, 3, 4, 5}, []float64{1, 1, 1}, []float64{6, 9, 12}},
		{"identity", []float64{3, -1, 2}, []float64{1}, []float64{3, -1, 2}},
		// Convolution flips the kernel: a leading tap picks the newest sample.
		{"asymmetric", []float64{1, 2, 3, 4}, []float64{1, 0}, []float64{2, 3, 4}},
		{"full overlap only", []float64{1, 2, 1}, []float64{1, 2, 1}, []float64{6}},
		{"long kernel", []float64{1, 0, 0, 2, 0, 0, 1}, []float64{1, 2, 3, 4, 5}, []float64{9, 6, 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Valid(tt.x, tt.kernel)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.RequireSliceNearlyEqual(t, got, tt.want, 1e-12)
		})
	}
}

func TestValidDoesNotModifyKernel(t *testing.T) {
	kernel := []float64{1, 2, 3}
	if _, err := Valid([]float64{1, 1, 1, 1}, kernel); err != nil {
		t.Fatal(err)
	}
	testutil.RequireBitwiseEqual(t, kernel, []float64{1, 2, 3})
}

func TestValidErrors(t *testing.T) {
	tests := []struct {
		name      string
		x, kernel []float64
		want      error
	}{
		{"empty input", nil, []float64{1}, ErrEmptyInput},
		{"empty kernel", []float64{1, 2}, nil, ErrEmptyKernel},
		{"kernel too long", []float64{1, 2}, []float64{1, 1, 1}, ErrKernelTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Valid(tt.x, tt.kernel); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}

	if err := ValidTo(make([]float64, 2), []float64{1, 2, 3}, []float64{1}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestValidTo(t *testing.T) {
	dst := []float64{99, 99}
	if err := ValidTo(dst, []float64{1, 2, 4}, []float64{0.5, 0.5}); err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, dst, []float64{1.5, 3}, 1e-15)
}

func TestValidLen(t *testing.T) {
	tests := []struct{ n, m, want int }{
		{5, 3, 3}, {3, 3, 1}, {2, 3, 0}, {4, 0, 0},
	}
	for _, tt := range tests {
		if got := ValidLen(tt.n, tt.m); got != tt.want {
			t.Errorf("ValidLen(%d, %d) = %d, want %d", tt.n, tt.m, got, tt.want)
		}
	}
}

func TestNextPowerOf2(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 1}, {1, 1}, {2, 2}, {3, 4}, {5, 8}, {1023, 1024}, {1025, 2048},
	}
	for _, tt := range tests {
		if got := nextPowerOf2(tt.in); got != tt.want {
			t.Errorf("nextPowerOf2(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
