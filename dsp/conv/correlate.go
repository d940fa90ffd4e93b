package conv

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-interpacf/dsp/buffer"
)

// FFTThreshold is the input length above which [AutoCorrelateAuto] switches
// from direct summation to the FFT path.
const FFTThreshold = 1024

var (
	realScratch    = buffer.NewPool[float64]()
	complexScratch = buffer.NewPool[complex128]()
)

// AutoCorrelate computes the one-sided autocorrelation of x by direct
// summation. The result has length len(x) and index k holds
// sum_{i=0}^{n-1-k} x[i]*x[i+k].
func AutoCorrelate(x []float64) ([]float64, error) {
	n := len(x)
	if n == 0 {
		return nil, ErrEmptyInput
	}

	scratch := realScratch.Get(n)
	defer realScratch.Put(scratch)
	products := scratch.Samples()

	result := make([]float64, n)
	for k := 0; k < n; k++ {
		m := n - k
		vecmath.MulBlock(products[:m], x[:m], x[k:])
		result[k] = floats.Sum(products[:m])
	}
	return result, nil
}

// AutoCorrelateFFT computes the same one-sided autocorrelation as
// [AutoCorrelate] via IFFT(|FFT(x)|^2) on a zero-padded buffer of at least
// 2*len(x)-1 samples, which rules out circular wrap-around.
func AutoCorrelateFFT(x []float64) ([]float64, error) {
	n := len(x)
	if n == 0 {
		return nil, ErrEmptyInput
	}

	fftSize := nextPowerOf2(2*n - 1)
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	padBuf, freqBuf := complexScratch.Get(fftSize), complexScratch.Get(fftSize)
	defer complexScratch.Put(padBuf)
	defer complexScratch.Put(freqBuf)

	padded, freq := padBuf.Samples(), freqBuf.Samples()
	for i, v := range x {
		padded[i] = complex(v, 0)
	}

	if err := plan.Forward(freq, padded); err != nil {
		return nil, fmt.Errorf("conv: forward FFT failed: %w", err)
	}

	// X * conj(X) is the power spectrum.
	for i, c := range freq {
		re, im := real(c), imag(c)
		freq[i] = complex(re*re+im*im, 0)
	}

	// The padded input is no longer needed; reuse it for the lag domain.
	lagDomain := padded
	if err := plan.Inverse(lagDomain, freq); err != nil {
		return nil, fmt.Errorf("conv: inverse FFT failed: %w", err)
	}

	result := make([]float64, n)
	for k := range result {
		result[k] = real(lagDomain[k])
	}
	return result, nil
}

// AutoCorrelateAuto selects [AutoCorrelate] for inputs up to FFTThreshold
// samples and [AutoCorrelateFFT] above.
func AutoCorrelateAuto(x []float64) ([]float64, error) {
	if len(x) > FFTThreshold {
		return AutoCorrelateFFT(x)
	}
	return AutoCorrelate(x)
}

// Normalize divides every entry of r by r[0] in place. r[0] becomes exactly
// 1.0. Returns ErrZeroEnergy if r[0] is zero or not finite and ErrEmptyInput
// for an empty slice.
func Normalize(r []float64) error {
	if len(r) == 0 {
		return ErrEmptyInput
	}
	zeroLag := r[0]
	if zeroLag == 0 || math.IsNaN(zeroLag) || math.IsInf(zeroLag, 0) {
		return fmt.Errorf("%w: r[0] = %v", ErrZeroEnergy, zeroLag)
	}

	// Divide rather than scale by 1/zeroLag: x*(1/x) is not always 1.
	for k := 1; k < len(r); k++ {
		r[k] /= zeroLag
	}
	r[0] = 1
	return nil
}
