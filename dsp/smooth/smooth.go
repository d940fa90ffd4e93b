// Package smooth provides length-preserving moving-window smoothing for
// short curves such as autocorrelation functions.
//
// Every filter pads the input by replicating its first and last value, so
// the output has exactly the input length and the ends are not pulled
// towards zero.
package smooth

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-interpacf/dsp/conv"
)

// Errors returned by kernel construction and filtering.
var (
	ErrEmptyInput    = errors.New("smooth: empty input")
	ErrInvalidWidth  = errors.New("smooth: kernel width must be odd and >= 1")
	ErrInvalidSigma  = errors.New("smooth: gaussian sigma must be > 0")
	ErrInvalidRadius = errors.New("smooth: gaussian radius must be >= 0")
)

// MinBoxcarWidth is the narrowest boxcar produced by [BoxcarWidth].
const MinBoxcarWidth = 3

// fwhmPerSigma is 2*sqrt(2*ln 2).
var fwhmPerSigma = 2 * math.Sqrt(2*math.Ln2)

// BoxcarWidth returns an odd boxcar width proportional to a curve of length
// n: round(fraction*n), raised to MinBoxcarWidth and to the next odd number.
func BoxcarWidth(n int, fraction float64) int {
	w := int(math.Round(fraction * float64(n)))
	if w < MinBoxcarWidth {
		w = MinBoxcarWidth
	}
	if w%2 == 0 {
		w++
	}
	return w
}

// BoxcarKernel returns a normalized moving-average kernel of odd width.
func BoxcarKernel(width int) ([]float64, error) {
	if width < 1 || width%2 == 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}
	kernel := make([]float64, width)
	for i := range kernel {
		kernel[i] = 1
	}
	vecmath.ScaleBlock(kernel, kernel, 1/float64(width))
	return kernel, nil
}

// FWHMToSigma converts a Gaussian full width at half maximum to its
// standard deviation.
func FWHMToSigma(fwhm float64) float64 {
	return fwhm / fwhmPerSigma
}

// GaussianKernel returns a normalized Gaussian kernel with standard
// deviation sigma, truncated radius samples either side of the centre
// (width 2*radius+1).
func GaussianKernel(sigma float64, radius int) ([]float64, error) {
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSigma, sigma)
	}
	if radius < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRadius, radius)
	}

	kernel := make([]float64, 2*radius+1)
	var sum float64
	for i := range kernel {
		x := float64(i - radius)
		kernel[i] = math.Exp(-0.5 * x * x / (sigma * sigma))
		sum += kernel[i]
	}
	vecmath.ScaleBlock(kernel, kernel, 1/sum)
	return kernel, nil
}

// Apply filters x with a symmetric odd-width kernel using edge-replication
// padding. The result has the same length as x.
func Apply(x, kernel []float64) ([]float64, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}
	if len(kernel)%2 == 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWidth, len(kernel))
	}

	half := len(kernel) / 2
	padded := make([]float64, len(x)+2*half)
	for i := 0; i < half; i++ {
		padded[i] = x[0]
		padded[half+len(x)+i] = x[len(x)-1]
	}
	copy(padded[half:], x)

	out, err := conv.Valid(padded, kernel)
	if err != nil {
		return nil, fmt.Errorf("smooth: %w", err)
	}
	return out, nil
}

// Boxcar applies a moving average of odd width to x.
func Boxcar(x []float64, width int) ([]float64, error) {
	kernel, err := BoxcarKernel(width)
	if err != nil {
		return nil, err
	}
	return Apply(x, kernel)
}

// Gaussian applies a truncated Gaussian filter to x.
func Gaussian(x []float64, sigma float64, radius int) ([]float64, error) {
	kernel, err := GaussianKernel(sigma, radius)
	if err != nil {
		return nil, err
	}
	return Apply(x, kernel)
}
