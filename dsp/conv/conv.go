package conv

import (
	"errors"
	"fmt"
	"slices"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

// Errors returned by convolution and correlation functions.
var (
	ErrEmptyInput     = errors.New("conv: empty input")
	ErrEmptyKernel    = errors.New("conv: empty kernel")
	ErrKernelTooLong  = errors.New("conv: kernel longer than input")
	ErrLengthMismatch = errors.New("conv: destination length mismatch")
	ErrZeroEnergy     = errors.New("conv: zero-lag energy is zero")
)

// ValidLen returns the number of positions at which a kernel of length m
// fully overlaps an input of length n, or 0 if it never does.
func ValidLen(n, m int) int {
	if m < 1 || m > n {
		return 0
	}
	return n - m + 1
}

// Valid returns the part of the linear convolution of x and kernel where the
// kernel lies entirely inside x:
//
//	y[i] = sum_j x[i+j] * kernel[m-1-j],  i = 0..len(x)-len(kernel)
//
// Callers that need a length-preserving filter pad x first.
func Valid(x, kernel []float64) ([]float64, error) {
	if err := checkValid(x, kernel); err != nil {
		return nil, err
	}
	dst := make([]float64, ValidLen(len(x), len(kernel)))
	validTo(dst, x, kernel)
	return dst, nil
}

// ValidTo is [Valid] writing into dst, which must have length
// ValidLen(len(x), len(kernel)).
func ValidTo(dst, x, kernel []float64) error {
	if err := checkValid(x, kernel); err != nil {
		return err
	}
	if want := ValidLen(len(x), len(kernel)); len(dst) != want {
		return fmt.Errorf("%w: got %d, want %d", ErrLengthMismatch, len(dst), want)
	}
	validTo(dst, x, kernel)
	return nil
}

func checkValid(x, kernel []float64) error {
	switch {
	case len(x) == 0:
		return ErrEmptyInput
	case len(kernel) == 0:
		return ErrEmptyKernel
	case len(kernel) > len(x):
		return fmt.Errorf("%w: %d > %d", ErrKernelTooLong, len(kernel), len(x))
	}
	return nil
}

// validTo evaluates each output as a dot product of an input window with the
// reversed kernel, the same block pattern as AutoCorrelate.
func validTo(dst, x, kernel []float64) {
	m := len(kernel)
	reversed := slices.Clone(kernel)
	slices.Reverse(reversed)

	scratch := realScratch.Get(m)
	defer realScratch.Put(scratch)
	products := scratch.Samples()

	for i := range dst {
		vecmath.MulBlock(products, x[i:i+m], reversed)
		dst[i] = floats.Sum(products)
	}
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
