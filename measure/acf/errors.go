package acf

import (
	"errors"
	"fmt"
)

// Error taxonomy. Match with errors.Is.
var (
	// ErrInvalidInput reports malformed input: mismatched lengths, unsorted
	// or duplicate timestamps, non-finite timestamps or lags.
	ErrInvalidInput = errors.New("acf: invalid input")

	// ErrDegenerateInput reports well-formed input that cannot define a
	// uniform grid or a non-trivial correlation.
	ErrDegenerateInput = errors.New("acf: degenerate input")

	// ErrNoPeakFound reports a curve without a local maximum after lag 0.
	ErrNoPeakFound = errors.New("acf: no peak found")

	// ErrRender wraps a failure of the diagnostic renderer.
	ErrRender = errors.New("acf: render failed")
)

// InputError describes rejected input and the parameter that caused it.
type InputError struct {
	Param  string // parameter name, e.g. "times"
	Index  int    // offending element, or -1
	Reason string
	Err    error // ErrInvalidInput or ErrDegenerateInput
}

func (e *InputError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%v: %s[%d]: %s", e.Err, e.Param, e.Index, e.Reason)
	}
	return fmt.Sprintf("%v: %s: %s", e.Err, e.Param, e.Reason)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

func invalidInput(param string, index int, format string, args ...any) error {
	return &InputError{Param: param, Index: index, Reason: fmt.Sprintf(format, args...), Err: ErrInvalidInput}
}

func degenerateInput(param string, index int, format string, args ...any) error {
	return &InputError{Param: param, Index: index, Reason: fmt.Sprintf(format, args...), Err: ErrDegenerateInput}
}
