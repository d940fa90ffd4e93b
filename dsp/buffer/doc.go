// Package buffer provides reusable scratch slices for the real and complex
// work arrays of the correlation routines. A Buffer is zeroed on every Get
// so callers never observe data from a previous use.
package buffer
