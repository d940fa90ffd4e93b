package buffer

// Sample is the element type of a Buffer.
type Sample interface {
	~float64 | ~complex128
}

// Buffer wraps a slice whose backing array is reused across Resize calls.
type Buffer[T Sample] struct {
	samples []T
}

// New returns a zero-filled Buffer of the given length.
func New[T Sample](length int) *Buffer[T] {
	return &Buffer[T]{samples: make([]T, max(length, 0))}
}

// Samples returns the underlying slice.
func (b *Buffer[T]) Samples() []T {
	return b.samples
}

// Len returns the current number of samples.
func (b *Buffer[T]) Len() int {
	return len(b.samples)
}

// Cap returns the capacity of the backing slice.
func (b *Buffer[T]) Cap() int {
	return cap(b.samples)
}

// Resize sets the length to n, reusing existing capacity when possible.
// Existing samples within the new length are kept.
func (b *Buffer[T]) Resize(n int) {
	n = max(n, 0)
	if n <= cap(b.samples) {
		b.samples = b.samples[:n]
		return
	}
	s := make([]T, n)
	copy(s, b.samples)
	b.samples = s
}

// Zero sets all samples to 0.
func (b *Buffer[T]) Zero() {
	clear(b.samples)
}
