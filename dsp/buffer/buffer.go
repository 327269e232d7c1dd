package buffer

// Buffer is a resizable float64 slice that keeps its backing array across
// reuse.
type Buffer struct {
	samples []float64
}

// New returns a zero-filled Buffer of the given length.
func New(length int) *Buffer {
	return &Buffer{samples: make([]float64, max(0, length))}
}

// Samples returns the underlying slice.
func (b *Buffer) Samples() []float64 {
	return b.samples
}

// Len returns the current number of samples.
func (b *Buffer) Len() int {
	return len(b.samples)
}

// Cap returns the capacity of the backing array.
func (b *Buffer) Cap() int {
	return cap(b.samples)
}

// Resize sets the length to n, reusing capacity when possible. Contents
// are unspecified afterwards; call Zero when they matter.
func (b *Buffer) Resize(n int) {
	n = max(0, n)
	if n <= cap(b.samples) {
		b.samples = b.samples[:n]
		return
	}
	b.samples = make([]float64, n)
}

// Zero sets all samples to 0.
func (b *Buffer) Zero() {
	clear(b.samples)
}

// Split returns the first n samples and the remainder. n is clamped to
// the buffer length.
func (b *Buffer) Split(n int) (head, tail []float64) {
	n = min(max(0, n), len(b.samples))
	return b.samples[:n], b.samples[n:]
}
