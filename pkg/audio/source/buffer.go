// ABOUTME: Sliding read-ahead window for compressed decoding
// ABOUTME: Bounded buffer exposing append, consume and compact operations
package source

import "io"

// readBuffer is a sliding window over a byte stream. The window is
// data[start:end]; invariant 0 <= start <= end <= len(data). Capacity
// grows by doubling up to max and never beyond.
type readBuffer struct {
	data  []byte
	start int
	end   int
	max   int
}

func newReadBuffer(size, max int) *readBuffer {
	return &readBuffer{
		data: make([]byte, size),
		max:  max,
	}
}

// Len returns the number of unconsumed bytes in the window
func (b *readBuffer) Len() int {
	return b.end - b.start
}

// Window returns the unconsumed bytes. The slice is only valid until the
// next Fill or Reset.
func (b *readBuffer) Window() []byte {
	return b.data[b.start:b.end]
}

// Consume marks the first n window bytes as used
func (b *readBuffer) Consume(n int) {
	if n > b.Len() {
		n = b.Len()
	}
	b.start += n
}

// Compact shifts unconsumed bytes to the front of the buffer
func (b *readBuffer) Compact() {
	if b.start == 0 {
		return
	}
	copy(b.data, b.data[b.start:b.end])
	b.end -= b.start
	b.start = 0
}

// Grow doubles the buffer capacity, bounded by max. Returns false once
// the bound is reached.
func (b *readBuffer) Grow() bool {
	if len(b.data) >= b.max {
		return false
	}
	size := len(b.data) * 2
	if size > b.max {
		size = b.max
	}
	data := make([]byte, size)
	copy(data, b.data[b.start:b.end])
	b.end -= b.start
	b.start = 0
	b.data = data
	return true
}

// Fill compacts the window and reads from r into the free tail. Returns
// the number of bytes read; io.EOF is swallowed (a zero return with an
// exhausted stream is the end-of-data signal).
func (b *readBuffer) Fill(r io.Reader) (int, error) {
	b.Compact()
	if b.end == len(b.data) {
		return 0, nil
	}
	n, err := r.Read(b.data[b.end:])
	b.end += n
	if err == io.EOF {
		err = nil
	}
	return n, err
}

// Reset empties the window without releasing capacity
func (b *readBuffer) Reset() {
	b.start = 0
	b.end = 0
}
