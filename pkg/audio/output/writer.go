// ABOUTME: Raw stream output sink
// ABOUTME: Writes unframed s16le samples to any io.Writer
package output

import (
	"fmt"
	"io"

	"github.com/Jukebox-Protocol/jukebox-go/pkg/audio"
)

// Writer emits the PCM stream to an io.Writer with no framing. The
// downstream consumer (a renderer, a pipe) provides the only backpressure
// through its own buffering.
type Writer struct {
	w io.Writer
}

// NewWriter creates a sink around w
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Open is a no-op; a byte stream has no device format to negotiate
func (o *Writer) Open(sampleRate, channels int) error {
	return nil
}

// Write emits the samples as little-endian bytes
func (o *Writer) Write(samples []int16) error {
	if _, err := o.w.Write(audio.BytesFromSamples(samples)); err != nil {
		return fmt.Errorf("stream write failed: %w", err)
	}
	return nil
}

// Close is a no-op; the Writer does not own the underlying stream
func (o *Writer) Close() error {
	return nil
}
