// ABOUTME: Audio output interface definition
// ABOUTME: Common interface for audio sink backends
package output

// Output represents an audio sink
type Output interface {
	// Open prepares the sink for the given stream format
	Open(sampleRate, channels int) error

	// Write emits interleaved s16le samples (blocks until written)
	Write(samples []int16) error

	// Close releases sink resources
	Close() error
}
