// ABOUTME: Audio type definitions
// ABOUTME: Defines stream formats, decode chunks and byte conversions
package audio

import "encoding/binary"

const (
	// TargetRate is the fixed output sample rate of the engine.
	TargetRate = 44100

	// TargetChannels is the fixed output channel count (stereo).
	TargetChannels = 2

	// BytesPerSample is the width of one s16le sample.
	BytesPerSample = 2
)

// Format describes a PCM stream layout
type Format struct {
	SampleRate int
	Channels   int
}

// Chunk represents one decode unit of interleaved 16-bit PCM
type Chunk struct {
	Samples []int16
	Format  Format
}

// Frames returns the number of sample frames in the chunk
func (c *Chunk) Frames() int {
	if c.Format.Channels == 0 {
		return 0
	}
	return len(c.Samples) / c.Format.Channels
}

// SamplesFromBytes converts raw s16le bytes to interleaved int16 samples
func SamplesFromBytes(data []byte) []int16 {
	samples := make([]int16, len(data)/BytesPerSample)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(data[i*BytesPerSample:]))
	}
	return samples
}

// BytesFromSamples converts interleaved int16 samples to raw s16le bytes
func BytesFromSamples(samples []int16) []byte {
	data := make([]byte, len(samples)*BytesPerSample)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[i*BytesPerSample:], uint16(s))
	}
	return data
}
