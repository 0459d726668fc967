// ABOUTME: Replication-based normalizer for the fixed output format
// ABOUTME: Upsamples half/quarter rates and fans mono out to stereo
package resample

import "github.com/Jukebox-Protocol/jukebox-go/pkg/audio"

// Normalizer converts decoded chunks to 44100 Hz stereo. The output buffer
// is reused across calls; a returned slice is only valid until the next
// Normalize.
type Normalizer struct {
	out []int16
}

// NewNormalizer creates a normalizer targeting the engine output format
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize returns the chunk's samples at 44100 Hz stereo where an exact
// integer conversion exists, and unchanged otherwise (best effort).
func (n *Normalizer) Normalize(chunk *audio.Chunk) []int16 {
	rate := chunk.Format.SampleRate
	channels := chunk.Format.Channels

	// Identity: already at the output layout
	if rate == audio.TargetRate && channels == audio.TargetChannels {
		return chunk.Samples
	}

	switch rate {
	case audio.TargetRate / 2, audio.TargetRate / 4:
		// Exact divisor: replicate each frame, fanning mono into both
		// output channels at the same step
		dup := audio.TargetRate / rate
		return n.replicate(chunk, dup)
	}

	if channels == 1 {
		// Rate not convertible (or already correct): at least fan out
		return n.replicate(chunk, 1)
	}

	// Unsupported rate/channel combination: pass through unchanged
	return chunk.Samples
}

// replicate writes each input frame dup times as a stereo pair. The output
// buffer is bounded by 4x the largest decode unit (dup is at most 4 and a
// mono source doubles).
func (n *Normalizer) replicate(chunk *audio.Chunk, dup int) []int16 {
	frames := chunk.Frames()
	channels := chunk.Format.Channels

	need := frames * dup * audio.TargetChannels
	if cap(n.out) < need {
		n.out = make([]int16, need)
	}
	out := n.out[:0]

	for i := 0; i < frames; i++ {
		var left, right int16
		if channels >= 2 {
			left = chunk.Samples[i*channels]
			right = chunk.Samples[i*channels+1]
		} else {
			left = chunk.Samples[i]
			right = left
		}
		for j := 0; j < dup; j++ {
			out = append(out, left, right)
		}
	}
	return out
}
