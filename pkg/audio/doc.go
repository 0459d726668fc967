// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format, Chunk types and s16le sample conversion functions
// Package audio provides fundamental audio types for the jukebox playback engine.
//
// This package defines the core types used throughout the jukebox library:
//   - Format: Describes a PCM stream (sample rate, channel count)
//   - Chunk: One decode unit of 16-bit interleaved PCM samples
//
// It also provides utilities for converting between interleaved int16
// samples and their raw little-endian byte representation, which is the
// engine's only output format.
//
// Example:
//
//	chunk := &audio.Chunk{
//	    Samples: samples,
//	    Format:  audio.Format{SampleRate: 44100, Channels: 2},
//	}
//	raw := audio.BytesFromSamples(chunk.Samples)
package audio
