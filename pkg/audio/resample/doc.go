// ABOUTME: Sample rate and channel normalization package
// ABOUTME: Converts decoded chunks to the fixed 44100 Hz stereo output layout
// Package resample normalizes decoded audio to the engine's output layout.
//
// The engine emits a single fixed format (44100 Hz, stereo, s16le). Sources
// decode at whatever rate and channel count the file carries; Normalizer
// converts between the two by integer-factor sample replication and
// mono-to-stereo fan-out. Unsupported combinations pass through unchanged:
// audible distortion is preferable to a playback stall, so normalization
// never rejects a chunk.
//
// Example:
//
//	n := resample.NewNormalizer()
//	out := n.Normalize(chunk) // always safe to emit
package resample
