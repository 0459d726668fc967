// ABOUTME: Audio source package for file playback
// ABOUTME: Provides the Source interface and WAV, MP3, FLAC implementations
// Package source provides decodable audio sources for file playback.
//
// Supports: WAV (16-bit PCM), MP3, FLAC
//
// All sources implement the Source interface: pull one decode unit at a
// time, seek to a time offset, and report position and duration in seconds.
// Position and duration are estimates for compressed formats; only WAV
// seeking is sample-accurate.
//
// Example:
//
//	src, err := source.Open("/music/track.mp3")
//	chunk, err := src.Decode()
//	if err == source.ErrEndOfStream {
//	    // track finished
//	}
package source
