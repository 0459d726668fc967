// ABOUTME: Source interface definition and format dispatch
// ABOUTME: Common interface for all decodable audio sources
package source

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/Jukebox-Protocol/jukebox-go/pkg/audio"
)

// ErrEndOfStream is returned by Decode when the source is exhausted.
// It is not a failure; it drives playlist advance.
var ErrEndOfStream = errors.New("source: end of stream")

// ErrTryAgain is returned by Decode when the decoder produced nothing but
// the stream is not exhausted. The caller should retry on its next cycle.
var ErrTryAgain = errors.New("source: decoder needs more data")

// Source is a decodable audio stream opened from a file.
//
// Decode returns one decode unit of PCM, ErrEndOfStream at the end of the
// track, or ErrTryAgain when more input is needed. Seek, Position and
// Duration work in whole seconds; both are estimates for compressed formats.
type Source interface {
	// Decode produces the next chunk of PCM samples
	Decode() (*audio.Chunk, error)

	// Seek repositions the stream to the given time offset, clamped
	// to [0, Duration]
	Seek(seconds int) error

	// Position returns the estimated current position in seconds
	Position() int

	// Duration returns the estimated total duration in seconds
	Duration() int

	// SampleRate returns the source sample rate
	SampleRate() int

	// Channels returns the source channel count
	Channels() int

	// Close releases the underlying file
	Close() error
}

// Open creates a source for the given file, dispatching on the extension:
// .wav is parsed as a RIFF/WAVE container, .flac as a FLAC stream, and
// everything else is handed to the MP3 decoder.
func Open(path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return newWAVSource(path)
	case ".flac":
		return newFLACSource(path)
	default:
		return newMP3Source(path)
	}
}
