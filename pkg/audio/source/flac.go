// ABOUTME: FLAC audio source using per-frame parsing
// ABOUTME: Decodes frames to 16-bit PCM with rewind-and-skip seeking
package source

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Jukebox-Protocol/jukebox-go/pkg/audio"
	"github.com/mewkiz/flac"
)

// FLACSource decodes a FLAC file one frame at a time
type FLACSource struct {
	file   *os.File
	stream *flac.Stream

	sampleRate   int
	channels     int
	bitDepth     int
	totalSamples uint64
	decoded      uint64 // sample frames decoded so far
}

func newFLACSource(path string) (*FLACSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open FLAC file: %w", err)
	}

	stream, err := flac.New(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to decode FLAC: %w", err)
	}

	info := stream.Info
	s := &FLACSource{
		file:         f,
		stream:       stream,
		sampleRate:   int(info.SampleRate),
		channels:     int(info.NChannels),
		bitDepth:     int(info.BitsPerSample),
		totalSamples: info.NSamples,
	}
	if s.sampleRate == 0 || s.channels == 0 {
		f.Close()
		return nil, fmt.Errorf("FLAC stream has no usable stream info")
	}

	log.Printf("Loaded FLAC: %s (%d Hz, %d ch, %d bit)", path, s.sampleRate, s.channels, s.bitDepth)
	return s, nil
}

// Decode parses the next FLAC frame and interleaves its subframes into
// 16-bit samples, shifting other bit depths into the 16-bit range.
func (s *FLACSource) Decode() (*audio.Chunk, error) {
	frame, err := s.stream.ParseNext()
	if err != nil {
		if err == io.EOF {
			return nil, ErrEndOfStream
		}
		return nil, fmt.Errorf("FLAC decode failed: %w", err)
	}

	blockSize := int(frame.BlockSize)
	samples := make([]int16, 0, blockSize*s.channels)
	shift := s.bitDepth - 16

	for i := 0; i < blockSize; i++ {
		for ch := 0; ch < s.channels; ch++ {
			sample := frame.Subframes[ch].Samples[i]
			if shift > 0 {
				sample >>= shift
			} else if shift < 0 {
				sample <<= -shift
			}
			samples = append(samples, int16(sample))
		}
	}
	s.decoded += uint64(blockSize)

	return &audio.Chunk{
		Samples: samples,
		Format:  audio.Format{SampleRate: s.sampleRate, Channels: s.channels},
	}, nil
}

// Seek rewinds the stream when needed and skips whole frames until the
// target sample is reached. Best effort: a short skip (damaged tail, frame
// parse error) leaves the stream where it got to rather than failing.
func (s *FLACSource) Seek(seconds int) error {
	if seconds < 0 {
		seconds = 0
	}
	if d := s.Duration(); seconds > d {
		seconds = d
	}
	target := uint64(seconds) * uint64(s.sampleRate)

	if target < s.decoded {
		if _, err := s.file.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("FLAC seek failed: %w", err)
		}
		stream, err := flac.New(s.file)
		if err != nil {
			return fmt.Errorf("FLAC resync failed: %w", err)
		}
		s.stream = stream
		s.decoded = 0
	}

	for s.decoded < target {
		frame, err := s.stream.ParseNext()
		if err != nil {
			break
		}
		s.decoded += uint64(frame.BlockSize)
	}
	return nil
}

func (s *FLACSource) Position() int {
	return int(s.decoded / uint64(s.sampleRate))
}

func (s *FLACSource) Duration() int {
	return int(s.totalSamples / uint64(s.sampleRate))
}

func (s *FLACSource) SampleRate() int { return s.sampleRate }
func (s *FLACSource) Channels() int   { return s.channels }

func (s *FLACSource) Close() error {
	return s.file.Close()
}
