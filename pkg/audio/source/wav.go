// ABOUTME: WAV audio source with RIFF chunk parsing
// ABOUTME: Reads 16-bit PCM data with sample-accurate seeking
package source

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Jukebox-Protocol/jukebox-go/pkg/audio"
)

// wavReadSize is the byte window of one WAV decode unit
const wavReadSize = 8192

// ErrInvalidFormat is returned when a WAV file is missing its RIFF/WAVE
// magic, fmt block, PCM encoding or 16-bit sample width.
var ErrInvalidFormat = fmt.Errorf("source: invalid WAV format")

// WAVSource reads 16-bit PCM from a RIFF/WAVE container
type WAVSource struct {
	file       *os.File
	sampleRate int
	channels   int
	dataOffset int64
	dataSize   int64
	dataPos    int64 // byte offset within the data chunk
	duration   int
	position   int
}

func newWAVSource(path string) (*WAVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open WAV file: %w", err)
	}

	s := &WAVSource{file: f}
	if err := s.parseHeader(); err != nil {
		f.Close()
		return nil, err
	}

	log.Printf("Loaded WAV: %s (%d Hz, %d ch, %ds)", path, s.sampleRate, s.channels, s.duration)
	return s, nil
}

// parseHeader validates the standard 44-byte header and locates the data
// chunk, scanning sequential chunks by declared size when data is not at
// the conventional offset.
func (s *WAVSource) parseHeader() error {
	hdr := make([]byte, 44)
	if _, err := io.ReadFull(s.file, hdr); err != nil {
		return ErrInvalidFormat
	}

	if !bytes.Equal(hdr[0:4], []byte("RIFF")) || !bytes.Equal(hdr[8:12], []byte("WAVE")) {
		return ErrInvalidFormat
	}
	if !bytes.Equal(hdr[12:16], []byte("fmt ")) {
		return ErrInvalidFormat
	}

	audioFmt := int(binary.LittleEndian.Uint16(hdr[20:22]))
	if audioFmt != 1 { // PCM only
		return ErrInvalidFormat
	}

	s.channels = int(binary.LittleEndian.Uint16(hdr[22:24]))
	s.sampleRate = int(binary.LittleEndian.Uint32(hdr[24:28]))

	bits := int(binary.LittleEndian.Uint16(hdr[34:36]))
	if bits != 16 {
		return ErrInvalidFormat
	}
	if s.channels == 0 || s.sampleRate == 0 {
		return ErrInvalidFormat
	}

	if bytes.Equal(hdr[36:40], []byte("data")) {
		s.dataOffset = 44
		s.dataSize = int64(binary.LittleEndian.Uint32(hdr[40:44]))
	} else {
		off, size, found := s.scanForData()
		if !found {
			return ErrInvalidFormat
		}
		s.dataOffset = off
		s.dataSize = size
	}

	s.duration = int(s.dataSize / int64(s.sampleRate*s.channels*audio.BytesPerSample))
	if _, err := s.file.Seek(s.dataOffset, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to data chunk: %w", err)
	}
	return nil
}

// scanForData walks the chunk list from offset 12, skipping each chunk by
// its declared size, until a data chunk is found.
func (s *WAVSource) scanForData() (offset, size int64, found bool) {
	if _, err := s.file.Seek(12, io.SeekStart); err != nil {
		return 0, 0, false
	}

	chunkHdr := make([]byte, 8)
	for {
		if _, err := io.ReadFull(s.file, chunkHdr); err != nil {
			return 0, 0, false
		}
		chunkSize := int64(binary.LittleEndian.Uint32(chunkHdr[4:8]))
		if bytes.Equal(chunkHdr[0:4], []byte("data")) {
			pos, err := s.file.Seek(0, io.SeekCurrent)
			if err != nil {
				return 0, 0, false
			}
			return pos, chunkSize, true
		}
		if _, err := s.file.Seek(chunkSize, io.SeekCurrent); err != nil {
			return 0, 0, false
		}
	}
}

// Decode reads one fixed-size byte window bounded by the remaining data
// chunk length.
func (s *WAVSource) Decode() (*audio.Chunk, error) {
	remaining := s.dataSize - s.dataPos
	if remaining <= 0 {
		return nil, ErrEndOfStream
	}

	toRead := int64(wavReadSize)
	if toRead > remaining {
		toRead = remaining
	}

	buf := make([]byte, toRead)
	n, err := s.file.Read(buf)
	if n == 0 {
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("WAV read failed: %w", err)
		}
		return nil, ErrEndOfStream
	}
	s.dataPos += int64(n)
	if s.dataSize > 0 {
		s.position = int(float64(s.dataPos) / float64(s.dataSize) * float64(s.duration))
	}

	return &audio.Chunk{
		Samples: audio.SamplesFromBytes(buf[:n]),
		Format:  audio.Format{SampleRate: s.sampleRate, Channels: s.channels},
	}, nil
}

// Seek repositions to an exact byte offset within the data chunk
func (s *WAVSource) Seek(seconds int) error {
	if seconds < 0 {
		seconds = 0
	}
	if seconds > s.duration {
		seconds = s.duration
	}

	byteOff := int64(seconds) * int64(s.sampleRate*s.channels*audio.BytesPerSample)
	if byteOff > s.dataSize {
		byteOff = s.dataSize
	}

	if _, err := s.file.Seek(s.dataOffset+byteOff, io.SeekStart); err != nil {
		return fmt.Errorf("WAV seek failed: %w", err)
	}
	s.dataPos = byteOff
	s.position = seconds
	return nil
}

// Position returns the position last recomputed from the data-chunk byte
// offset, or the seek target until the next decode moves it.
func (s *WAVSource) Position() int {
	return s.position
}

func (s *WAVSource) Duration() int   { return s.duration }
func (s *WAVSource) SampleRate() int { return s.sampleRate }
func (s *WAVSource) Channels() int   { return s.channels }

func (s *WAVSource) Close() error {
	return s.file.Close()
}
