// ABOUTME: MP3 audio source with approximate timing
// ABOUTME: Feeds a sliding read-ahead window into the go-mp3 frame decoder
package source

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Jukebox-Protocol/jukebox-go/pkg/audio"
	"github.com/hajimehoshi/go-mp3"
)

const (
	// mp3ReadSize is the initial sliding-window capacity
	mp3ReadSize = 16 * 1024

	// mp3MaxBufSize bounds window growth
	mp3MaxBufSize = 2 * 1024 * 1024

	// mp3NominalBitrate seeds the duration estimate before any frame
	// has been decoded (bits per second)
	mp3NominalBitrate = 128000

	// mp3ChunkBytes is the PCM byte budget of one decode unit
	mp3ChunkBytes = 8192
)

// MP3Source decodes an MP3 file through a bounded read-ahead window.
// Position and duration are estimates derived from bytes consumed; seeking
// is approximate (byte offset proportional to time) with a decoder resync.
type MP3Source struct {
	file     *os.File
	fileSize int64
	buf      *readBuffer
	decoder  *mp3.Decoder

	sampleRate int
	duration   int
	position   int

	consumed   int64 // total bytes handed to the decoder
	syncStart  int64 // consumed offset at last open or seek
	syncFrames int64 // output frames decoded since syncStart
}

// windowReader adapts the source's sliding window to the io.Reader the
// decoder pulls from, counting every byte the decoder consumes.
type windowReader struct {
	s *MP3Source
}

func (r windowReader) Read(p []byte) (int, error) {
	s := r.s
	if s.buf.Len() == 0 {
		if _, err := s.buf.Fill(s.file); err != nil {
			return 0, err
		}
		if s.buf.Len() == 0 {
			return 0, io.EOF
		}
	}
	n := copy(p, s.buf.Window())
	s.buf.Consume(n)
	s.consumed += int64(n)
	return n, nil
}

func newMP3Source(path string) (*MP3Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open MP3 file: %w", err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat MP3 file: %w", err)
	}

	s := &MP3Source{
		file:     f,
		fileSize: fi.Size(),
		buf:      newReadBuffer(mp3ReadSize, mp3MaxBufSize),
	}

	decoder, err := mp3.NewDecoder(windowReader{s})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to decode MP3: %w", err)
	}
	s.decoder = decoder
	s.sampleRate = decoder.SampleRate()

	// Provisional estimate until real frames refine it
	if s.fileSize > 0 {
		s.duration = int(s.fileSize * 8 / mp3NominalBitrate)
	}

	log.Printf("Loaded MP3: %s (%d Hz, ~%ds)", path, s.sampleRate, s.duration)
	return s, nil
}

// Decode produces up to one read of decoded PCM. go-mp3 always outputs
// 16-bit stereo at the source sample rate.
func (s *MP3Source) Decode() (*audio.Chunk, error) {
	if s.decoder == nil {
		return nil, ErrEndOfStream
	}

	buf := make([]byte, mp3ChunkBytes)
	n, err := s.decoder.Read(buf)
	if n == 0 {
		if err == nil {
			return nil, ErrTryAgain
		}
		if err == io.EOF {
			return nil, ErrEndOfStream
		}
		return nil, fmt.Errorf("MP3 decode failed: %w", err)
	}

	samples := audio.SamplesFromBytes(buf[:n])
	s.syncFrames += int64(len(samples)) / 2
	s.refineDuration()
	if s.fileSize > 0 && s.duration > 0 {
		s.position = int(float64(s.consumed) / float64(s.fileSize) * float64(s.duration))
	}

	return &audio.Chunk{
		Samples: samples,
		Format:  audio.Format{SampleRate: s.sampleRate, Channels: 2},
	}, nil
}

// refineDuration replaces the nominal-bitrate estimate with one derived
// from the observed decode ratio, once at least a second of audio has
// come out since the last open or seek.
func (s *MP3Source) refineDuration() {
	syncBytes := s.consumed - s.syncStart
	if s.sampleRate == 0 || syncBytes <= 0 || s.syncFrames < int64(s.sampleRate) {
		return
	}
	secs := float64(s.syncFrames) / float64(s.sampleRate)
	est := float64(s.fileSize) * secs / float64(syncBytes)
	if est >= 1 {
		s.duration = int(est)
	}
}

// Seek repositions to a byte offset proportional to the target time and
// resyncs the decoder there. Compressed frames do not map losslessly to
// time, so this is an explicit approximation.
func (s *MP3Source) Seek(seconds int) error {
	if s.fileSize <= 0 || s.duration <= 0 {
		return nil
	}
	if seconds < 0 {
		seconds = 0
	}
	if seconds > s.duration {
		seconds = s.duration
	}

	offset := int64(float64(seconds) / float64(s.duration) * float64(s.fileSize))
	if offset >= s.fileSize {
		offset = s.fileSize - 1
	}

	if _, err := s.file.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("MP3 seek failed: %w", err)
	}
	s.buf.Reset()
	s.consumed = offset
	s.syncStart = offset
	s.syncFrames = 0
	s.position = seconds

	decoder, err := mp3.NewDecoder(windowReader{s})
	if err != nil {
		// No frame sync found past the offset; report end on next decode
		s.decoder = nil
		return nil
	}
	s.decoder = decoder
	return nil
}

// Position returns the estimate last recomputed from cumulative consumed
// bytes, or the seek target until the next decode moves it.
func (s *MP3Source) Position() int {
	return s.position
}

func (s *MP3Source) Duration() int   { return s.duration }
func (s *MP3Source) SampleRate() int { return s.sampleRate }
func (s *MP3Source) Channels() int   { return 2 }

func (s *MP3Source) Close() error {
	return s.file.Close()
}
