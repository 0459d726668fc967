// ABOUTME: Playback engine orchestration
// ABOUTME: Single-threaded loop tying commands, decoding and status together
package engine

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/Jukebox-Protocol/jukebox-go/internal/playlist"
	"github.com/Jukebox-Protocol/jukebox-go/pkg/audio"
	"github.com/Jukebox-Protocol/jukebox-go/pkg/audio/output"
	"github.com/Jukebox-Protocol/jukebox-go/pkg/audio/resample"
	"github.com/Jukebox-Protocol/jukebox-go/pkg/audio/source"
	"github.com/Jukebox-Protocol/jukebox-go/pkg/audio/volume"
	"github.com/Jukebox-Protocol/jukebox-go/pkg/protocol"
)

// Well-known channel locations, owned by the surrounding deployment
const (
	DefaultCommandPath = "/tmp/jukeboxd.cmd"
	DefaultStatusPath  = "/tmp/jukeboxd.status"
)

const (
	defaultStatusInterval = 250 * time.Millisecond
	defaultIdleSleep      = 50 * time.Millisecond
	defaultVolume         = 80

	// retreatThreshold is how far into a track PREV restarts it instead
	// of moving to the previous entry (seconds)
	retreatThreshold = 3
)

// ControlChannel is the non-blocking command input
type ControlChannel interface {
	Poll(p []byte) (int, error)
	Close() error
}

// StatusChannel receives best-effort snapshot emissions
type StatusChannel interface {
	Write(p []byte) error
}

// Config holds engine tuning; zero values take the defaults above
type Config struct {
	StatusInterval time.Duration
	IdleSleep      time.Duration
	Volume         int
}

// Engine is the single owned context of the playback core. One goroutine
// runs the loop; every field is private to it, so no locking exists
// anywhere in the engine.
type Engine struct {
	cfg Config

	state       State
	vol         *volume.Volume
	playlist    *playlist.Playlist
	src         source.Source
	currentFile string

	norm    *resample.Normalizer
	out     output.Output
	control ControlChannel
	status  StatusChannel

	lines      protocol.LineBuffer
	lastStatus time.Time
	quit       bool
}

// New creates an engine around the given channels and output sink
func New(cfg Config, out output.Output, control ControlChannel, status StatusChannel) *Engine {
	if cfg.StatusInterval <= 0 {
		cfg.StatusInterval = defaultStatusInterval
	}
	if cfg.IdleSleep <= 0 {
		cfg.IdleSleep = defaultIdleSleep
	}
	if cfg.Volume == 0 {
		cfg.Volume = defaultVolume
	}

	return &Engine{
		cfg:      cfg,
		state:    Stopped,
		vol:      volume.New(cfg.Volume),
		playlist: playlist.New(),
		norm:     resample.NewNormalizer(),
		out:      out,
		control:  control,
		status:   status,
	}
}

// Run drives the cooperative loop until QUIT or context cancellation.
// Per iteration: dispatch the commands delimited by the current read,
// one decode-and-emit step if Playing, then a status emission when the
// interval has elapsed. Nothing here blocks indefinitely; when idle the
// loop sleeps briefly instead of spinning.
func (e *Engine) Run(ctx context.Context) error {
	if err := e.out.Open(audio.TargetRate, audio.TargetChannels); err != nil {
		return fmt.Errorf("failed to open output: %w", err)
	}

	defer func() {
		e.closeSource()
		e.control.Close()
	}()

	log.Printf("Engine running (volume %d%%)", e.vol.Level())

	for !e.quit {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		e.pollCommands()
		if e.quit {
			break
		}

		if e.state == Playing && e.src != nil {
			e.decodeStep()
		} else {
			time.Sleep(e.cfg.IdleSleep)
		}

		if now := time.Now(); now.Sub(e.lastStatus) >= e.cfg.StatusInterval {
			e.emitStatus()
			e.lastStatus = now
		}
	}

	log.Printf("Engine shutting down")
	return nil
}

// pollCommands drains whatever the control channel has right now and
// dispatches every fully delimited line.
func (e *Engine) pollCommands() {
	var buf [protocol.MaxLine]byte

	n, err := e.control.Poll(buf[:])
	if err != nil {
		log.Printf("Control channel error: %v", err)
		return
	}
	if n == 0 {
		return
	}

	for _, line := range e.lines.Feed(buf[:n]) {
		cmd, ok := protocol.Parse(line)
		if !ok {
			continue // unrecognized or malformed: ignored, no error surfaced
		}
		log.Printf("Command: %s", line)
		e.dispatch(cmd)
	}
}

func (e *Engine) dispatch(cmd protocol.Command) {
	switch cmd.Op {
	case protocol.OpPlay:
		e.playlist.Replace(cmd.Path)
		if err := e.playTrack(0); err != nil {
			log.Printf("Play failed: %v", err)
		}

	case protocol.OpPause:
		if e.state == Playing {
			e.state = Paused
		}

	case protocol.OpResume:
		if e.state == Paused {
			e.state = Playing
		}

	case protocol.OpToggle:
		switch e.state {
		case Playing:
			e.state = Paused
		case Paused:
			e.state = Playing
		}

	case protocol.OpStop:
		e.stop()

	case protocol.OpNext:
		e.nextTrack()

	case protocol.OpPrev:
		e.prevTrack()

	case protocol.OpSeek:
		target := cmd.N
		if cmd.Rel {
			target = e.position() + cmd.N
		}
		e.seekTo(target)

	case protocol.OpVol:
		level := cmd.N
		if cmd.Rel {
			level = e.vol.Level() + cmd.N
		}
		e.vol.Set(level)

	case protocol.OpPlaylist:
		n, err := e.playlist.Load(cmd.Path)
		if err != nil {
			log.Printf("Playlist load failed: %v", err)
			return
		}
		log.Printf("Playlist loaded: %d tracks", n)
		if n > 0 {
			if err := e.playTrack(0); err != nil {
				log.Printf("Play failed: %v", err)
			}
		}

	case protocol.OpQueue:
		e.playlist.Queue(cmd.Path)

	case protocol.OpJump:
		if err := e.playTrack(cmd.N); err != nil {
			log.Printf("Jump failed: %v", err)
		}

	case protocol.OpStatus:
		e.emitStatus()

	case protocol.OpQuit:
		e.quit = true
	}
}

// playTrack opens the playlist entry at idx and transitions to Playing.
// An open failure releases the previous source but leaves the state
// unchanged.
func (e *Engine) playTrack(idx int) error {
	path, ok := e.playlist.At(idx)
	if !ok {
		return fmt.Errorf("no track at index %d", idx)
	}
	e.playlist.SetIndex(idx)
	e.closeSource()

	src, err := source.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open track: %w", err)
	}

	e.src = src
	e.currentFile = path
	e.state = Playing
	return nil
}

// nextTrack advances the playlist, skipping tracks that fail to open.
// Past the last entry it settles into Stopped with no active source.
func (e *Engine) nextTrack() {
	if e.playlist.Len() == 0 {
		e.stop()
		return
	}

	next := e.playlist.Index() + 1
	if next >= e.playlist.Len() {
		e.stop()
		return
	}

	if err := e.playTrack(next); err != nil {
		log.Printf("Skipping bad track: %v", err)
		e.playlist.SetIndex(next)
		e.nextTrack()
	}
}

// prevTrack restarts the current track when more than retreatThreshold
// seconds in, and moves to the previous entry (clamped at the first)
// otherwise.
func (e *Engine) prevTrack() {
	if e.playlist.Len() == 0 {
		return
	}

	idx := e.playlist.Index()
	if e.position() <= retreatThreshold {
		if idx > 0 {
			idx--
		}
	}
	if err := e.playTrack(idx); err != nil {
		log.Printf("Prev failed: %v", err)
	}
}

func (e *Engine) stop() {
	e.state = Stopped
	e.closeSource()
}

func (e *Engine) seekTo(seconds int) {
	if e.src == nil {
		return
	}
	if err := e.src.Seek(seconds); err != nil {
		log.Printf("Seek failed: %v", err)
	}
}

func (e *Engine) position() int {
	if e.src == nil {
		return 0
	}
	return e.src.Position()
}

// decodeStep pulls one decode unit, normalizes it to the output layout,
// applies the volume and emits it. End of stream drives the playlist
// forward; a decoder asking for more data just yields this iteration.
func (e *Engine) decodeStep() {
	chunk, err := e.src.Decode()
	switch {
	case err == source.ErrTryAgain:
		return

	case err == source.ErrEndOfStream:
		e.nextTrack()

	case err != nil:
		log.Printf("Decode error, skipping track: %v", err)
		e.nextTrack()

	default:
		samples := e.norm.Normalize(chunk)
		e.vol.Apply(samples)
		if err := e.out.Write(samples); err != nil {
			log.Printf("Output write failed: %v", err)
		}
	}
}

// snapshot recomputes the status projection; it is never stored
func (e *Engine) snapshot() protocol.Status {
	name := ""
	if e.currentFile != "" {
		name = filepath.Base(e.currentFile)
	}

	pos, dur, rate := 0, 0, audio.TargetRate
	if e.src != nil {
		pos = e.src.Position()
		dur = e.src.Duration()
		rate = e.src.SampleRate()
	}

	return protocol.Status{
		State: e.state.String(),
		File:  name,
		Pos:   pos,
		Dur:   dur,
		Vol:   e.vol.Level(),
		Track: e.playlist.Index() + 1,
		Total: e.playlist.Len(),
		Rate:  rate,
	}
}

// emitStatus writes one snapshot, best effort: with no reader on the
// status channel the record is dropped with no retry and no error.
func (e *Engine) emitStatus() {
	data, err := e.snapshot().Encode()
	if err != nil {
		return
	}
	_ = e.status.Write(data)
}

func (e *Engine) closeSource() {
	if e.src != nil {
		e.src.Close()
		e.src = nil
	}
	e.currentFile = ""
}
