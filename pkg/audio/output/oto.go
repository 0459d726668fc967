// ABOUTME: Oto-based speaker output sink
// ABOUTME: Plays the PCM stream locally through a pipe-fed oto player
package output

import (
	"fmt"
	"io"
	"log"

	"github.com/Jukebox-Protocol/jukebox-go/pkg/audio"
	"github.com/ebitengine/oto/v3"
)

// Oto plays samples on the local audio device. A pipe feeds a persistent
// oto player so writes block on the device's own pacing, which is the
// backpressure that keeps the decode loop real-time.
type Oto struct {
	otoCtx     *oto.Context
	player     *oto.Player
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter
	sampleRate int
	channels   int
	ready      bool
}

// NewOto creates a speaker sink
func NewOto() *Oto {
	return &Oto{}
}

// Open initializes the output device. oto allows one context per process,
// so a format change after the first Open keeps the existing context.
func (o *Oto) Open(sampleRate, channels int) error {
	if o.otoCtx != nil {
		if o.sampleRate != sampleRate || o.channels != channels {
			log.Printf("Warning: format change (%dHz %dch -> %dHz %dch) ignored, oto context is fixed",
				o.sampleRate, o.channels, sampleRate, channels)
		}
		return nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}
	<-readyChan

	o.otoCtx = ctx
	o.sampleRate = sampleRate
	o.channels = channels

	o.pipeReader, o.pipeWriter = io.Pipe()
	o.player = o.otoCtx.NewPlayer(o.pipeReader)
	o.player.Play()
	o.ready = true

	log.Printf("Speaker output initialized: %dHz, %d channels", sampleRate, channels)
	return nil
}

// Write feeds samples into the player pipe
func (o *Oto) Write(samples []int16) error {
	if !o.ready {
		return fmt.Errorf("speaker output not initialized")
	}
	if _, err := o.pipeWriter.Write(audio.BytesFromSamples(samples)); err != nil {
		return fmt.Errorf("speaker write failed: %w", err)
	}
	return nil
}

// Close stops the player and releases the pipe
func (o *Oto) Close() error {
	if !o.ready {
		return nil
	}
	o.ready = false

	o.pipeWriter.Close()
	if o.player != nil {
		o.player.Close()
	}
	o.pipeReader.Close()
	return nil
}
