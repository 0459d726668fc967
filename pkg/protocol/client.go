// ABOUTME: Controller-side protocol client
// ABOUTME: Sends command lines and watches status records over the FIFOs
package protocol

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"
	"time"
)

// Client drives a running jukebox daemon over its command and status
// channels. It is the controller side of the protocol; the daemon side
// lives in the engine.
type Client struct {
	cmdPath    string
	statusPath string
}

// NewClient creates a client for the given channel paths
func NewClient(cmdPath, statusPath string) *Client {
	return &Client{
		cmdPath:    cmdPath,
		statusPath: statusPath,
	}
}

// Send writes one command line to the daemon. The channel is opened
// non-blocking so a missing daemon surfaces as an error instead of a hang.
func (c *Client) Send(line string) error {
	f, err := os.OpenFile(c.cmdPath, os.O_WRONLY|syscall.O_NONBLOCK, 0)
	if err != nil {
		return fmt.Errorf("daemon not reachable at %s: %w", c.cmdPath, err)
	}
	defer f.Close()

	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("failed to send command: %w", err)
	}
	return nil
}

// Play replaces the playlist with the single given track and plays it
func (c *Client) Play(path string) error { return c.Send("PLAY " + path) }

// Playlist loads a playlist file and plays its first entry
func (c *Client) Playlist(path string) error { return c.Send("PLAYLIST " + path) }

// Queue appends a track to the playlist
func (c *Client) Queue(path string) error { return c.Send("QUEUE " + path) }

func (c *Client) Pause() error  { return c.Send("PAUSE") }
func (c *Client) Resume() error { return c.Send("RESUME") }
func (c *Client) Toggle() error { return c.Send("TOGGLE") }
func (c *Client) Stop() error   { return c.Send("STOP") }
func (c *Client) Next() error   { return c.Send("NEXT") }
func (c *Client) Prev() error   { return c.Send("PREV") }
func (c *Client) Quit() error   { return c.Send("QUIT") }

// Seek seeks to an absolute second, or by a relative amount
func (c *Client) Seek(seconds int, rel bool) error {
	return c.Send("SEEK " + formatNum(seconds, rel))
}

// SetVolume sets the volume to an absolute percent, or by a relative amount
func (c *Client) SetVolume(percent int, rel bool) error {
	return c.Send("VOL " + formatNum(percent, rel))
}

// Jump plays the playlist entry at the given 0-based index
func (c *Client) Jump(index int) error {
	return c.Send(fmt.Sprintf("JUMP %d", index))
}

// RequestStatus asks for an immediate snapshot emission
func (c *Client) RequestStatus() error { return c.Send("STATUS") }

func formatNum(n int, rel bool) string {
	if rel && n >= 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}

// WatchStatus reads status records until the context ends. The status
// channel is opened blocking (the open completes when the daemon's next
// emission arrives) and reopened after each writer disconnect.
func (c *Client) WatchStatus(ctx context.Context) <-chan Status {
	ch := make(chan Status, 8)

	go func() {
		defer close(ch)
		for ctx.Err() == nil {
			f, err := os.Open(c.statusPath)
			if err != nil {
				log.Printf("Status channel open failed: %v", err)
				select {
				case <-ctx.Done():
					return
				case <-time.After(time.Second):
				}
				continue
			}

			scanner := bufio.NewScanner(f)
			for scanner.Scan() {
				status, err := ParseStatus(scanner.Bytes())
				if err != nil {
					continue
				}
				select {
				case ch <- status:
				case <-ctx.Done():
					f.Close()
					return
				}
			}
			f.Close()
		}
	}()

	return ch
}
