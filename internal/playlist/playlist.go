// ABOUTME: Ordered track list with bounded capacity
// ABOUTME: Loads playlist files and tracks the current playback index
package playlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

const (
	// MaxTracks bounds the playlist; entries beyond it are dropped silently
	MaxTracks = 256

	// maxPathLen bounds one track path
	maxPathLen = 256
)

// Playlist is an ordered track list plus the current index. Insertion
// order is playback order; the only mutations are wholesale replacement
// and append.
type Playlist struct {
	tracks []string
	index  int
}

// New creates an empty playlist
func New() *Playlist {
	return &Playlist{}
}

// Load replaces the playlist with the contents of a playlist file: one
// path per line, blank lines and #-comments skipped. Returns the number
// of entries loaded.
func (p *Playlist) Load(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open playlist: %w", err)
	}
	defer f.Close()

	tracks := make([]string, 0, 16)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() && len(tracks) < MaxTracks {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tracks = append(tracks, bound(line))
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("failed to read playlist: %w", err)
	}

	p.tracks = tracks
	p.index = 0
	return len(tracks), nil
}

// Replace makes the playlist a single entry (the PLAY command semantics)
func (p *Playlist) Replace(path string) {
	p.tracks = []string{bound(path)}
	p.index = 0
}

// Queue appends one track. A full playlist drops the entry silently and
// reports false.
func (p *Playlist) Queue(path string) bool {
	if len(p.tracks) >= MaxTracks {
		return false
	}
	p.tracks = append(p.tracks, bound(path))
	return true
}

// Clear empties the playlist
func (p *Playlist) Clear() {
	p.tracks = nil
	p.index = 0
}

// Len returns the number of tracks
func (p *Playlist) Len() int {
	return len(p.tracks)
}

// Index returns the current 0-based index
func (p *Playlist) Index() int {
	return p.index
}

// At returns the track at index i
func (p *Playlist) At(i int) (string, bool) {
	if i < 0 || i >= len(p.tracks) {
		return "", false
	}
	return p.tracks[i], true
}

// SetIndex moves the current index if i is valid
func (p *Playlist) SetIndex(i int) bool {
	if i < 0 || i >= len(p.tracks) {
		return false
	}
	p.index = i
	return true
}

func bound(path string) string {
	if len(path) > maxPathLen {
		return path[:maxPathLen]
	}
	return path
}
