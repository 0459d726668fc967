// ABOUTME: Tests for the command grammar and line reassembly
// ABOUTME: Covers every keyword, malformed input and split-line buffering
package protocol

import "testing"

func TestParseCommands(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected Command
	}{
		{"play", "PLAY /music/a.mp3", Command{Op: OpPlay, Path: "/music/a.mp3"}},
		{"pause", "PAUSE", Command{Op: OpPause}},
		{"resume", "RESUME", Command{Op: OpResume}},
		{"toggle", "TOGGLE", Command{Op: OpToggle}},
		{"stop", "STOP", Command{Op: OpStop}},
		{"next", "NEXT", Command{Op: OpNext}},
		{"prev", "PREV", Command{Op: OpPrev}},
		{"seek absolute", "SEEK 30", Command{Op: OpSeek, N: 30}},
		{"seek forward", "SEEK +10", Command{Op: OpSeek, N: 10, Rel: true}},
		{"seek back", "SEEK -10", Command{Op: OpSeek, N: -10, Rel: true}},
		{"vol absolute", "VOL 50", Command{Op: OpVol, N: 50}},
		{"vol up", "VOL +5", Command{Op: OpVol, N: 5, Rel: true}},
		{"vol down", "VOL -5", Command{Op: OpVol, N: -5, Rel: true}},
		{"playlist", "PLAYLIST /music/list.m3u", Command{Op: OpPlaylist, Path: "/music/list.m3u"}},
		{"queue", "QUEUE /music/b.wav", Command{Op: OpQueue, Path: "/music/b.wav"}},
		{"jump", "JUMP 3", Command{Op: OpJump, N: 3}},
		{"status", "STATUS", Command{Op: OpStatus}},
		{"quit", "QUIT", Command{Op: OpQuit}},
		{"surrounding whitespace", "  STOP  ", Command{Op: OpStop}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, ok := Parse(tt.line)
			if !ok {
				t.Fatalf("expected %q to parse", tt.line)
			}
			if cmd != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, cmd)
			}
		})
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"unknown keyword", "FROB /x"},
		{"lowercase keyword", "play /x"},
		{"play without path", "PLAY"},
		{"seek without number", "SEEK"},
		{"seek non-numeric", "SEEK fast"},
		{"vol non-numeric", "VOL loud"},
		{"jump non-numeric", "JUMP first"},
		{"jump signed", "JUMP +1"},
		{"pause with argument", "PAUSE now"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Parse(tt.line); ok {
				t.Errorf("expected %q to be rejected", tt.line)
			}
		})
	}
}

func TestLineBufferReassembly(t *testing.T) {
	var lb LineBuffer

	// A command split across reads is reassembled into one dispatch
	if lines := lb.Feed([]byte("PLA")); len(lines) != 0 {
		t.Fatalf("expected no complete lines, got %v", lines)
	}
	lines := lb.Feed([]byte("Y /x.mp3\n"))
	if len(lines) != 1 || lines[0] != "PLAY /x.mp3" {
		t.Fatalf("expected reassembled PLAY /x.mp3, got %v", lines)
	}
}

func TestLineBufferMultipleLines(t *testing.T) {
	var lb LineBuffer

	lines := lb.Feed([]byte("PAUSE\nRESUME\nSTO"))
	if len(lines) != 2 || lines[0] != "PAUSE" || lines[1] != "RESUME" {
		t.Fatalf("expected two complete lines, got %v", lines)
	}

	lines = lb.Feed([]byte("P\n"))
	if len(lines) != 1 || lines[0] != "STOP" {
		t.Fatalf("expected buffered STOP, got %v", lines)
	}
}

func TestLineBufferOverflowTruncates(t *testing.T) {
	var lb LineBuffer

	long := make([]byte, MaxLine*2)
	for i := range long {
		long[i] = 'x'
	}
	if lines := lb.Feed(long); len(lines) != 0 {
		t.Fatalf("expected no lines, got %d", len(lines))
	}

	lines := lb.Feed([]byte("\n"))
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}
	if len(lines[0]) != MaxLine-1 {
		t.Errorf("expected truncation to %d bytes, got %d", MaxLine-1, len(lines[0]))
	}

	// The buffer is usable again after the oversized line
	lines = lb.Feed([]byte("STOP\n"))
	if len(lines) != 1 || lines[0] != "STOP" {
		t.Errorf("expected STOP after overflow, got %v", lines)
	}
}
