// ABOUTME: Command grammar and line reassembly
// ABOUTME: Parses control lines and buffers partial reads into whole lines
package protocol

import (
	"strconv"
	"strings"
)

// MaxLine bounds the partial-line buffer; overflowing lines truncate
// silently instead of growing unbounded.
const MaxLine = 512

// Op identifies a control command
type Op int

const (
	OpUnknown Op = iota
	OpPlay
	OpPause
	OpResume
	OpToggle
	OpStop
	OpNext
	OpPrev
	OpSeek
	OpVol
	OpPlaylist
	OpQueue
	OpJump
	OpStatus
	OpQuit
)

// Command is one parsed control line. Path carries the argument of
// PLAY/PLAYLIST/QUEUE; N and Rel carry the numeric argument of
// SEEK/VOL/JUMP (Rel marks a +n/-n relative form).
type Command struct {
	Op   Op
	Path string
	N    int
	Rel  bool
}

// Parse interprets one complete line. The keyword prefix is
// case-sensitive. Empty, unrecognized and malformed lines return ok=false
// and are silently ignored by the dispatcher.
func Parse(line string) (Command, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{}, false
	}

	keyword, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch keyword {
	case "PLAY":
		return pathCommand(OpPlay, arg)
	case "PLAYLIST":
		return pathCommand(OpPlaylist, arg)
	case "QUEUE":
		return pathCommand(OpQueue, arg)
	case "PAUSE":
		return bareCommand(OpPause, arg)
	case "RESUME":
		return bareCommand(OpResume, arg)
	case "TOGGLE":
		return bareCommand(OpToggle, arg)
	case "STOP":
		return bareCommand(OpStop, arg)
	case "NEXT":
		return bareCommand(OpNext, arg)
	case "PREV":
		return bareCommand(OpPrev, arg)
	case "STATUS":
		return bareCommand(OpStatus, arg)
	case "QUIT":
		return bareCommand(OpQuit, arg)
	case "SEEK":
		return numCommand(OpSeek, arg, true)
	case "VOL":
		return numCommand(OpVol, arg, true)
	case "JUMP":
		return numCommand(OpJump, arg, false)
	}
	return Command{}, false
}

func pathCommand(op Op, arg string) (Command, bool) {
	if arg == "" {
		return Command{}, false
	}
	return Command{Op: op, Path: arg}, true
}

func bareCommand(op Op, arg string) (Command, bool) {
	if arg != "" {
		return Command{}, false
	}
	return Command{Op: op}, true
}

func numCommand(op Op, arg string, allowRel bool) (Command, bool) {
	signed := strings.HasPrefix(arg, "+") || strings.HasPrefix(arg, "-")
	if signed && !allowRel {
		return Command{}, false
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return Command{}, false
	}
	return Command{Op: op, N: n, Rel: signed && allowRel}, true
}

// LineBuffer accumulates control-channel bytes until a terminator arrives.
// Partial lines survive across reads; a line longer than MaxLine is
// truncated rather than grown.
type LineBuffer struct {
	buf []byte
}

// Feed consumes one read's worth of bytes and returns the complete lines
// it delimits, without their terminators.
func (l *LineBuffer) Feed(p []byte) []string {
	var lines []string
	for _, b := range p {
		if b == '\n' {
			lines = append(lines, string(l.buf))
			l.buf = l.buf[:0]
			continue
		}
		if len(l.buf) < MaxLine-1 {
			l.buf = append(l.buf, b)
		}
	}
	return lines
}
