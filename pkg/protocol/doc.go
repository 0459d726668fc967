// ABOUTME: Control protocol package for the jukebox daemon
// ABOUTME: Line command grammar, status records and a controller-side client
// Package protocol defines the jukebox control protocol.
//
// Commands are newline-delimited ASCII lines ("PLAY /music/a.mp3",
// "VOL +5", "SEEK 30") written to the daemon's command channel. Status is
// a single-line JSON record per emission on the status channel.
//
// The package provides both sides of the wire: Parse and LineBuffer for
// the daemon, Client for controllers.
//
// Example:
//
//	cmd, ok := protocol.Parse("SEEK +10")
//	// cmd.Op == protocol.OpSeek, cmd.N == 10, cmd.Rel == true
package protocol
