// ABOUTME: Playback state enumeration
// ABOUTME: Stopped/Playing/Paused with protocol-facing names
package engine

// State is the playback state. Exactly one value is active at a time;
// decoding only proceeds in Playing.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the protocol-facing state name
func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}
