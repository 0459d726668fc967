// ABOUTME: Status record definition
// ABOUTME: Single-line JSON snapshot emitted on the status channel
package protocol

import (
	"encoding/json"
	"fmt"
)

// Status is a point-in-time snapshot of the engine, recomputed on every
// emission and never stored. Track is 1-based; File is a base name with
// no directory component.
type Status struct {
	State string `json:"state"`
	File  string `json:"file"`
	Pos   int    `json:"pos"`
	Dur   int    `json:"dur"`
	Vol   int    `json:"vol"`
	Track int    `json:"track"`
	Total int    `json:"total"`
	Rate  int    `json:"rate"`
}

// Encode renders the snapshot as one newline-terminated JSON line
func (s Status) Encode() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode status: %w", err)
	}
	return append(data, '\n'), nil
}

// ParseStatus decodes one status line
func ParseStatus(line []byte) (Status, error) {
	var s Status
	if err := json.Unmarshal(line, &s); err != nil {
		return Status{}, fmt.Errorf("failed to parse status: %w", err)
	}
	return s, nil
}
