// ABOUTME: Tests for status record encoding
// ABOUTME: Verifies the JSON schema and round-trip parsing
package protocol

import (
	"strings"
	"testing"
)

func TestStatusEncodeSchema(t *testing.T) {
	s := Status{
		State: "playing",
		File:  "a.mp3",
		Pos:   12,
		Dur:   180,
		Vol:   80,
		Track: 1,
		Total: 3,
		Rate:  44100,
	}

	data, err := s.Encode()
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	line := string(data)
	if !strings.HasSuffix(line, "\n") {
		t.Error("expected newline-terminated record")
	}
	if strings.Count(line, "\n") != 1 {
		t.Error("expected a single-line record")
	}

	for _, field := range []string{`"state":"playing"`, `"file":"a.mp3"`, `"pos":12`,
		`"dur":180`, `"vol":80`, `"track":1`, `"total":3`, `"rate":44100`} {
		if !strings.Contains(line, field) {
			t.Errorf("missing %s in %s", field, line)
		}
	}
}

func TestStatusRoundTrip(t *testing.T) {
	s := Status{State: "paused", File: "b.wav", Pos: 3, Dur: 10, Vol: 50, Track: 2, Total: 2, Rate: 22050}

	data, err := s.Encode()
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	parsed, err := ParseStatus(data[:len(data)-1])
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if parsed != s {
		t.Errorf("expected %+v, got %+v", s, parsed)
	}
}

func TestParseStatusRejectsGarbage(t *testing.T) {
	if _, err := ParseStatus([]byte("not json")); err == nil {
		t.Error("expected parse error")
	}
}
