// ABOUTME: Tests for fixed-point volume scaling
// ABOUTME: Verifies clamping, identity at 100%, silence at 0% and monotonicity
package volume

import "testing"

func TestSetClamps(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"negative", -10, 0},
		{"zero", 0, 0},
		{"mid", 50, 50},
		{"max", 100, 100},
		{"above max", 150, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(tt.input)
			if v.Level() != tt.expected {
				t.Errorf("expected level %d, got %d", tt.expected, v.Level())
			}
		})
	}
}

func TestApplyIdentityAt100(t *testing.T) {
	v := New(100)
	samples := []int16{0, 1, -1, 32767, -32768, 12345}
	expected := append([]int16(nil), samples...)

	v.Apply(samples)
	for i := range expected {
		if samples[i] != expected[i] {
			t.Errorf("sample %d changed at full volume: %d -> %d", i, expected[i], samples[i])
		}
	}
}

func TestApplySilenceAt0(t *testing.T) {
	v := New(0)
	samples := []int16{32767, -32768, 100, -100, 1}

	v.Apply(samples)
	for i, s := range samples {
		if s != 0 {
			t.Errorf("sample %d not silenced: %d", i, s)
		}
	}
}

func TestApplyHalvesAt50(t *testing.T) {
	v := New(50)
	samples := []int16{20000, -20000, 1000}

	v.Apply(samples)
	// Q15 factor for 50% is 16384, an exact halving
	expected := []int16{10000, -10000, 500}
	for i := range expected {
		if samples[i] != expected[i] {
			t.Errorf("sample %d: expected %d, got %d", i, expected[i], samples[i])
		}
	}
}

func TestApplyMonotonic(t *testing.T) {
	const input = int16(20000)
	prev := int16(-1)

	for pct := 0; pct <= 100; pct += 5 {
		v := New(pct)
		samples := []int16{input}
		v.Apply(samples)

		if samples[0] < prev {
			t.Fatalf("magnitude not monotonic at %d%%: %d < %d", pct, samples[0], prev)
		}
		prev = samples[0]
	}
}
