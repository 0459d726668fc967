// ABOUTME: Fixed-point volume scaling
// ABOUTME: Applies a 0-100 gain via a Q15 multiplier, no floating point
package volume

// Q15 fixed point: 100% maps to 1<<15
const (
	shift  = 15
	maxQ15 = 1 << shift
)

// Volume holds a 0-100 setting and its derived Q15 multiplier. Both are
// recomputed together on every Set.
type Volume struct {
	percent int
	factor  int32
}

// New creates a volume at the given percentage
func New(percent int) *Volume {
	v := &Volume{}
	v.Set(percent)
	return v
}

// Set clamps percent to [0,100] and derives the multiplier
func (v *Volume) Set(percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	v.percent = percent
	v.factor = int32(percent * maxQ15 / 100)
}

// Level returns the current percentage
func (v *Volume) Level() int {
	return v.percent
}

// Apply scales samples in place by the Q15 multiplier. At 100% it is the
// identity and skipped entirely.
func (v *Volume) Apply(samples []int16) {
	if v.factor >= maxQ15 {
		return
	}
	for i, s := range samples {
		samples[i] = int16((int32(s) * v.factor) >> shift)
	}
}
