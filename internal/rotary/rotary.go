// Package rotary translates sampled click wheel angles into input.
//
// Angles are radians in the math.Atan2 range (-π, π]. The first sample after
// a touch begins only arms the translator; deltas are produced from the
// second sample onward. Two consumers exist: a discrete stepper for list
// navigation and a continuous delta stream for analog control.
package rotary

import "math"

// DefaultStepThreshold is the rotation needed for one discrete step.
const DefaultStepThreshold = math.Pi / 8

// Normalize maps an angle difference into (-π, π] by adding or subtracting
// one full turn. Differences of two (-π, π] angles always fit after one
// correction.
func Normalize(delta float64) float64 {
	switch {
	case delta > math.Pi:
		return delta - 2*math.Pi
	case delta <= -math.Pi:
		return delta + 2*math.Pi
	}
	return delta
}

// AngleAt returns the angle of point (x, y) around center (cx, cy).
// aspect scales the vertical distance; terminal cells are about twice as
// tall as wide, so hosts drawing a round wheel in cells pass 2.
func AngleAt(x, y, cx, cy, aspect float64) float64 {
	return math.Atan2((y-cy)*aspect, x-cx)
}

// Tracker remembers the last sampled angle and yields wrapped deltas.
type Tracker struct {
	last float64
	has  bool
}

// Sample records angle and returns the delta from the previous sample.
// ok is false for the first sample after creation or Reset.
func (t *Tracker) Sample(angle float64) (delta float64, ok bool) {
	if !t.has {
		t.last = angle
		t.has = true
		return 0, false
	}
	delta = Normalize(angle - t.last)
	t.last = angle
	return delta, true
}

// Reset forgets the previous sample.
func (t *Tracker) Reset() {
	t.has = false
	t.last = 0
}

// Active reports whether a previous sample is held.
func (t *Tracker) Active() bool {
	return t.has
}

// Step is one discrete navigation event.
type Step int

const (
	StepNone Step = iota
	StepNext      // Clockwise in screen coordinates (positive delta)
	StepPrev      // Counter-clockwise (negative delta)
)

// String returns a human-readable name for the step.
func (s Step) String() string {
	switch s {
	case StepNext:
		return "next"
	case StepPrev:
		return "prev"
	default:
		return "none"
	}
}

// Stepper emits a Step each time rotation since the reference angle exceeds
// the threshold. The reference moves to the sample that fired, so the
// threshold is re-armed from the new position.
type Stepper struct {
	threshold float64
	ref       float64
	has       bool
}

// NewStepper creates a stepper. Non-positive thresholds fall back to
// DefaultStepThreshold.
func NewStepper(threshold float64) *Stepper {
	if threshold <= 0 {
		threshold = DefaultStepThreshold
	}
	return &Stepper{threshold: threshold}
}

// Threshold returns the rotation needed per step.
func (s *Stepper) Threshold() float64 {
	return s.threshold
}

// Sample feeds an angle and returns the resulting step, if any.
func (s *Stepper) Sample(angle float64) Step {
	if !s.has {
		s.ref = angle
		s.has = true
		return StepNone
	}

	delta := Normalize(angle - s.ref)
	if math.Abs(delta) <= s.threshold {
		return StepNone
	}

	s.ref = angle
	if delta > 0 {
		return StepNext
	}
	return StepPrev
}

// Reset forgets the reference angle.
func (s *Stepper) Reset() {
	s.has = false
	s.ref = 0
}
