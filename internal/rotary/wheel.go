package rotary

// Mode selects how a Wheel consumes rotation.
type Mode int

const (
	ModeDiscrete   Mode = iota // Menu navigation steps
	ModeContinuous             // Proportional deltas (paddle control)
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	if m == ModeContinuous {
		return "continuous"
	}
	return "discrete"
}

// Output is what one angle sample produced. Only the field matching the
// wheel's mode is ever set.
type Output struct {
	Step     Step
	Delta    float64
	HasDelta bool
}

// Wheel is a click wheel translator with exactly one active mode.
// A touch is Begin, any number of Move calls, then End.
type Wheel struct {
	mode    Mode
	tracker Tracker
	stepper *Stepper
	virtual float64 // Angle used for keyboard turns
}

// NewWheel creates a wheel in discrete mode.
func NewWheel(stepThreshold float64) *Wheel {
	return &Wheel{
		mode:    ModeDiscrete,
		stepper: NewStepper(stepThreshold),
	}
}

// Mode returns the active mode.
func (w *Wheel) Mode() Mode {
	return w.mode
}

// SetMode switches modes and drops any held angle, so the first sample in
// the new mode never produces output.
func (w *Wheel) SetMode(m Mode) {
	w.mode = m
	w.End()
}

// Begin starts a touch at angle. It never produces output.
func (w *Wheel) Begin(angle float64) {
	w.End()
	w.Move(angle)
}

// Move feeds a sample while touching.
func (w *Wheel) Move(angle float64) Output {
	w.virtual = angle
	if w.mode == ModeDiscrete {
		return Output{Step: w.stepper.Sample(angle)}
	}
	delta, ok := w.tracker.Sample(angle)
	return Output{Delta: delta, HasDelta: ok}
}

// End releases the touch.
func (w *Wheel) End() {
	w.tracker.Reset()
	w.stepper.Reset()
}

// Touching reports whether a touch is in progress.
func (w *Wheel) Touching() bool {
	return w.tracker.Active() || w.stepper.has
}

// Turn rotates the wheel by delta radians from its last known angle, as a
// keyboard stands in for a finger. The turn is a complete touch.
func (w *Wheel) Turn(delta float64) Output {
	from := w.virtual
	w.Begin(from)
	out := w.Move(Normalize(from + delta))
	w.End()
	return out
}
