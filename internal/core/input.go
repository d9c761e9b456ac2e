package core

// Button is a discrete click wheel press, abstracted from the physical
// key, mouse region or touch that produced it.
type Button int

const (
	ButtonNone      Button = iota
	ButtonMenu             // Top of the wheel - leave the current screen (exit)
	ButtonForward          // Right of the wheel - next item
	ButtonBack             // Left of the wheel - previous item
	ButtonPlayPause        // Bottom of the wheel
	ButtonSelect           // Center hub - primary action
)

// String returns a human-readable name for the button.
func (b Button) String() string {
	switch b {
	case ButtonNone:
		return "none"
	case ButtonMenu:
		return "menu"
	case ButtonForward:
		return "forward"
	case ButtonBack:
		return "back"
	case ButtonPlayPause:
		return "playpause"
	case ButtonSelect:
		return "select"
	default:
		return "unknown"
	}
}

// InputPort carries the two input streams a running app consumes:
// button presses and signed rotation deltas (radians). Delivery is
// synchronous; handlers run on the publisher's goroutine.
type InputPort struct {
	nextID    int
	buttons   map[int]func(Button)
	rotations map[int]func(delta float64)
}

// NewInputPort creates an empty port.
func NewInputPort() *InputPort {
	return &InputPort{
		buttons:   make(map[int]func(Button)),
		rotations: make(map[int]func(float64)),
	}
}

// OnButton subscribes to button presses. The returned func unsubscribes.
func (p *InputPort) OnButton(fn func(Button)) (cancel func()) {
	p.nextID++
	id := p.nextID
	p.buttons[id] = fn
	return func() { delete(p.buttons, id) }
}

// OnRotate subscribes to rotation deltas. The returned func unsubscribes.
func (p *InputPort) OnRotate(fn func(delta float64)) (cancel func()) {
	p.nextID++
	id := p.nextID
	p.rotations[id] = fn
	return func() { delete(p.rotations, id) }
}

// Press delivers a button press to every subscriber.
func (p *InputPort) Press(b Button) {
	for _, fn := range p.buttons {
		fn(b)
	}
}

// Rotate delivers a rotation delta to every subscriber.
func (p *InputPort) Rotate(delta float64) {
	for _, fn := range p.rotations {
		fn(delta)
	}
}

// Subscribers returns the number of live subscriptions.
func (p *InputPort) Subscribers() int {
	return len(p.buttons) + len(p.rotations)
}
