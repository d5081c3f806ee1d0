package input

import "image"

// Defaults for stick processing.
const (
	DefaultDeadZone    = 0.15
	DefaultSensitivity = 1.0
)

// Pointer is the single tracked pointer/touch.
type Pointer struct {
	Pos     image.Point
	Pressed bool
	Seen    bool // false until the first pointer-down
}

// State folds raw events into a canonical button map, four stick axes and
// a tracked pointer. It is level-triggered: a button stays pressed until its
// release event arrives. State is owned by the frame loop and is not safe
// for concurrent use.
type State struct {
	buttons     map[string]bool
	axes        [axisCount]float64
	pointer     Pointer
	deadZone    float64
	sensitivity float64
}

// NewState creates a state with every canonical button released.
func NewState(deadZone, sensitivity float64) *State {
	if deadZone < 0 {
		deadZone = 0
	}
	if sensitivity == 0 {
		sensitivity = DefaultSensitivity
	}
	s := &State{
		buttons:     make(map[string]bool, len(Names)),
		deadZone:    deadZone,
		sensitivity: sensitivity,
	}
	for _, name := range Names {
		s.buttons[name] = false
	}
	return s
}

// Apply folds one raw event into the state. Unmapped keys and buttons are
// ignored.
func (s *State) Apply(e Event) {
	switch ev := e.(type) {
	case KeyEvent:
		if name, ok := KeyButton(ev.Key); ok {
			s.buttons[name] = ev.Pressed
		}
	case ButtonEvent:
		if name, ok := PadButton(ev.Button); ok {
			s.buttons[name] = ev.Pressed
		}
	case PointerEvent:
		s.applyPointer(ev)
	case AxisEvent:
		if ev.Axis >= 0 && ev.Axis < axisCount {
			s.axes[ev.Axis] = s.filterAxis(ev.Value)
		}
	}
}

func (s *State) applyPointer(ev PointerEvent) {
	switch ev.Action {
	case PointerDown:
		s.pointer = Pointer{Pos: ev.Pos, Pressed: true, Seen: true}
	case PointerMove:
		if s.pointer.Pressed {
			s.pointer.Pos = ev.Pos
		}
	case PointerUp:
		s.pointer.Pressed = false
	}
}

// filterAxis zeroes jitter inside the dead zone and scales everything else.
func (s *State) filterAxis(v float64) float64 {
	mag := v
	if mag < 0 {
		mag = -mag
	}
	if mag < s.deadZone {
		return 0
	}
	v *= s.sensitivity
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// Buttons returns a copy of the button map. The copy is never mutated by
// later events.
func (s *State) Buttons() map[string]bool {
	out := make(map[string]bool, len(s.buttons))
	for k, v := range s.buttons {
		out[k] = v
	}
	return out
}

// Pressed reports whether a canonical button is currently held.
func (s *State) Pressed(name string) bool {
	return s.buttons[name]
}

// Axis returns the filtered value of a stick axis.
func (s *State) Axis(a Axis) float64 {
	if a < 0 || a >= axisCount {
		return 0
	}
	return s.axes[a]
}

// Pointer returns the tracked pointer. ok is false until a pointer-down has
// been seen.
func (s *State) Pointer() (Pointer, bool) {
	return s.pointer, s.pointer.Seen
}
