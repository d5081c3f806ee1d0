package ui

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/user-none/duoscreen/input"
)

// axisEpsilon is the smallest stick change reported as a new axis event.
const axisEpsilon = 0.01

// padButtons maps the standard gamepad layout onto raw pad indices.
var padButtons = []struct {
	std ebiten.StandardGamepadButton
	pad int
}{
	{ebiten.StandardGamepadButtonRightBottom, input.PadA},
	{ebiten.StandardGamepadButtonRightRight, input.PadB},
	{ebiten.StandardGamepadButtonRightLeft, input.PadX},
	{ebiten.StandardGamepadButtonRightTop, input.PadY},
	{ebiten.StandardGamepadButtonFrontTopLeft, input.PadL},
	{ebiten.StandardGamepadButtonFrontTopRight, input.PadR},
	{ebiten.StandardGamepadButtonCenterLeft, input.PadSelect},
	{ebiten.StandardGamepadButtonCenterRight, input.PadStart},
	{ebiten.StandardGamepadButtonCenterCenter, input.PadHome},
	{ebiten.StandardGamepadButtonLeftTop, input.PadUp},
	{ebiten.StandardGamepadButtonLeftBottom, input.PadDown},
	{ebiten.StandardGamepadButtonLeftLeft, input.PadLeft},
	{ebiten.StandardGamepadButtonLeftRight, input.PadRight},
}

// padAxes maps the standard stick axes onto input axes.
var padAxes = []struct {
	std  ebiten.StandardGamepadAxis
	axis input.Axis
}{
	{ebiten.StandardGamepadAxisLeftStickHorizontal, input.LeftX},
	{ebiten.StandardGamepadAxisLeftStickVertical, input.LeftY},
	{ebiten.StandardGamepadAxisRightStickHorizontal, input.RightX},
	{ebiten.StandardGamepadAxisRightStickVertical, input.RightY},
}

// EventSource polls ebiten once per tick and reports what changed since the
// previous tick as raw input events.
type EventSource struct {
	keys    []ebiten.Key
	events  []input.Event
	axes    axisTracker
	pointer pointerTracker

	touchID  ebiten.TouchID
	touching bool
}

// NewEventSource creates an event source.
func NewEventSource() *EventSource {
	return &EventSource{}
}

// Poll returns this tick's events in the order keyboard, gamepad, pointer.
// The slice is reused by the next call.
func (s *EventSource) Poll() []input.Event {
	s.events = s.events[:0]
	s.pollKeys()
	s.pollGamepad()
	s.pollPointer()
	return s.events
}

func (s *EventSource) pollKeys() {
	s.keys = inpututil.AppendJustPressedKeys(s.keys[:0])
	for _, k := range s.keys {
		s.events = append(s.events, input.KeyDown(k.String()))
	}
	s.keys = inpututil.AppendJustReleasedKeys(s.keys[:0])
	for _, k := range s.keys {
		s.events = append(s.events, input.KeyUp(k.String()))
	}
}

func (s *EventSource) pollGamepad() {
	ids := ebiten.AppendGamepadIDs(nil)
	if len(ids) == 0 {
		return
	}
	id := ids[0]
	if !ebiten.IsStandardGamepadLayoutAvailable(id) {
		return
	}

	for _, b := range padButtons {
		if inpututil.IsStandardGamepadButtonJustPressed(id, b.std) {
			s.events = append(s.events, input.ButtonEvent{Button: b.pad, Pressed: true})
		}
		if inpututil.IsStandardGamepadButtonJustReleased(id, b.std) {
			s.events = append(s.events, input.ButtonEvent{Button: b.pad, Pressed: false})
		}
	}
	for _, a := range padAxes {
		s.events = s.axes.update(s.events, a.axis, ebiten.StandardGamepadAxisValue(id, a.std))
	}
}

// pollPointer follows the first touch while one is down and the mouse
// otherwise.
func (s *EventSource) pollPointer() {
	if s.touching {
		for _, id := range ebiten.AppendTouchIDs(nil) {
			if id == s.touchID {
				x, y := ebiten.TouchPosition(id)
				s.events = s.pointer.update(s.events, true, image.Pt(x, y))
				return
			}
		}
		s.touching = false
		s.events = s.pointer.update(s.events, false, s.pointer.pos)
		return
	}

	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		s.touchID = ids[0]
		s.touching = true
		x, y := ebiten.TouchPosition(s.touchID)
		s.events = s.pointer.update(s.events, true, image.Pt(x, y))
		return
	}

	x, y := ebiten.CursorPosition()
	s.events = s.pointer.update(s.events, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), image.Pt(x, y))
}

// pointerTracker turns sampled pointer state into down/move/up transitions.
type pointerTracker struct {
	down  bool
	pos   image.Point
	valid bool
}

func (t *pointerTracker) update(dst []input.Event, down bool, pos image.Point) []input.Event {
	switch {
	case down && !t.down:
		dst = append(dst, input.PointerEvent{Action: input.PointerDown, Pos: pos, Held: true})
	case !down && t.down:
		dst = append(dst, input.PointerEvent{Action: input.PointerUp, Pos: pos})
	case t.valid && pos != t.pos:
		dst = append(dst, input.PointerEvent{Action: input.PointerMove, Pos: pos, Held: down})
	}
	t.down = down
	t.pos = pos
	t.valid = true
	return dst
}

// axisTracker reports stick values that moved by more than axisEpsilon.
type axisTracker struct {
	last [4]float64
}

func (t *axisTracker) update(dst []input.Event, axis input.Axis, v float64) []input.Event {
	if math.Abs(v-t.last[axis]) < axisEpsilon {
		return dst
	}
	t.last[axis] = v
	return append(dst, input.AxisEvent{Axis: axis, Value: v})
}
