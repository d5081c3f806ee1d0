// Package input defines the raw input events delivered by the window and
// hardware drivers, and the canonical state they are folded into.
package input

import (
	"fmt"
	"image"
)

// Event is a raw input event. The concrete types are KeyEvent, ButtonEvent,
// PointerEvent and AxisEvent.
type Event interface {
	isEvent()
}

// KeyEvent is a keyboard key transition. Key is the physical key name as
// reported by the window (for example "A", "ArrowUp", "Enter"). Rune is the
// glyph the key types, or 0 for keys that type nothing.
type KeyEvent struct {
	Key     string
	Rune    rune
	Pressed bool
}

// ButtonEvent is a gamepad or hardware button transition. Button is the raw
// button index.
type ButtonEvent struct {
	Button  int
	Pressed bool
}

// PointerAction distinguishes the three pointer transitions.
type PointerAction int

const (
	PointerDown PointerAction = iota
	PointerMove
	PointerUp
)

func (a PointerAction) String() string {
	switch a {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	default:
		return fmt.Sprintf("PointerAction(%d)", int(a))
	}
}

// PointerEvent is a mouse or touch transition in window coordinates.
// Held reports whether the primary button/finger is down during a move.
type PointerEvent struct {
	Action PointerAction
	Pos    image.Point
	Held   bool
}

// Axis names one of the four analog stick axes.
type Axis int

const (
	LeftX Axis = iota
	LeftY
	RightX
	RightY
	axisCount
)

func (a Axis) String() string {
	switch a {
	case LeftX:
		return "left_x"
	case LeftY:
		return "left_y"
	case RightX:
		return "right_x"
	case RightY:
		return "right_y"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// AxisEvent reports a raw stick value in [-1,1].
type AxisEvent struct {
	Axis  Axis
	Value float64
}

func (KeyEvent) isEvent()     {}
func (ButtonEvent) isEvent()  {}
func (PointerEvent) isEvent() {}
func (AxisEvent) isEvent()    {}

// KeyDown returns a press event for the named key.
func KeyDown(key string) KeyEvent {
	return KeyEvent{Key: key, Rune: runeForKey(key), Pressed: true}
}

// KeyUp returns a release event for the named key.
func KeyUp(key string) KeyEvent {
	return KeyEvent{Key: key, Pressed: false}
}

// Tap returns the down/up pair for a touch at p.
func Tap(p image.Point) []Event {
	return []Event{
		PointerEvent{Action: PointerDown, Pos: p, Held: true},
		PointerEvent{Action: PointerUp, Pos: p},
	}
}

// runeForKey derives the typed glyph for single-character key names.
func runeForKey(key string) rune {
	switch key {
	case "Space":
		return ' '
	case "Period":
		return '.'
	case "Minus":
		return '-'
	case "Slash":
		return '/'
	}
	if len(key) == 1 {
		c := key[0]
		if c >= 'A' && c <= 'Z' {
			return rune(c - 'A' + 'a')
		}
		if c >= '0' && c <= '9' {
			return rune(c)
		}
	}
	if len(key) == 6 && key[:5] == "Digit" {
		return rune(key[5])
	}
	return 0
}
