package input

// Canonical button names shared by every physical input source.
const (
	ButtonA       = "A"
	ButtonB       = "B"
	ButtonX       = "X"
	ButtonY       = "Y"
	ButtonL       = "L"
	ButtonR       = "R"
	ButtonStart   = "START"
	ButtonSelect  = "SELECT"
	ButtonHome    = "HOME"
	ButtonPower   = "POWER"
	ButtonFriends = "FRIENDS"
	ButtonUp      = "UP"
	ButtonDown    = "DOWN"
	ButtonLeft    = "LEFT"
	ButtonRight   = "RIGHT"
)

// Names lists every canonical button. The state map is seeded with all of
// them so a snapshot always has a definite value for each.
var Names = []string{
	ButtonHome, ButtonSelect, ButtonStart, ButtonPower, ButtonFriends,
	ButtonA, ButtonB, ButtonX, ButtonY, ButtonL, ButtonR,
	ButtonUp, ButtonDown, ButtonLeft, ButtonRight,
}

// keyNames maps physical key names to canonical buttons.
var keyNames = map[string]string{
	"Escape":     ButtonHome,
	"Enter":      ButtonStart,
	"Backspace":  ButtonSelect,
	"A":          ButtonA,
	"S":          ButtonB,
	"D":          ButtonX,
	"W":          ButtonY,
	"Q":          ButtonL,
	"E":          ButtonR,
	"ArrowUp":    ButtonUp,
	"ArrowDown":  ButtonDown,
	"ArrowLeft":  ButtonLeft,
	"ArrowRight": ButtonRight,
	"F":          ButtonFriends,
	"P":          ButtonPower,
}

// Raw gamepad button indices. 0-8 follow the handheld's GPIO wiring order,
// 12-15 are the d-pad in standard gamepad order.
const (
	PadA      = 0
	PadB      = 1
	PadX      = 2
	PadY      = 3
	PadL      = 4
	PadR      = 5
	PadSelect = 6
	PadStart  = 7
	PadHome   = 8
	PadUp     = 12
	PadDown   = 13
	PadLeft   = 14
	PadRight  = 15
)

var padNames = map[int]string{
	PadA:      ButtonA,
	PadB:      ButtonB,
	PadX:      ButtonX,
	PadY:      ButtonY,
	PadL:      ButtonL,
	PadR:      ButtonR,
	PadSelect: ButtonSelect,
	PadStart:  ButtonStart,
	PadHome:   ButtonHome,
	PadUp:     ButtonUp,
	PadDown:   ButtonDown,
	PadLeft:   ButtonLeft,
	PadRight:  ButtonRight,
}

// KeyButton returns the canonical name for a physical key.
func KeyButton(key string) (string, bool) {
	name, ok := keyNames[key]
	return name, ok
}

// PadButton returns the canonical name for a raw gamepad button index.
func PadButton(button int) (string, bool) {
	name, ok := padNames[button]
	return name, ok
}

// Canonical resolves the canonical button an event refers to, if any.
// Screens use it so a key press and the matching gamepad press behave alike.
func Canonical(e Event) (name string, pressed bool, ok bool) {
	switch ev := e.(type) {
	case KeyEvent:
		name, ok = KeyButton(ev.Key)
		return name, ev.Pressed, ok
	case ButtonEvent:
		name, ok = PadButton(ev.Button)
		return name, ev.Pressed, ok
	}
	return "", false, false
}

// IsPress reports whether e is a press of the named canonical button.
func IsPress(e Event, name string) bool {
	n, pressed, ok := Canonical(e)
	return ok && pressed && n == name
}

// IsConfirm reports whether e is an "accept" action: the A button or the
// Enter key.
func IsConfirm(e Event) bool {
	if ke, ok := e.(KeyEvent); ok && ke.Pressed && ke.Key == "Enter" {
		return true
	}
	return IsPress(e, ButtonA)
}

// IsBack reports whether e is a "go back" action: the B button, or the B
// and Escape keys that desktop users reach for.
func IsBack(e Event) bool {
	if ke, ok := e.(KeyEvent); ok && ke.Pressed && (ke.Key == "B" || ke.Key == "Escape") {
		return true
	}
	return IsPress(e, ButtonB)
}
