package widgets

import (
	"image"
	"strings"
	"unicode"

	"github.com/user-none/duoscreen/input"
	"github.com/user-none/duoscreen/layout"
	"github.com/user-none/duoscreen/ui/style"
)

// Special keyboard keys
const (
	KeyBackspace = "⌫"
	KeySpace     = "space"
	KeyConfirm   = "✓"
)

// KeyRows is the touch layout, top to bottom.
var KeyRows = [][]string{
	{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0"},
	{"q", "w", "e", "r", "t", "y", "u", "i", "o", "p"},
	{"a", "s", "d", "f", "g", "h", "j", "k", "l"},
	{"z", "x", "c", "v", "b", "n", "m", KeyBackspace},
	{"@", ".", KeySpace, KeyConfirm},
}

// Keyboard is an on-screen text keyboard drawn over the bottom surface.
// Hardware keys type as well: printable keys append, Backspace deletes,
// Enter confirms and Escape or B dismisses with the text as it stands.
// Pad A and START confirm.
type Keyboard struct {
	Overlay[string]

	layout layout.Layout
	shift  bool

	// touching is set between a PointerDown the keyboard consumed and the
	// matching PointerUp, even when the press dismissed it.
	touching bool
}

// NewKeyboard creates a hidden keyboard sized to the bottom surface.
func NewKeyboard(l layout.Layout) *Keyboard {
	return &Keyboard{layout: l}
}

// Text returns the buffer being edited.
func (k *Keyboard) Text() string {
	return k.value
}

// Shift reports whether typed letters are upper-cased.
func (k *Keyboard) Shift() bool {
	return k.shift
}

// SetShift sets the shift toggle.
func (k *Keyboard) SetShift(on bool) {
	k.shift = on
}

// Press applies one key from the touch layout.
func (k *Keyboard) Press(key string) {
	if !k.visible {
		return
	}
	switch key {
	case KeyBackspace:
		r := []rune(k.value)
		if len(r) > 0 {
			k.value = string(r[:len(r)-1])
		}
	case KeySpace:
		k.value += " "
	case KeyConfirm:
		k.Dismiss()
	default:
		if k.shift {
			key = strings.ToUpper(key)
		}
		k.value += key
	}
}

func (k *Keyboard) typeRune(r rune) {
	if k.shift {
		r = unicode.ToUpper(r)
	}
	k.value += string(r)
}

// keyStartY is the y of the first key row in bottom-local space.
func (k *Keyboard) keyStartY() int {
	return k.layout.BottomHeight - len(KeyRows)*style.KeyRowHeight - 5
}

// KeyAt returns the key under a bottom-local point.
func (k *Keyboard) KeyAt(p image.Point) (string, bool) {
	startY := k.keyStartY()
	if p.Y < startY {
		return "", false
	}
	row := (p.Y - startY) / style.KeyRowHeight
	if row < 0 || row >= len(KeyRows) {
		return "", false
	}
	keys := KeyRows[row]
	keyWidth := k.layout.BottomWidth / len(keys)
	col := p.X / keyWidth
	if col < 0 || col >= len(keys) {
		return "", false
	}
	return keys[col], true
}

// HandleEvent consumes every event while visible, and the rest of a touch
// gesture that started on the keyboard.
func (k *Keyboard) HandleEvent(e input.Event) bool {
	if !k.visible {
		return k.finishGesture(e)
	}

	switch ev := e.(type) {
	case input.PointerEvent:
		if ev.Action != input.PointerDown {
			if ev.Action == input.PointerUp {
				k.touching = false
			}
			return true
		}
		k.touching = true
		local, ok := k.layout.ToBottom(ev.Pos)
		if !ok {
			return true
		}
		if key, ok := k.KeyAt(local); ok {
			k.Press(key)
		}
	case input.KeyEvent:
		if !ev.Pressed {
			return true
		}
		switch ev.Key {
		case "Backspace":
			k.Press(KeyBackspace)
		case "Enter":
			k.Press(KeyConfirm)
		case "Escape":
			k.Dismiss()
		case "ShiftLeft", "ShiftRight":
			k.shift = !k.shift
		default:
			if ev.Rune != 0 {
				k.typeRune(ev.Rune)
			}
		}
	case input.ButtonEvent:
		if !ev.Pressed {
			return true
		}
		name, _ := input.PadButton(ev.Button)
		switch name {
		case input.ButtonB:
			k.Dismiss()
		case input.ButtonA, input.ButtonStart:
			k.Press(KeyConfirm)
		case input.ButtonSelect:
			k.Press(KeyBackspace)
		case input.ButtonL, input.ButtonR:
			k.shift = !k.shift
		}
	}
	return true
}

// finishGesture swallows the moves and release of a touch whose press
// dismissed the keyboard, so they never reach the owning screen.
func (k *Keyboard) finishGesture(e input.Event) bool {
	ev, ok := e.(input.PointerEvent)
	if !ok || !k.touching {
		return false
	}
	switch ev.Action {
	case input.PointerUp:
		k.touching = false
		return true
	case input.PointerMove:
		return true
	}
	// A new press means the release was lost.
	k.touching = false
	return false
}

// Render draws the keyboard over the whole bottom surface.
func (k *Keyboard) Render(dst *image.RGBA, theme style.Theme) {
	if !k.visible {
		return
	}
	style.Fill(dst, theme.Dark)

	face := style.Face(style.FontMedium)
	small := style.Face(style.FontSmall)
	style.DrawText(dst, style.FitText(k.value+"|", face, k.layout.BottomWidth-70), 10, 10, face, theme.White)
	if k.shift {
		style.DrawTextRight(dst, "SHIFT", k.layout.BottomWidth-10, 12, small, theme.Warning)
	}

	startY := k.keyStartY()
	for rowIdx, row := range KeyRows {
		keyWidth := k.layout.BottomWidth / len(row)
		y := startY + rowIdx*style.KeyRowHeight
		for col, key := range row {
			x := col * keyWidth
			r := image.Rect(x+2, y+2, x+keyWidth-2, y+style.KeyRowHeight-2)
			style.FillRect(dst, r, theme.Secondary)
			style.StrokeRect(dst, r, theme.White, 1)

			label := keyLabel(key, k.shift)
			style.DrawTextCentered(dst, label, r, small, theme.White)
		}
	}
}

// keyLabel returns the caption for a key. The UI face has no glyphs for the
// backspace and check marks.
func keyLabel(key string, shift bool) string {
	switch key {
	case KeyBackspace:
		return "DEL"
	case KeyConfirm:
		return "OK"
	}
	if shift {
		return strings.ToUpper(key)
	}
	return key
}
