package screens

import (
	"image"

	"github.com/user-none/duoscreen/input"
	"github.com/user-none/duoscreen/layout"
)

// ListState tracks the selection and scroll offset of a vertical list
// showing at most visible rows at once.
type ListState struct {
	Selected int
	Offset   int
	count    int
	visible  int
}

// NewListState creates a list of count items with visible rows on screen.
func NewListState(count, visible int) ListState {
	if visible < 1 {
		visible = 1
	}
	return ListState{count: count, visible: visible}
}

// SetCount changes the item count, keeping the selection in range.
func (l *ListState) SetCount(count int) {
	l.count = count
	if l.Selected >= count {
		l.Selected = count - 1
	}
	if l.Selected < 0 {
		l.Selected = 0
	}
	l.ensureVisible()
}

// Count returns the number of items.
func (l *ListState) Count() int {
	return l.count
}

// Move shifts the selection by delta, clamped to the list.
func (l *ListState) Move(delta int) {
	if l.count == 0 {
		return
	}
	l.Select(l.Selected + delta)
}

// Select sets the selection, clamped to the list.
func (l *ListState) Select(i int) {
	if i < 0 {
		i = 0
	}
	if i > l.count-1 {
		i = l.count - 1
	}
	if i < 0 {
		i = 0
	}
	l.Selected = i
	l.ensureVisible()
}

// Visible returns the index range [start,end) currently on screen.
func (l *ListState) Visible() (start, end int) {
	end = l.Offset + l.visible
	if end > l.count {
		end = l.count
	}
	return l.Offset, end
}

// RowAt maps a row slot on screen to an item index.
func (l *ListState) RowAt(slot int) (int, bool) {
	if slot < 0 || slot >= l.visible {
		return 0, false
	}
	i := l.Offset + slot
	if i >= l.count {
		return 0, false
	}
	return i, true
}

func (l *ListState) ensureVisible() {
	if l.Selected < l.Offset {
		l.Offset = l.Selected
	}
	if l.Selected >= l.Offset+l.visible {
		l.Offset = l.Selected - l.visible + 1
	}
	if l.Offset < 0 {
		l.Offset = 0
	}
}

// bottomTap returns the bottom-local position of a pointer press. Presses
// outside the bottom surface report false and must be ignored.
func bottomTap(l layout.Layout, e input.Event) (image.Point, bool) {
	pe, ok := e.(input.PointerEvent)
	if !ok || pe.Action != input.PointerDown {
		return image.Point{}, false
	}
	return l.ToBottom(pe.Pos)
}
