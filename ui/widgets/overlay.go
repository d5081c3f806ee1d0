// Package widgets provides the modal overlays that screens place in front of
// their own content: the on-screen keyboard and the quick settings menu.
package widgets

// Overlay is the Hidden/Visible state machine shared by every modal. While
// visible the owning screen routes all input to the modal. Dismiss hides the
// modal and then reports the held value exactly once.
type Overlay[T any] struct {
	visible    bool
	value      T
	onComplete func(T)
}

// Show makes the overlay visible with an initial value. Calling Show on a
// visible overlay restarts it; the previous callback is dropped unreported.
func (o *Overlay[T]) Show(initial T, onComplete func(T)) {
	o.visible = true
	o.value = initial
	o.onComplete = onComplete
}

// Visible reports whether the overlay is capturing input.
func (o *Overlay[T]) Visible() bool {
	return o.visible
}

// Value returns the current editable value.
func (o *Overlay[T]) Value() T {
	return o.value
}

// Dismiss hides the overlay and invokes the completion callback with the
// current value. No-op when already hidden.
func (o *Overlay[T]) Dismiss() {
	if !o.visible {
		return
	}
	o.visible = false
	cb := o.onComplete
	o.onComplete = nil
	if cb != nil {
		cb(o.value)
	}
}
