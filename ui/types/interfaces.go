// Package types provides shared interfaces used across UI packages.
// This package exists to avoid import cycles between screens and sub-packages.
package types

import (
	"image"
	"time"

	"github.com/user-none/duoscreen/input"
	"github.com/user-none/duoscreen/layout"
	"github.com/user-none/duoscreen/ui/style"
)

// Screen is implemented by every navigable view and by modal overlays.
type Screen interface {
	// HandleEvent offers a raw input event and reports whether it was consumed.
	HandleEvent(e input.Event) bool
	// Update advances the screen by dt.
	Update(dt time.Duration)
	// Render draws into both surfaces. The surfaces belong to the caller
	// and must not be retained past the call.
	Render(top, bottom *image.RGBA, theme style.Theme)
}

// Navigator provides navigation callbacks to screens
type Navigator interface {
	Push(s Screen)
	Pop() bool
	GoHome()
	Layout() layout.Layout
}

// VolumeControl is the audio collaborator of the quick menu and music screen.
// Volumes are percentages in [0,100].
type VolumeControl interface {
	Volume() int
	SetVolume(percent int)
}

// BrightnessControl is the backlight collaborator of the quick menu.
type BrightnessControl interface {
	Brightness() int
	SetBrightness(percent int)
}

// Notifier posts toast messages and app badges.
type Notifier interface {
	Show(message string, d time.Duration)
	SetBadge(appID string, count int)
	Badge(appID string) int
}
