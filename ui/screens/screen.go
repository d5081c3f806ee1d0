// Package screens contains the home screen and the app screens launched from
// it. Each screen draws into the two surfaces handed to it by the navigation
// stack and navigates through the Navigator in its Env.
package screens

import (
	"time"

	"github.com/spf13/afero"

	"github.com/user-none/duoscreen/layout"
	"github.com/user-none/duoscreen/social"
	"github.com/user-none/duoscreen/ui/notify"
	"github.com/user-none/duoscreen/ui/style"
	"github.com/user-none/duoscreen/ui/types"
	"github.com/user-none/duoscreen/ui/widgets"
)

// Env carries the collaborators every screen is built with.
type Env struct {
	Nav        types.Navigator
	Registry   *Registry
	Store      social.Store
	UserID     string
	Volume     types.VolumeControl
	Brightness types.BrightnessControl
	Notify     *notify.Notification
	Icons      *style.IconSet

	// Levels seeds the quick menu sliders that have no collaborator.
	Levels widgets.QuickSettings

	// Music library location
	FS           afero.Fs
	MusicDir     string
	MusicFormats []string

	Bookmarks []string

	// OnTheme is called when the user picks a theme in settings. May be nil.
	OnTheme func(id string)

	// Now is the wall clock; tests pin it.
	Now func() time.Time
}

// Layout returns the fixed surface geometry.
func (e *Env) Layout() layout.Layout {
	return e.Nav.Layout()
}

func (e *Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e *Env) toast(message string) {
	if e.Notify != nil {
		e.Notify.ShowDefault(message)
	}
}

// DefaultBookmarks are the browser's built-in bookmarks.
var DefaultBookmarks = []string{
	"https://www.google.com",
	"https://www.github.com",
	"https://www.raspberrypi.com",
}
