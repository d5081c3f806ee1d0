// Package system wires the canonical input state, the navigation stack and
// the notification service into one frame step. Both the window host and the
// headless framebuffer host drive a System.
package system

import (
	"context"
	"image"
	"log"
	"time"

	"github.com/spf13/afero"

	"github.com/user-none/duoscreen/input"
	"github.com/user-none/duoscreen/social"
	"github.com/user-none/duoscreen/ui/nav"
	"github.com/user-none/duoscreen/ui/notify"
	"github.com/user-none/duoscreen/ui/screens"
	"github.com/user-none/duoscreen/ui/storage"
	"github.com/user-none/duoscreen/ui/style"
	"github.com/user-none/duoscreen/ui/types"
	"github.com/user-none/duoscreen/ui/widgets"
)

// Options are the collaborators a System is built from. Only Config is
// required.
type Options struct {
	Config     *storage.Config
	Store      social.Store
	FS         afero.Fs
	Volume     types.VolumeControl
	Brightness types.BrightnessControl
	Icons      *style.IconSet
	Registry   *screens.Registry

	// SaveConfig persists the config after a setting changes. May be nil.
	SaveConfig func(*storage.Config) error

	Now func() time.Time
}

// System runs one frame at a time: events, update, render.
type System struct {
	config *storage.Config
	state  *input.State
	nav    *nav.Manager
	notify *notify.Notification
	env    *screens.Env
	save   func(*storage.Config) error

	homeRequested bool
	stopped       bool
}

// New creates a system showing the home screen.
func New(opts Options) *System {
	cfg := opts.Config
	registry := opts.Registry
	if registry == nil {
		registry = screens.DefaultRegistry()
	}

	s := &System{
		config: cfg,
		state:  input.NewState(cfg.Input.DeadZone, cfg.Input.Sensitivity),
		notify: notify.NewNotification(),
		save:   opts.SaveConfig,
	}
	levels := widgets.QuickSettings{
		Brightness: cfg.Display.Brightness,
		Volume:     cfg.Audio.Volume,
	}
	s.env = &screens.Env{
		Registry:     registry,
		Store:        opts.Store,
		UserID:       cfg.Network.UserID,
		Volume:       opts.Volume,
		Brightness:   opts.Brightness,
		Notify:       s.notify,
		Icons:        opts.Icons,
		Levels:       levels,
		FS:           opts.FS,
		MusicDir:     cfg.Paths.Music,
		MusicFormats: cfg.Audio.MusicFormats,
		OnTheme:      s.SetTheme,
		Now:          opts.Now,
	}

	theme, ok := style.ThemeByID(cfg.Theme.Name)
	if !ok {
		log.Printf("Warning: unknown theme %q, using default", cfg.Theme.Name)
		theme = style.DefaultTheme()
	}
	s.nav = nav.New(cfg.Layout(), screens.NewHomeFactory(s.env), theme)
	s.nav.SetTopOverlay(s.notify)

	s.refreshBadges()
	return s
}

// Nav returns the navigation stack.
func (s *System) Nav() *nav.Manager {
	return s.nav
}

// Input returns the canonical input state.
func (s *System) Input() *input.State {
	return s.state
}

// Notify returns the notification service.
func (s *System) Notify() *notify.Notification {
	return s.notify
}

// Env returns the collaborators handed to screens.
func (s *System) Env() *screens.Env {
	return s.env
}

// Stop ends the loop after the current frame.
func (s *System) Stop() {
	s.stopped = true
}

// Stopped reports whether POWER was pressed or Stop was called.
func (s *System) Stopped() bool {
	return s.stopped
}

// SetTheme switches to the theme with id and persists the choice.
func (s *System) SetTheme(id string) {
	theme, ok := style.ThemeByID(id)
	if !ok {
		log.Printf("Warning: unknown theme %q", id)
		return
	}
	s.nav.SetTheme(theme)
	s.config.Theme.Name = id
	if s.save != nil {
		if err := s.save(s.config); err != nil {
			log.Printf("Warning: failed to save config: %v", err)
		}
	}
}

// HandleEvent folds e into the input state and offers it to the active
// screen. System buttons act only on presses no screen consumed, so a modal
// capturing input also captures them.
func (s *System) HandleEvent(e input.Event) {
	s.state.Apply(e)
	if s.nav.HandleEvent(e) {
		return
	}

	switch {
	case input.IsPress(e, input.ButtonHome):
		s.homeRequested = true
	case input.IsPress(e, input.ButtonPower):
		log.Println("Power button pressed, shutting down")
		s.Stop()
	case input.IsPress(e, input.ButtonFriends):
		if _, ok := s.nav.Active().(*screens.Friends); !ok {
			s.env.Registry.Launch(s.env, screens.AppFriends)
		}
	}
}

// Step drains one frame's events in arrival order and advances time.
func (s *System) Step(events []input.Event, dt time.Duration) {
	for _, e := range events {
		s.HandleEvent(e)
	}
	if s.homeRequested {
		s.homeRequested = false
		s.nav.GoHome()
	}
	s.nav.Update(dt)
	s.notify.Update(dt)
}

// Render composites the frame and hands it to the presenter, if any.
func (s *System) Render() error {
	return s.nav.Render()
}

// Window returns the last composited frame.
func (s *System) Window() *image.RGBA {
	return s.nav.Window()
}

// Frame runs a full frame and reports whether the loop should continue.
func (s *System) Frame(events []input.Event, dt time.Duration) (bool, error) {
	s.Step(events, dt)
	if err := s.Render(); err != nil {
		return false, err
	}
	return !s.stopped, nil
}

// refreshBadges counts, per conversation, the messages received after the
// user's last reply and shows the total on the chat app.
func (s *System) refreshBadges() {
	store := s.env.Store
	if store == nil {
		return
	}
	ctx := context.Background()
	friends, err := store.Friends(ctx, s.env.UserID)
	if err != nil {
		log.Printf("failed to load friends: %v", err)
		return
	}

	unread := 0
	for _, f := range friends {
		msgs, err := store.Messages(ctx, s.env.UserID, f.ID)
		if err != nil {
			log.Printf("failed to load messages: %v", err)
			continue
		}
		for i := len(msgs) - 1; i >= 0 && msgs[i].Sender != s.env.UserID; i-- {
			unread++
		}
	}
	s.notify.SetBadge(screens.AppChat, unread)
}
