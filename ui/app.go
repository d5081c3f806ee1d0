// Package ui hosts the dual-screen system in an ebiten window: it polls
// keyboard, gamepad, mouse and touch input, steps the system once per tick
// and shows the composited window.
package ui

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/afero"

	"github.com/user-none/duoscreen/frame"
	"github.com/user-none/duoscreen/input"
	"github.com/user-none/duoscreen/ui/sound"
	"github.com/user-none/duoscreen/ui/system"
)

// AppOptions are the optional collaborators of an App.
type AppOptions struct {
	// Queue carries events from hardware drivers running on their own
	// goroutines. It is drained after the window's own input each tick.
	Queue *frame.Queue

	Mixer *sound.Mixer

	// FS and ScreenshotDir enable F12 screenshots.
	FS            afero.Fs
	ScreenshotDir string

	Now func() time.Time
}

// App is the main application struct that implements ebiten.Game
type App struct {
	sys    *system.System
	source *EventSource
	queue  *frame.Queue
	mixer  *sound.Mixer

	fs            afero.Fs
	screenshotDir string

	now     func() time.Time
	last    time.Time
	pending []input.Event

	// Screenshot pending flag (set in Update, processed in Draw)
	screenshotPending bool

	// Draw cannot fail, so a render error ends the game on the next Update.
	renderErr error

	width, height int
}

// NewApp creates a window host for sys.
func NewApp(sys *system.System, opts AppOptions) *App {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	w, h := sys.Nav().Layout().WindowSize()
	return &App{
		sys:           sys,
		source:        NewEventSource(),
		queue:         opts.Queue,
		mixer:         opts.Mixer,
		fs:            opts.FS,
		screenshotDir: opts.ScreenshotDir,
		now:           now,
		width:         w,
		height:        h,
	}
}

// Update polls input and advances the system by one tick.
func (a *App) Update() error {
	if a.renderErr != nil {
		return a.renderErr
	}
	return a.step(a.source.Poll())
}

// step runs one tick with the window's events. The first tick has a zero
// delta.
func (a *App) step(polled []input.Event) error {
	now := a.now()
	var dt time.Duration
	if !a.last.IsZero() {
		dt = now.Sub(a.last)
	}
	a.last = now

	a.pending = append(a.pending[:0], polled...)
	if a.queue != nil {
		a.pending = a.queue.Drain(a.pending)
	}
	for _, e := range a.pending {
		a.observe(e)
	}

	a.sys.Step(a.pending, dt)
	if a.sys.Stopped() {
		return ebiten.Termination
	}
	return nil
}

// observe handles the host-level side effects of an event: the UI click
// and the screenshot key.
func (a *App) observe(e input.Event) {
	switch ev := e.(type) {
	case input.KeyEvent:
		if ev.Pressed && ev.Key == "F12" {
			a.screenshotPending = true
		}
	case input.PointerEvent:
		if ev.Action == input.PointerDown && a.mixer != nil {
			a.mixer.Click()
		}
		return
	}
	if input.IsConfirm(e) && a.mixer != nil {
		a.mixer.Click()
	}
}

// Draw renders the system and copies the window to the screen.
func (a *App) Draw(screen *ebiten.Image) {
	if err := a.sys.Render(); err != nil {
		a.renderErr = fmt.Errorf("render: %w", err)
		return
	}
	window := a.sys.Window()
	screen.WritePixels(window.Pix)

	// Take screenshot if pending (after everything is drawn)
	if a.screenshotPending {
		a.screenshotPending = false
		if err := a.takeScreenshot(); err != nil {
			log.Printf("Screenshot failed: %v", err)
		}
	}
}

// Layout keeps the logical screen at the window size; ebiten scales it to
// the real window.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.width, a.height
}

// Close releases audio resources.
func (a *App) Close() {
	if a.mixer != nil {
		a.mixer.Close()
	}
}
