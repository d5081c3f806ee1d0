// Package nav owns the two render surfaces, the composited window and the
// stack of screens the user has navigated through.
package nav

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"golang.org/x/image/draw"

	"github.com/user-none/duoscreen/input"
	"github.com/user-none/duoscreen/layout"
	"github.com/user-none/duoscreen/ui/style"
	"github.com/user-none/duoscreen/ui/types"
)

// HomeFactory builds a fresh root screen bound to the manager.
type HomeFactory func(nav types.Navigator) types.Screen

// Presenter receives the composited window once per frame. Implementations
// must copy what they need; the image is reused on the next frame.
type Presenter interface {
	Present(window *image.RGBA) error
}

// TopOverlay draws over the top surface after the active screen, for
// system-wide elements such as toasts.
type TopOverlay interface {
	Draw(top *image.RGBA)
}

// Manager is the navigation stack. It is not safe for concurrent use; every
// method is called from the frame loop.
type Manager struct {
	layout    layout.Layout
	top       *image.RGBA
	bottom    *image.RGBA
	window    *image.RGBA
	presenter Presenter
	overlay   TopOverlay

	newHome   HomeFactory
	active    types.Screen
	suspended []types.Screen

	theme      style.Theme
	background color.Color
}

// New creates a manager with Home installed as the active screen.
func New(l layout.Layout, newHome HomeFactory, theme style.Theme) *Manager {
	m := &Manager{
		layout:     l,
		top:        image.NewRGBA(image.Rectangle{Max: l.TopSize()}),
		bottom:     image.NewRGBA(image.Rectangle{Max: l.BottomSize()}),
		window:     image.NewRGBA(l.WindowRect()),
		newHome:    newHome,
		theme:      theme,
		background: theme.Black,
	}
	m.active = newHome(m)
	return m
}

// SetPresenter sets where composited frames are sent. A nil presenter
// leaves frames in Window for the host to pick up.
func (m *Manager) SetPresenter(p Presenter) {
	m.presenter = p
}

// SetTopOverlay sets what is drawn over every screen's top surface. May be
// nil.
func (m *Manager) SetTopOverlay(o TopOverlay) {
	m.overlay = o
}

// SetTheme replaces the theme snapshot handed to screens from the next frame.
func (m *Manager) SetTheme(t style.Theme) {
	m.theme = t
	m.background = t.Black
}

// Theme returns the current theme snapshot.
func (m *Manager) Theme() style.Theme {
	return m.theme
}

// Layout returns the fixed surface geometry.
func (m *Manager) Layout() layout.Layout {
	return m.layout
}

// Push suspends the active screen and makes s active.
func (m *Manager) Push(s types.Screen) {
	m.suspended = append(m.suspended, m.active)
	m.active = s
}

// Pop discards the active screen and resumes the most recently suspended
// one. Returns false, leaving state untouched, when nothing is suspended.
func (m *Manager) Pop() bool {
	n := len(m.suspended)
	if n == 0 {
		return false
	}
	m.active = m.suspended[n-1]
	m.suspended[n-1] = nil
	m.suspended = m.suspended[:n-1]
	return true
}

// GoHome drops every screen and installs a freshly built Home.
func (m *Manager) GoHome() {
	for i := range m.suspended {
		m.suspended[i] = nil
	}
	m.suspended = m.suspended[:0]
	m.active = m.newHome(m)
}

// Active returns the screen receiving input.
func (m *Manager) Active() types.Screen {
	return m.active
}

// Depth returns the number of suspended screens.
func (m *Manager) Depth() int {
	return len(m.suspended)
}

// HandleEvent routes e to the active screen.
func (m *Manager) HandleEvent(e input.Event) bool {
	return m.active.HandleEvent(e)
}

// Update advances the active screen.
func (m *Manager) Update(dt time.Duration) {
	m.active.Update(dt)
}

// Render asks the active screen to draw both surfaces, composites them into
// the window and presents it.
func (m *Manager) Render() error {
	style.Fill(m.window, m.background)

	m.active.Render(m.top, m.bottom, m.theme)
	if m.overlay != nil {
		m.overlay.Draw(m.top)
	}

	draw.Draw(m.window, m.layout.TopRect(), m.top, image.Point{}, draw.Src)
	draw.Draw(m.window, m.layout.BottomRect(), m.bottom, image.Point{}, draw.Src)
	style.FillRect(m.window, m.layout.GapRect(), m.theme.Dark)

	if m.presenter == nil {
		return nil
	}
	if err := m.presenter.Present(m.window); err != nil {
		return fmt.Errorf("present frame: %w", err)
	}
	return nil
}

// Window returns the composited window from the last Render.
func (m *Manager) Window() *image.RGBA {
	return m.window
}

// Surfaces returns the top and bottom surfaces.
func (m *Manager) Surfaces() (top, bottom *image.RGBA) {
	return m.top, m.bottom
}
