package system

import (
	"errors"
	"testing"
	"time"

	"github.com/user-none/duoscreen/input"
	"github.com/user-none/duoscreen/social"
	"github.com/user-none/duoscreen/ui/screens"
	"github.com/user-none/duoscreen/ui/storage"
)

const frame = 16 * time.Millisecond

func newTestSystem(t *testing.T) *System {
	t.Helper()
	cfg := storage.DefaultConfig()
	cfg.Network.UserID = "me"
	return New(Options{
		Config: cfg,
		Store:  social.NewDemoStore("me"),
	})
}

func run(t *testing.T, s *System, events ...input.Event) bool {
	t.Helper()
	cont, err := s.Frame(events, frame)
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	return cont
}

func TestPowerStopsLoop(t *testing.T) {
	s := newTestSystem(t)
	if !run(t, s) {
		t.Fatal("idle frame asked to stop")
	}
	if run(t, s, input.KeyDown("P")) {
		t.Error("POWER did not stop the loop")
	}
	if !s.Stopped() {
		t.Error("Stopped() = false after POWER")
	}
}

func TestHomeButtonResetsStack(t *testing.T) {
	s := newTestSystem(t)
	root := s.Nav().Active()

	run(t, s, input.KeyDown("Enter"))
	run(t, s, input.KeyDown("ArrowDown"), input.KeyDown("Enter"))
	if s.Nav().Depth() != 1 {
		t.Fatalf("depth = %d after launching settings", s.Nav().Depth())
	}

	run(t, s, input.ButtonEvent{Button: input.PadHome, Pressed: true})
	if s.Nav().Depth() != 0 {
		t.Errorf("depth = %d after HOME", s.Nav().Depth())
	}
	home, ok := s.Nav().Active().(*screens.Home)
	if !ok {
		t.Fatalf("active = %T after HOME", s.Nav().Active())
	}
	if home == root {
		t.Error("HOME reused the old root instead of building a fresh one")
	}
	if !s.Input().Pressed(input.ButtonHome) {
		t.Error("input state missed the HOME press")
	}
}

func TestFriendsButton(t *testing.T) {
	s := newTestSystem(t)

	run(t, s, input.KeyDown("F"))
	if _, ok := s.Nav().Active().(*screens.Friends); !ok {
		t.Fatalf("active = %T after FRIENDS", s.Nav().Active())
	}
	run(t, s, input.KeyUp("F"), input.KeyDown("F"))
	if s.Nav().Depth() != 1 {
		t.Errorf("FRIENDS on the friends screen pushed again, depth=%d", s.Nav().Depth())
	}
}

func TestModalCapturesSystemButtons(t *testing.T) {
	s := newTestSystem(t)
	if !s.Env().Registry.Launch(s.Env(), screens.AppChat) {
		t.Fatal("chat not registered")
	}
	chat := s.Nav().Active().(*screens.Chat)

	run(t, s, input.KeyDown("Enter"))
	if !chat.Keyboard().Visible() {
		t.Fatal("keyboard did not open")
	}

	cont := run(t, s, input.KeyDown("P"), input.KeyDown("F"))
	if !cont || s.Stopped() {
		t.Error("typing p stopped the system")
	}
	if s.Nav().Active() != chat {
		t.Errorf("typing f navigated away to %T", s.Nav().Active())
	}
	if chat.Keyboard().Text() != "pf" {
		t.Errorf("keyboard text %q, want pf", chat.Keyboard().Text())
	}
}

func TestQuickMenuSeededFromConfig(t *testing.T) {
	cfg := storage.DefaultConfig()
	cfg.Display.Brightness = 40
	cfg.Audio.Volume = 25
	s := New(Options{Config: cfg, Store: social.NewDemoStore("me")})

	home, ok := s.Nav().Active().(*screens.Home)
	if !ok {
		t.Fatalf("active = %T, want *screens.Home", s.Nav().Active())
	}
	home.QuickMenu().Toggle()
	got := home.QuickMenu().Value()
	if got.Brightness != 40 || got.Volume != 25 {
		t.Errorf("quick menu = %+v, want brightness 40 volume 25", got)
	}
}

func TestSetTheme(t *testing.T) {
	cfg := storage.DefaultConfig()
	var saved []string
	s := New(Options{
		Config: cfg,
		SaveConfig: func(c *storage.Config) error {
			saved = append(saved, c.Theme.Name)
			return nil
		},
	})

	s.SetTheme("forest")
	if s.Nav().Theme().ID != "forest" || cfg.Theme.Name != "forest" {
		t.Errorf("theme = %s, config = %s", s.Nav().Theme().ID, cfg.Theme.Name)
	}
	if len(saved) != 1 || saved[0] != "forest" {
		t.Errorf("saved %q", saved)
	}

	s.SetTheme("plaid")
	if s.Nav().Theme().ID != "forest" || len(saved) != 1 {
		t.Error("unknown theme was applied")
	}
}

func TestSetThemeSaveError(t *testing.T) {
	s := New(Options{
		Config:     storage.DefaultConfig(),
		SaveConfig: func(*storage.Config) error { return errors.New("read-only") },
	})
	s.SetTheme("dark")
	if s.Nav().Theme().ID != "dark" {
		t.Error("save failure should not undo the theme")
	}
}

func TestUnknownConfiguredTheme(t *testing.T) {
	cfg := storage.DefaultConfig()
	cfg.Theme.Name = "neon"
	s := New(Options{Config: cfg})
	if s.Nav().Theme().ID != "default" {
		t.Errorf("theme = %s, want default", s.Nav().Theme().ID)
	}
}

func TestChatBadge(t *testing.T) {
	s := newTestSystem(t)
	if got := s.Notify().Badge(screens.AppChat); got != 1 {
		t.Errorf("chat badge = %d, want 1", got)
	}
}

func TestToastDrawnOverTop(t *testing.T) {
	s := newTestSystem(t)
	run(t, s)
	l := s.Nav().Layout()
	x, y := l.TopWidth-12, l.TopHeight-12
	before := s.Window().RGBAAt(x, y)

	s.Notify().ShowDefault("Hello")
	run(t, s)
	after := s.Window().RGBAAt(x, y)
	if after.R >= before.R {
		t.Errorf("toast corner %v not darker than %v", after, before)
	}

	run(t, s)
	s.Step(nil, 5*time.Second)
	if s.Notify().IsVisible() {
		t.Error("toast outlived its duration")
	}
}
