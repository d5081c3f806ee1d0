package ui

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/afero"

	"github.com/user-none/duoscreen/frame"
	"github.com/user-none/duoscreen/input"
	"github.com/user-none/duoscreen/social"
	"github.com/user-none/duoscreen/ui/screens"
	"github.com/user-none/duoscreen/ui/storage"
	"github.com/user-none/duoscreen/ui/system"
)

type stepClock struct {
	t time.Time
}

func (c *stepClock) now() time.Time {
	c.t = c.t.Add(16 * time.Millisecond)
	return c.t
}

func newTestApp(t *testing.T, opts AppOptions) (*App, *system.System) {
	t.Helper()
	cfg := storage.DefaultConfig()
	cfg.Network.UserID = "me"
	sys := system.New(system.Options{
		Config: cfg,
		Store:  social.NewDemoStore("me"),
	})
	if opts.Now == nil {
		clock := &stepClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
		opts.Now = clock.now
	}
	return NewApp(sys, opts), sys
}

func TestAppLayoutIsWindowSize(t *testing.T) {
	app, _ := newTestApp(t, AppOptions{})
	w, h := app.Layout(1920, 1080)
	if w != 800 || h != 740 {
		t.Errorf("Layout = %dx%d, want 800x740", w, h)
	}
}

func TestAppStepDrainsQueueAfterWindowInput(t *testing.T) {
	q := frame.NewQueue(4)
	app, sys := newTestApp(t, AppOptions{Queue: q})

	// Window selects the second app, the hardware queue confirms it.
	q.Push(input.ButtonEvent{Button: input.PadA, Pressed: true})
	if err := app.step([]input.Event{input.KeyDown("ArrowRight")}); err != nil {
		t.Fatalf("step: %v", err)
	}

	if sys.Nav().Depth() != 1 {
		t.Fatalf("depth = %d, want the launched app on the stack", sys.Nav().Depth())
	}
	if _, ok := sys.Nav().Active().(*screens.Music); !ok {
		t.Errorf("active = %T, want *screens.Music", sys.Nav().Active())
	}
	if got := q.Drain(nil); len(got) != 0 {
		t.Errorf("queue still holds %d events", len(got))
	}
}

func TestAppStepTerminatesOnPower(t *testing.T) {
	app, _ := newTestApp(t, AppOptions{})
	if err := app.step(nil); err != nil {
		t.Fatalf("idle step: %v", err)
	}
	err := app.step([]input.Event{input.KeyDown("P")})
	if !errors.Is(err, ebiten.Termination) {
		t.Errorf("step = %v, want ebiten.Termination", err)
	}
}

func TestScreenshot(t *testing.T) {
	fs := afero.NewMemMapFs()
	app, sys := newTestApp(t, AppOptions{FS: fs, ScreenshotDir: "/shots"})

	if err := app.step([]input.Event{input.KeyDown("F12")}); err != nil {
		t.Fatalf("step: %v", err)
	}
	if !app.screenshotPending {
		t.Fatal("F12 did not request a screenshot")
	}
	if err := sys.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if err := app.takeScreenshot(); err != nil {
		t.Fatalf("takeScreenshot: %v", err)
	}

	entries, err := afero.ReadDir(fs, "/shots")
	if err != nil || len(entries) != 1 {
		t.Fatalf("screenshot dir: %v, %d entries", err, len(entries))
	}
	data, err := afero.ReadFile(fs, "/shots/"+entries[0].Name())
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 800 || img.Bounds().Dy() != 740 {
		t.Errorf("screenshot bounds = %v", img.Bounds())
	}
	if sys.Notify().Message() != "Screenshot saved" {
		t.Errorf("toast = %q", sys.Notify().Message())
	}
}

func TestScreenshotDisabled(t *testing.T) {
	app, _ := newTestApp(t, AppOptions{})
	if err := app.takeScreenshot(); !errors.Is(err, errScreenshotsDisabled) {
		t.Errorf("err = %v, want errScreenshotsDisabled", err)
	}
}

func TestPointerTracker(t *testing.T) {
	var tr pointerTracker
	p := image.Pt(10, 10)
	q := image.Pt(20, 15)

	steps := []struct {
		down bool
		pos  image.Point
		want []input.PointerEvent
	}{
		{false, p, nil},
		{false, p, nil},
		{true, p, []input.PointerEvent{{Action: input.PointerDown, Pos: p, Held: true}}},
		{true, q, []input.PointerEvent{{Action: input.PointerMove, Pos: q, Held: true}}},
		{true, q, nil},
		{false, q, []input.PointerEvent{{Action: input.PointerUp, Pos: q}}},
		{false, p, []input.PointerEvent{{Action: input.PointerMove, Pos: p}}},
	}
	for i, s := range steps {
		got := tr.update(nil, s.down, s.pos)
		if len(got) != len(s.want) {
			t.Fatalf("step %d: got %v, want %v", i, got, s.want)
		}
		for j := range got {
			if got[j] != s.want[j] {
				t.Errorf("step %d: event %#v, want %#v", i, got[j], s.want[j])
			}
		}
	}
}

func TestAxisTracker(t *testing.T) {
	var tr axisTracker
	tests := []struct {
		axis input.Axis
		v    float64
		emit bool
	}{
		{input.LeftX, 0, false},
		{input.LeftX, 0.005, false},
		{input.LeftX, 0.5, true},
		{input.LeftX, 0.505, false},
		{input.LeftY, -1, true},
		{input.LeftX, 0, true},
	}
	for i, tt := range tests {
		got := tr.update(nil, tt.axis, tt.v)
		if (len(got) == 1) != tt.emit {
			t.Errorf("step %d: events %v, want emit=%v", i, got, tt.emit)
		}
	}
}

func TestPadButtonsCovered(t *testing.T) {
	seen := make(map[int]bool)
	for _, b := range padButtons {
		if _, ok := input.PadButton(b.pad); !ok {
			t.Errorf("standard button %d maps to unknown pad %d", b.std, b.pad)
		}
		if seen[b.pad] {
			t.Errorf("pad %d mapped twice", b.pad)
		}
		seen[b.pad] = true
	}
}
