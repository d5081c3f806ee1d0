package frame

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/user-none/duoscreen/input"
)

type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

// scriptRunner spends work per frame on the fake clock and stops after
// frames frames.
type scriptRunner struct {
	clock  *fakeClock
	work   []time.Duration
	frames int
	err    error
	onRun  func(n int)

	dts    []time.Duration
	events [][]input.Event
}

func (r *scriptRunner) Frame(events []input.Event, dt time.Duration) (bool, error) {
	n := len(r.dts)
	r.dts = append(r.dts, dt)
	r.events = append(r.events, append([]input.Event(nil), events...))
	if r.onRun != nil {
		r.onRun(n)
	}
	if n < len(r.work) {
		r.clock.now = r.clock.now.Add(r.work[n])
	}
	if r.err != nil {
		return false, r.err
	}
	return n+1 < r.frames, nil
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func TestLoopPacing(t *testing.T) {
	const budget = 16 * time.Millisecond
	clock := newFakeClock()
	r := &scriptRunner{
		clock:  clock,
		work:   []time.Duration{4 * time.Millisecond, 20 * time.Millisecond, 10 * time.Millisecond, time.Millisecond},
		frames: 4,
	}
	l := NewLoop(NewQueue(8), r, budget)
	l.SetClock(clock)

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	wantDts := []time.Duration{0, 16 * time.Millisecond, 20 * time.Millisecond, 16 * time.Millisecond}
	if len(r.dts) != len(wantDts) {
		t.Fatalf("ran %d frames, want %d", len(r.dts), len(wantDts))
	}
	for i, want := range wantDts {
		if r.dts[i] != want {
			t.Errorf("frame %d dt = %v, want %v", i, r.dts[i], want)
		}
	}

	// The slow second frame gets no sleep and is not made up for.
	wantSleeps := []time.Duration{12 * time.Millisecond, 6 * time.Millisecond}
	if len(clock.sleeps) != len(wantSleeps) {
		t.Fatalf("sleeps = %v, want %v", clock.sleeps, wantSleeps)
	}
	for i, want := range wantSleeps {
		if clock.sleeps[i] != want {
			t.Errorf("sleep %d = %v, want %v", i, clock.sleeps[i], want)
		}
	}
}

func TestLoopDrainsInOrder(t *testing.T) {
	clock := newFakeClock()
	q := NewQueue(8)
	first := []input.Event{
		input.KeyDown("A"),
		input.ButtonEvent{Button: input.PadB, Pressed: true},
		input.KeyUp("A"),
	}
	for _, e := range first {
		if !q.Push(e) {
			t.Fatal("push failed")
		}
	}

	r := &scriptRunner{clock: clock, frames: 3}
	r.onRun = func(n int) {
		if n == 1 {
			q.Push(input.KeyDown("Enter"))
		}
	}
	l := NewLoop(q, r, time.Millisecond)
	l.SetClock(clock)
	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(r.events[0]) != len(first) {
		t.Fatalf("frame 0 got %d events, want %d", len(r.events[0]), len(first))
	}
	for i, e := range first {
		if r.events[0][i] != e {
			t.Errorf("event %d = %#v, want %#v", i, r.events[0][i], e)
		}
	}
	if len(r.events[1]) != 0 {
		t.Errorf("frame 1 got %d events, want 0", len(r.events[1]))
	}
	if len(r.events[2]) != 1 || r.events[2][0] != input.KeyDown("Enter") {
		t.Errorf("frame 2 events = %#v", r.events[2])
	}
}

func TestLoopFrameError(t *testing.T) {
	clock := newFakeClock()
	boom := errors.New("boom")
	r := &scriptRunner{clock: clock, frames: 10, err: boom}
	l := NewLoop(NewQueue(1), r, time.Millisecond)
	l.SetClock(clock)

	if err := l.Run(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Run = %v, want wrapped boom", err)
	}
	if len(r.dts) != 1 {
		t.Errorf("ran %d frames after an error", len(r.dts))
	}
}

func TestLoopContextCancel(t *testing.T) {
	clock := newFakeClock()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r := &scriptRunner{clock: clock, frames: 100}
	r.onRun = func(n int) {
		if n == 2 {
			cancel()
		}
	}
	l := NewLoop(NewQueue(1), r, time.Millisecond)
	l.SetClock(clock)

	if err := l.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(r.dts) != 3 {
		t.Errorf("ran %d frames, want 3", len(r.dts))
	}
}

func TestQueueClose(t *testing.T) {
	q := NewQueue(1)
	if !q.Push(input.KeyDown("A")) {
		t.Fatal("first push failed")
	}

	blocked := make(chan bool)
	go func() {
		blocked <- q.Push(input.KeyDown("S"))
	}()

	q.Close()
	select {
	case ok := <-blocked:
		if ok {
			t.Error("push into a full closed queue reported success")
		}
	case <-time.After(time.Second):
		t.Fatal("Close did not unblock a pending push")
	}

	if q.Push(input.KeyDown("D")) {
		t.Error("push after Close succeeded")
	}
	q.Close()

	if got := q.Drain(nil); len(got) != 1 {
		t.Errorf("drained %d events, want the one buffered before Close", len(got))
	}
}
