// Package frame runs the single-threaded frame loop used when there is no
// window system to pace frames: drain input, update, render, then sleep out
// the rest of the frame budget.
package frame

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/user-none/duoscreen/input"
)

// DefaultQueueSize is the event buffer hardware drivers write into.
const DefaultQueueSize = 256

// Queue carries raw events from driver goroutines to the loop. Push blocks
// while the buffer is full so no release event is ever dropped.
type Queue struct {
	ch   chan input.Event
	done chan struct{}
	once sync.Once
}

// NewQueue creates a queue buffering up to size events.
func NewQueue(size int) *Queue {
	if size < 1 {
		size = DefaultQueueSize
	}
	return &Queue{
		ch:   make(chan input.Event, size),
		done: make(chan struct{}),
	}
}

// Push enqueues e. It returns false once the queue is closed.
func (q *Queue) Push(e input.Event) bool {
	select {
	case <-q.done:
		return false
	default:
	}
	select {
	case q.ch <- e:
		return true
	case <-q.done:
		return false
	}
}

// Drain appends every pending event to dst in arrival order without
// blocking.
func (q *Queue) Drain(dst []input.Event) []input.Event {
	for {
		select {
		case e := <-q.ch:
			dst = append(dst, e)
		default:
			return dst
		}
	}
}

// Close unblocks pending and future pushes.
func (q *Queue) Close() {
	q.once.Do(func() { close(q.done) })
}

// Clock is the time source the loop paces itself with.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type wallClock struct{}

func (wallClock) Now() time.Time        { return time.Now() }
func (wallClock) Sleep(d time.Duration) { time.Sleep(d) }

// Runner executes one frame. It returns false to stop the loop.
type Runner interface {
	Frame(events []input.Event, dt time.Duration) (bool, error)
}

// Loop drives a Runner at a fixed rate.
type Loop struct {
	queue  *Queue
	runner Runner
	budget time.Duration
	clock  Clock
}

// NewLoop creates a loop giving each frame budget time.
func NewLoop(queue *Queue, runner Runner, budget time.Duration) *Loop {
	return &Loop{
		queue:  queue,
		runner: runner,
		budget: budget,
		clock:  wallClock{},
	}
}

// SetClock replaces the wall clock.
func (l *Loop) SetClock(c Clock) {
	l.clock = c
}

// Run executes frames until the runner stops, a frame fails or ctx is
// cancelled. A slow frame is not made up for: the next frame starts at once
// and dt carries the real elapsed time.
func (l *Loop) Run(ctx context.Context) error {
	var events []input.Event
	last := l.clock.Now()

	for {
		if ctx.Err() != nil {
			return nil
		}

		start := l.clock.Now()
		dt := start.Sub(last)
		last = start

		events = l.queue.Drain(events[:0])
		cont, err := l.runner.Frame(events, dt)
		if err != nil {
			return fmt.Errorf("run frame: %w", err)
		}
		if !cont {
			return nil
		}

		if elapsed := l.clock.Now().Sub(start); elapsed < l.budget {
			l.clock.Sleep(l.budget - elapsed)
		}
	}
}
