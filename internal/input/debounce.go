// Package input holds the timing primitives that sit between keystrokes and searches.
package input

import (
	"sync"
	"time"
)

// Timer is the part of *time.Timer the primitives need
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it once wrapped by RealClock.
type AfterFunc func(d time.Duration, f func()) Timer

// RealClock schedules with the runtime timer
func RealClock(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Debouncer delays values until the input has been quiet for the window.
// The first value is emitted immediately; after that only the last value of a burst is.
type Debouncer[T any] struct {
	window time.Duration
	emit   func(T)
	after  AfterFunc

	mu      sync.Mutex
	started bool
	stopped bool
	timer   Timer
	seq     uint64
}

// NewDebouncer returns a debouncer that calls emit. A nil after uses RealClock.
func NewDebouncer[T any](window time.Duration, emit func(T), after AfterFunc) *Debouncer[T] {
	if after == nil {
		after = RealClock
	}
	return &Debouncer[T]{window: window, emit: emit, after: after}
}

// Push records v as the latest value and restarts the quiet window
func (d *Debouncer[T]) Push(v T) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}

	if !d.started {
		d.started = true
		d.mu.Unlock()
		d.emit(v)
		return
	}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.timer = d.after(d.window, func() { d.fire(seq, v) })
	d.mu.Unlock()
}

// fire emits v unless a newer Push or Stop happened since it was scheduled.
// Timer.Stop can lose the race with an already-firing timer, so the sequence is the guard.
func (d *Debouncer[T]) fire(seq uint64, v T) {
	d.mu.Lock()
	if d.stopped || seq != d.seq {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()
	d.emit(v)
}

// Stop discards any pending value. Later Pushes are ignored.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
