package input

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manual scheduler. Advance runs due callbacks in deadline order.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock to now+d, firing every timer that comes due on the way
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()

	for {
		c.mu.Lock()
		var due []*fakeTimer
		for _, t := range c.timers {
			if !t.stopped && !t.fired && t.at <= target {
				due = append(due, t)
			}
		}
		if len(due) == 0 {
			c.now = target
			c.mu.Unlock()
			return
		}
		sort.Slice(due, func(i, j int) bool { return due[i].at < due[j].at })
		next := due[0]
		next.fired = true
		c.now = next.at
		c.mu.Unlock()
		next.f()
	}
}

func (c *fakeClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

type emission struct {
	value string
	at    time.Duration
}

func TestDebouncerEmitsOnlyLastValueOfBurst(t *testing.T) {
	clock := &fakeClock{}
	var got []emission
	d := NewDebouncer(500*time.Millisecond, func(v string) {
		got = append(got, emission{v, clock.Now()})
	}, clock.AfterFunc)

	d.Push("initial")
	require.Equal(t, []emission{{"initial", 0}}, got, "first value is immediate")

	d.Push("v1")
	clock.Advance(100 * time.Millisecond)
	d.Push("v2")
	clock.Advance(50 * time.Millisecond)
	d.Push("v3")

	clock.Advance(499 * time.Millisecond)
	assert.Len(t, got, 1, "nothing before the window elapses")

	clock.Advance(10 * time.Second)
	assert.Equal(t, []emission{{"initial", 0}, {"v3", 650 * time.Millisecond}}, got)
}

func TestDebouncerRestartsIndefinitely(t *testing.T) {
	clock := &fakeClock{}
	var got []string
	d := NewDebouncer(200*time.Millisecond, func(v string) { got = append(got, v) }, clock.AfterFunc)

	d.Push("a")
	d.Push("b")
	clock.Advance(time.Second)
	d.Push("c")
	clock.Advance(time.Second)

	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestDebouncerStopDiscardsPending(t *testing.T) {
	clock := &fakeClock{}
	var got []int
	d := NewDebouncer(100*time.Millisecond, func(v int) { got = append(got, v) }, clock.AfterFunc)

	d.Push(1)
	d.Push(2)
	d.Stop()
	clock.Advance(time.Second)
	d.Push(3)
	clock.Advance(time.Second)

	assert.Equal(t, []int{1}, got)
}

func TestDebouncerIgnoresStaleFire(t *testing.T) {
	clock := &fakeClock{}
	var got []string
	d := NewDebouncer(100*time.Millisecond, func(v string) { got = append(got, v) }, clock.AfterFunc)

	d.Push("first")
	d.Push("old")
	// A callback that already escaped Stop must not emit once superseded
	stale := clock.timers[len(clock.timers)-1].f
	d.Push("new")
	stale()
	clock.Advance(time.Second)

	assert.Equal(t, []string{"first", "new"}, got)
}

func TestDebouncerRealClock(t *testing.T) {
	out := make(chan string, 4)
	d := NewDebouncer(20*time.Millisecond, func(v string) { out <- v }, nil)
	defer d.Stop()

	d.Push("a")
	d.Push("b")
	d.Push("c")

	assert.Equal(t, "a", <-out)
	select {
	case v := <-out:
		assert.Equal(t, "c", v)
	case <-time.After(2 * time.Second):
		t.Fatal("debounced value never arrived")
	}
}

func TestTypingIndicator(t *testing.T) {
	clock := &fakeClock{}
	var changes []bool
	ti := NewTypingIndicator(500*time.Millisecond, func(typing bool) { changes = append(changes, typing) }, clock.AfterFunc)

	assert.False(t, ti.IsTyping(), "starts idle")

	ti.Signal()
	assert.True(t, ti.IsTyping())

	clock.Advance(400 * time.Millisecond)
	ti.Signal()
	clock.Advance(400 * time.Millisecond)
	assert.True(t, ti.IsTyping(), "each signal reschedules the reset")

	clock.Advance(100 * time.Millisecond)
	assert.False(t, ti.IsTyping())
	assert.Equal(t, []bool{true, false}, changes)

	ti.Signal()
	ti.Stop()
	assert.False(t, ti.IsTyping())
	clock.Advance(time.Second)
	assert.Equal(t, []bool{true, false, true}, changes)
}
