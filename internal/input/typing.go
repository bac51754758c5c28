package input

import (
	"sync"
	"time"
)

// TypingIndicator is a two-state machine: Idle, or Typing until the input has been
// quiet for delay. Each Signal cancels and reschedules the reset.
type TypingIndicator struct {
	delay    time.Duration
	after    AfterFunc
	onChange func(typing bool)

	mu     sync.Mutex
	typing bool
	timer  Timer
	seq    uint64
}

// NewTypingIndicator starts Idle. onChange (optional) is called on every state change.
func NewTypingIndicator(delay time.Duration, onChange func(bool), after AfterFunc) *TypingIndicator {
	if after == nil {
		after = RealClock
	}
	return &TypingIndicator{delay: delay, after: after, onChange: onChange}
}

// Signal records a keystroke
func (t *TypingIndicator) Signal() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
	}
	t.seq++
	seq := t.seq
	t.timer = t.after(t.delay, func() { t.reset(seq) })
	changed := !t.typing
	t.typing = true
	t.mu.Unlock()

	if changed {
		t.notify(true)
	}
}

func (t *TypingIndicator) reset(seq uint64) {
	t.mu.Lock()
	if seq != t.seq || !t.typing {
		t.mu.Unlock()
		return
	}
	t.typing = false
	t.timer = nil
	t.mu.Unlock()
	t.notify(false)
}

// IsTyping reports the current state
func (t *TypingIndicator) IsTyping() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.typing
}

// Stop cancels the pending reset and returns to Idle without notifying
func (t *TypingIndicator) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	t.typing = false
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *TypingIndicator) notify(typing bool) {
	if t.onChange != nil {
		t.onChange(typing)
	}
}
