package pacing

import (
	"sync"
	"time"
)

// ManualClock fires timers only when Release is called. It records every
// requested duration, which makes step-by-step animations reproducible.
type ManualClock struct {
	mu        sync.Mutex
	pending   []timer
	requested []time.Duration
	now       time.Time
}

type timer struct {
	ch chan time.Time
	d  time.Duration
}

func NewManualClock() *ManualClock {
	return &ManualClock{now: time.Unix(0, 0)}
}

func (c *ManualClock) After(d time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	c.mu.Lock()
	c.pending = append(c.pending, timer{ch: ch, d: d})
	c.requested = append(c.requested, d)
	c.mu.Unlock()
	return ch
}

// Pending is the number of timers waiting to fire.
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Release fires the oldest pending timer. It reports false when none is waiting.
func (c *ManualClock) Release() bool {
	c.mu.Lock()
	if len(c.pending) == 0 {
		c.mu.Unlock()
		return false
	}
	t := c.pending[0]
	c.pending = c.pending[1:]
	c.now = c.now.Add(t.d)
	now := c.now
	c.mu.Unlock()
	t.ch <- now
	return true
}

// Requested returns every duration passed to After, in call order.
func (c *ManualClock) Requested() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]time.Duration, len(c.requested))
	copy(out, c.requested)
	return out
}
