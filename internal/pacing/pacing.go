// Package pacing turns the speed setting into step delays and provides the
// single paced suspension point of an animation.
package pacing

import (
	"context"
	"errors"
	"time"

	"github.com/san-kum/sortviz/internal/session"
)

var (
	ErrNegativeDuration = errors.New("pacing: negative duration")
	ErrNegativeStep     = errors.New("pacing: negative step makes delay increase with speed")
)

// Curve maps a speed to a delay: Base - speed*Step, never below Floor.
type Curve struct {
	Base  time.Duration
	Step  time.Duration
	Floor time.Duration
}

// DefaultCurve matches the browser tool: 1982ms at speed 1, 200ms at 100.
var DefaultCurve = Curve{
	Base:  2000 * time.Millisecond,
	Step:  18 * time.Millisecond,
	Floor: 5 * time.Millisecond,
}

// Instant never waits. Used by headless comparisons and tests.
var Instant = Curve{}

// Validate rejects curves that could return negative delays or grow with speed.
func (c Curve) Validate() error {
	if c.Base < 0 || c.Floor < 0 {
		return ErrNegativeDuration
	}
	if c.Step < 0 {
		return ErrNegativeStep
	}
	return nil
}

// Delay returns the step delay for speed, clamped to the valid speed range.
func (c Curve) Delay(speed int) time.Duration {
	speed = session.ClampSpeed(speed)
	d := c.Base - time.Duration(speed)*c.Step
	if d < c.Floor {
		return c.Floor
	}
	return d
}

// Clock abstracts timers so pacing can be driven deterministically.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// RealClock uses the runtime timers.
var RealClock Clock = realClock{}

// Pacer suspends the algorithm after every visual event.
type Pacer struct {
	sess  *session.Session
	curve Curve
	clock Clock
}

type Option func(*Pacer)

// WithClock replaces the real clock.
func WithClock(c Clock) Option {
	return func(p *Pacer) { p.clock = c }
}

func New(sess *session.Session, curve Curve, opts ...Option) *Pacer {
	p := &Pacer{sess: sess, curve: curve, clock: RealClock}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pacer) Curve() Curve { return p.curve }

// Delay is the wait the next step would use at the current speed.
func (p *Pacer) Delay() time.Duration {
	return p.curve.Delay(p.sess.Speed())
}

// Pace blocks while the session is Paused, then for the delay derived from
// the speed read at this moment, then again while Paused. It returns
// session.ErrCanceled as soon as a cancellation is observed.
func (p *Pacer) Pace(ctx context.Context) error {
	if err := p.sess.AwaitRunnable(ctx); err != nil {
		return err
	}
	if err := p.sleep(ctx, p.Delay()); err != nil {
		return err
	}
	return p.sess.AwaitRunnable(ctx)
}

func (p *Pacer) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		if p.sess.Canceled() {
			return session.ErrCanceled
		}
		return ctx.Err()
	}
	timer := p.clock.After(d)
	for {
		// Grab the channel before checking the flag so a cancel in between
		// still wakes the select.
		changed := p.sess.Changed()
		if p.sess.Canceled() {
			return session.ErrCanceled
		}
		select {
		case <-timer:
			return nil
		case <-changed:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
