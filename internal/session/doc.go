// Package session holds the state of a single sorting animation.
//
// A [Session] owns the working sequence together with the per-index
// [Tag] annotations, the [RunState], the selected [Algorithm], the speed
// setting and the status line. It is the only shared mutable resource of
// the animation:
//
//   - the active algorithm procedure is its single writer for values and tags
//   - the renderer observes it through one [Observer] and never mutates it
//   - run-state transitions are requested by the driver and by UI triggers
//
// Every mutation produces a [Change] carrying a consistent [Snapshot],
// delivered to the observer after the session lock is released.
//
// # Pausing
//
// [Session.Swap] refuses to exchange values while the session is Paused and
// blocks until it is resumed or canceled, so a swap is never observed while
// Paused. Waiters wake on the channel returned by [Session.Changed], which is
// closed on every run-state transition.
package session
