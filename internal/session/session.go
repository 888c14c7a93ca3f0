package session

import (
	"cmp"
	"context"
	"sync"
)

// Session is the single encapsulated state of one animation.
type Session struct {
	mu        sync.Mutex
	values    []int
	tags      []Tag
	state     RunState
	algorithm Algorithm
	speed     int
	status    string
	canceled  bool
	seq       uint64
	changed   chan struct{}
	observer  Observer
}

// New creates an idle session with no sequence. obs may be nil.
func New(obs Observer) *Session {
	return &Session{
		speed:    DefaultSpeed,
		changed:  make(chan struct{}),
		observer: obs,
	}
}

// snapshotLocked must be called with s.mu held.
func (s *Session) snapshotLocked() Snapshot {
	values := make([]int, len(s.values))
	copy(values, s.values)
	tags := make([]Tag, len(s.tags))
	copy(tags, s.tags)
	return Snapshot{
		Seq:       s.seq,
		Values:    values,
		Tags:      tags,
		State:     s.state,
		Algorithm: s.algorithm,
		Speed:     s.speed,
		Status:    s.status,
	}
}

// changeLocked must be called with s.mu held.
func (s *Session) changeLocked(kind ChangeKind, i, j int) Change {
	s.seq++
	return Change{Kind: kind, I: i, J: j, Snapshot: s.snapshotLocked()}
}

// broadcastLocked wakes every waiter on Changed. Must be called with s.mu held.
func (s *Session) broadcastLocked() {
	close(s.changed)
	s.changed = make(chan struct{})
}

func (s *Session) emit(c Change) {
	if s.observer != nil {
		s.observer.OnChange(c)
	}
}

// Snapshot returns a consistent copy of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Sequence returns a copy of the working sequence.
func (s *Session) Sequence() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.values))
	copy(out, s.values)
	return out
}

// SetSequence installs a new working sequence and resets all tags. It is
// rejected unless the session is Idle.
func (s *Session) SetSequence(values []int) error {
	if len(values) == 0 {
		return ErrEmptySequence
	}
	s.mu.Lock()
	if s.state != Idle {
		s.mu.Unlock()
		return ErrBusy
	}
	s.values = make([]int, len(values))
	copy(s.values, values)
	s.tags = make([]Tag, len(values))
	c := s.changeLocked(ChangeSequence, -1, -1)
	s.mu.Unlock()
	s.emit(c)
	return nil
}

func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}

// At returns the value at index i.
func (s *Session) At(i int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[i]
}

func (s *Session) RunState() RunState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Algorithm() Algorithm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.algorithm
}

// SetAlgorithm changes the selection. It is rejected unless Idle.
func (s *Session) SetAlgorithm(a Algorithm) error {
	if !a.Valid() {
		return ErrUnknownAlgorithm
	}
	s.mu.Lock()
	if s.state != Idle {
		s.mu.Unlock()
		return ErrBusy
	}
	s.algorithm = a
	c := s.changeLocked(ChangeAlgorithm, -1, -1)
	s.mu.Unlock()
	s.emit(c)
	return nil
}

func (s *Session) Speed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speed
}

// SetSpeed is allowed in every state. It returns the clamped value.
func (s *Session) SetSpeed(v int) int {
	v = ClampSpeed(v)
	s.mu.Lock()
	s.speed = v
	c := s.changeLocked(ChangeSpeed, -1, -1)
	s.mu.Unlock()
	s.emit(c)
	return v
}

func (s *Session) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// SetStatusIf replaces the status line only while the session is in state.
func (s *Session) SetStatusIf(state RunState, msg string) bool {
	s.mu.Lock()
	if s.state != state {
		s.mu.Unlock()
		return false
	}
	s.status = msg
	c := s.changeLocked(ChangeStatus, -1, -1)
	s.mu.Unlock()
	s.emit(c)
	return true
}

// SetStatus replaces the status line.
func (s *Session) SetStatus(msg string) {
	s.mu.Lock()
	s.status = msg
	c := s.changeLocked(ChangeStatus, -1, -1)
	s.mu.Unlock()
	s.emit(c)
}

// Begin moves an idle session with a non-empty sequence to Running and
// clears all tags.
func (s *Session) Begin() error {
	s.mu.Lock()
	if s.state != Idle {
		s.mu.Unlock()
		return ErrBusy
	}
	if len(s.values) == 0 {
		s.mu.Unlock()
		return ErrEmptySequence
	}
	s.state = Running
	s.canceled = false
	for i := range s.tags {
		s.tags[i] = Default
	}
	s.broadcastLocked()
	c := s.changeLocked(ChangeState, -1, -1)
	s.mu.Unlock()
	s.emit(c)
	return nil
}

// Finish returns the session to Idle and sets every tag to tag. A non-empty
// status replaces the status line under the same lock, so no transition
// can slip in between.
func (s *Session) Finish(tag Tag, status string) {
	s.mu.Lock()
	s.state = Idle
	s.canceled = false
	for i := range s.tags {
		s.tags[i] = tag
	}
	s.broadcastLocked()
	changes := []Change{s.changeLocked(ChangeState, -1, -1)}
	if status != "" {
		s.status = status
		changes = append(changes, s.changeLocked(ChangeStatus, -1, -1))
	}
	s.mu.Unlock()
	for _, c := range changes {
		s.emit(c)
	}
}

func (s *Session) transition(from, to RunState) bool {
	s.mu.Lock()
	if s.state != from || s.canceled {
		s.mu.Unlock()
		return false
	}
	s.state = to
	s.broadcastLocked()
	c := s.changeLocked(ChangeState, -1, -1)
	s.mu.Unlock()
	s.emit(c)
	return true
}

// RequestPause moves Running to Paused. Any other state is a no-op.
func (s *Session) RequestPause() bool { return s.transition(Running, Paused) }

// RequestResume moves Paused to Running. Any other state is a no-op.
func (s *Session) RequestResume() bool { return s.transition(Paused, Running) }

// RequestCancel flags the in-flight run as canceled and wakes every waiter.
// The session stays Running or Paused until the driver calls Finish.
func (s *Session) RequestCancel() bool {
	s.mu.Lock()
	if s.state == Idle || s.canceled {
		s.mu.Unlock()
		return false
	}
	s.canceled = true
	s.broadcastLocked()
	c := s.changeLocked(ChangeState, -1, -1)
	s.mu.Unlock()
	s.emit(c)
	return true
}

// Canceled reports whether the in-flight run has been asked to stop.
func (s *Session) Canceled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canceled
}

// Changed returns a channel closed on the next run-state transition.
func (s *Session) Changed() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.changed
}

// AwaitRunnable blocks while the session is Paused. It returns ErrCanceled
// once the run is canceled, or the context error.
func (s *Session) AwaitRunnable(ctx context.Context) error {
	for {
		s.mu.Lock()
		canceled, state, changed := s.canceled, s.state, s.changed
		s.mu.Unlock()
		if canceled {
			return ErrCanceled
		}
		if state != Paused {
			return nil
		}
		select {
		case <-changed:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Tags returns a copy of the per-index tags.
func (s *Session) Tags() []Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Tag, len(s.tags))
	copy(out, s.tags)
	return out
}

// TagAt returns the tag at index i.
func (s *Session) TagAt(i int) Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tags[i]
}

// Tag sets t on every listed index. Out of range indices are ignored.
func (s *Session) Tag(t Tag, idx ...int) {
	s.mu.Lock()
	first, second := -1, -1
	for n, i := range idx {
		if i < 0 || i >= len(s.tags) {
			continue
		}
		s.tags[i] = t
		switch n {
		case 0:
			first = i
		case 1:
			second = i
		}
	}
	c := s.changeLocked(ChangeTags, first, second)
	s.mu.Unlock()
	s.emit(c)
}

// Compare reports the ordering of the live values at i and j, emitting a
// comparison event.
func (s *Session) Compare(i, j int) int {
	s.mu.Lock()
	r := cmp.Compare(s.values[i], s.values[j])
	c := s.changeLocked(ChangeCompare, i, j)
	s.mu.Unlock()
	s.emit(c)
	return r
}

// Swap exchanges the values at i and j. The exchange happens atomically
// while the session is Running: it blocks while Paused and fails with
// ErrCanceled once the run is canceled.
func (s *Session) Swap(i, j int) error {
	for {
		s.mu.Lock()
		if s.canceled {
			s.mu.Unlock()
			return ErrCanceled
		}
		if i < 0 || j < 0 || i >= len(s.values) || j >= len(s.values) {
			s.mu.Unlock()
			return ErrIndexRange
		}
		if s.state == Paused {
			changed := s.changed
			s.mu.Unlock()
			<-changed
			continue
		}
		s.values[i], s.values[j] = s.values[j], s.values[i]
		c := s.changeLocked(ChangeSwap, i, j)
		s.mu.Unlock()
		s.emit(c)
		return nil
	}
}
