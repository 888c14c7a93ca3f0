package storage

import (
	"sync"

	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/session"
)

// Step is one recorded engine event.
type Step struct {
	Seq        uint64 `json:"seq"`
	Kind       string `json:"kind"`
	I          int    `json:"i"`
	J          int    `json:"j"`
	State      string `json:"state"`
	Inversions int    `json:"inversions"`
	Values     []int  `json:"values"`
	Status     string `json:"status"`
}

// Recorder is a session observer that keeps the comparisons, swaps and
// run-state transitions of a run.
type Recorder struct {
	mu    sync.Mutex
	steps []Step
}

var _ session.Observer = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) OnChange(c session.Change) {
	switch c.Kind {
	case session.ChangeCompare, session.ChangeSwap, session.ChangeState:
	default:
		return
	}
	snap := c.Snapshot
	st := Step{
		Seq:        snap.Seq,
		Kind:       c.Kind.String(),
		I:          c.I,
		J:          c.J,
		State:      snap.State.String(),
		Inversions: metrics.Count(snap.Values),
		Values:     snap.Values,
		Status:     snap.Status,
	}
	r.mu.Lock()
	r.steps = append(r.steps, st)
	r.mu.Unlock()
}

func (r *Recorder) Steps() []Step {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Step, len(r.steps))
	copy(out, r.steps)
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	r.steps = nil
	r.mu.Unlock()
}
