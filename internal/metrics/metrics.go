// Package metrics derives run statistics from session change events.
package metrics

import (
	"sync"

	"github.com/san-kum/sortviz/internal/session"
)

// Metric observes every session change of a run.
type Metric interface {
	Name() string
	Observe(c session.Change)
	Value() float64
	Reset()
}

// Series is implemented by metrics that keep a bounded history for charts.
type Series interface {
	History() []float64
}

// Set fans session changes out to a group of metrics. It is safe for use
// from the engine goroutine and the renderer at the same time.
type Set struct {
	mu      sync.Mutex
	metrics []Metric
}

func NewSet(ms ...Metric) *Set {
	return &Set{metrics: ms}
}

// Default returns comparisons, exchanges and inversions.
func Default() *Set {
	return NewSet(NewComparisons(), NewExchanges(), NewInversions())
}

func (s *Set) Add(m Metric) {
	s.mu.Lock()
	s.metrics = append(s.metrics, m)
	s.mu.Unlock()
}

// OnChange makes Set a session.Observer.
func (s *Set) OnChange(c session.Change) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.metrics {
		m.Observe(c)
	}
}

func (s *Set) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.metrics {
		m.Reset()
	}
}

func (s *Set) Values() map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// Value returns the named metric's value and whether it exists.
func (s *Set) Value(name string) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.metrics {
		if m.Name() == name {
			return m.Value(), true
		}
	}
	return 0, false
}

// History returns a copy of the named metric's history, or nil when the
// metric does not keep one.
func (s *Set) History(name string) []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.metrics {
		if m.Name() != name {
			continue
		}
		if h, ok := m.(Series); ok {
			src := h.History()
			out := make([]float64, len(src))
			copy(out, src)
			return out
		}
	}
	return nil
}

func (s *Set) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.metrics))
	for _, m := range s.metrics {
		out = append(out, m.Name())
	}
	return out
}
