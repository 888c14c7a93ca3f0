package metrics

import "github.com/san-kum/sortviz/internal/session"

const historyCapacity = 600

// Inversions tracks how far the sequence is from sorted: the number of
// index pairs i < j with values[i] > values[j]. It is recomputed whenever
// the values change.
type Inversions struct {
	current int
	history []float64
}

func NewInversions() *Inversions {
	return &Inversions{history: make([]float64, 0, historyCapacity)}
}

func (v *Inversions) Name() string { return NameInversions }

func (v *Inversions) Observe(c session.Change) {
	switch c.Kind {
	case session.ChangeSequence, session.ChangeSwap:
	case session.ChangeState:
		if c.Snapshot.State != session.Running || len(v.history) > 0 {
			return
		}
	default:
		return
	}
	v.current = Count(c.Snapshot.Values)
	v.history = append(v.history, float64(v.current))
	if len(v.history) > historyCapacity {
		v.history = v.history[1:]
	}
}

func (v *Inversions) Value() float64 { return float64(v.current) }

func (v *Inversions) History() []float64 { return v.history }

func (v *Inversions) Reset() {
	v.current = 0
	v.history = v.history[:0]
}

// Count returns the number of inversions in values.
func Count(values []int) int {
	n := 0
	for i := range values {
		for j := i + 1; j < len(values); j++ {
			if values[i] > values[j] {
				n++
			}
		}
	}
	return n
}
