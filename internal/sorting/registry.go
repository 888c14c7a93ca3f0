package sorting

import (
	"fmt"

	"github.com/san-kum/sortviz/internal/session"
)

type Registry struct {
	algorithms map[session.Algorithm]func() Algorithm
	order      []session.Algorithm
}

func NewRegistry() *Registry {
	r := &Registry{
		algorithms: make(map[session.Algorithm]func() Algorithm),
	}

	r.Register(session.AlgorithmBubble, func() Algorithm { return NewBubble() })
	r.Register(session.AlgorithmSelection, func() Algorithm { return NewSelection() })
	r.Register(session.AlgorithmInsertion, func() Algorithm { return NewInsertion() })

	return r
}

// Register adds or replaces a constructor. Names keep their first
// registration order.
func (r *Registry) Register(name session.Algorithm, fn func() Algorithm) {
	if _, ok := r.algorithms[name]; !ok {
		r.order = append(r.order, name)
	}
	r.algorithms[name] = fn
}

func (r *Registry) Get(name session.Algorithm) (Algorithm, error) {
	fn, ok := r.algorithms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", session.ErrUnknownAlgorithm, name)
	}
	return fn(), nil
}

func (r *Registry) Names() []session.Algorithm {
	out := make([]session.Algorithm, len(r.order))
	copy(out, r.order)
	return out
}
