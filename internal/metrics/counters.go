package metrics

import "github.com/san-kum/sortviz/internal/session"

const (
	NameComparisons = "comparisons"
	NameExchanges   = "exchanges"
	NameInversions  = "inversions"
)

type counter struct {
	name  string
	kind  session.ChangeKind
	count int
}

func (c *counter) Name() string { return c.name }

func (c *counter) Observe(ch session.Change) {
	if ch.Kind == c.kind {
		c.count++
	}
}

func (c *counter) Value() float64 { return float64(c.count) }

func (c *counter) Reset() { c.count = 0 }

type Comparisons struct{ counter }

func NewComparisons() *Comparisons {
	return &Comparisons{counter{name: NameComparisons, kind: session.ChangeCompare}}
}

type Exchanges struct{ counter }

func NewExchanges() *Exchanges {
	return &Exchanges{counter{name: NameExchanges, kind: session.ChangeSwap}}
}
