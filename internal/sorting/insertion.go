package sorting

import (
	"context"
	"fmt"

	"github.com/san-kum/sortviz/internal/session"
)

// Insertion moves the key down by successive exchanges. The key is always
// compared at its live position j+1, never from a cached value.
type Insertion struct{}

func NewInsertion() *Insertion { return &Insertion{} }

func (*Insertion) Name() session.Algorithm { return session.AlgorithmInsertion }

func (*Insertion) Sort(ctx context.Context, b Board) error {
	n := b.Len()
	if n == 0 {
		return nil
	}
	b.Tag(session.Sorted, 0)

	for i := 1; i < n; i++ {
		if !b.Continue() {
			return session.ErrCanceled
		}
		b.Tag(session.Comparing, i)
		b.Report(fmt.Sprintf("Insertion Sort: Inserting %d into sorted portion", b.At(i)))
		if err := b.Pace(ctx); err != nil {
			return err
		}

		for j := i - 1; j >= 0; j-- {
			if !b.Continue() {
				return session.ErrCanceled
			}
			if b.Compare(j, j+1) <= 0 {
				break
			}
			if err := exchange(ctx, b, j, j+1); err != nil {
				return err
			}
		}
		b.Tag(session.Sorted, i)
	}
	return nil
}
