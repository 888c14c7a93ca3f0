package sorting

import (
	"context"
	"fmt"

	"github.com/san-kum/sortviz/internal/session"
)

type Bubble struct{}

func NewBubble() *Bubble { return &Bubble{} }

func (*Bubble) Name() session.Algorithm { return session.AlgorithmBubble }

func (*Bubble) Sort(ctx context.Context, b Board) error {
	n := b.Len()
	for i := 0; i < n-1; i++ {
		if !b.Continue() {
			return session.ErrCanceled
		}
		for j := 0; j < n-1-i; j++ {
			if !b.Continue() {
				return session.ErrCanceled
			}
			b.Tag(session.Comparing, j, j+1)
			b.Report(fmt.Sprintf("Bubble Sort: Comparing %d and %d", b.At(j), b.At(j+1)))
			if err := b.Pace(ctx); err != nil {
				return err
			}
			if b.Compare(j, j+1) > 0 {
				b.Report(fmt.Sprintf("Bubble Sort: Swapping %d and %d", b.At(j), b.At(j+1)))
				if err := exchange(ctx, b, j, j+1); err != nil {
					return err
				}
			}
			b.Tag(session.Default, j, j+1)
		}
		b.Tag(session.Sorted, n-1-i)
	}
	return nil
}
