package sorting

import (
	"context"
	"fmt"

	"github.com/san-kum/sortviz/internal/session"
)

// Selection keeps the first occurrence when several minimums are equal.
type Selection struct{}

func NewSelection() *Selection { return &Selection{} }

func (*Selection) Name() session.Algorithm { return session.AlgorithmSelection }

func (*Selection) Sort(ctx context.Context, b Board) error {
	n := b.Len()
	for i := 0; i < n-1; i++ {
		if !b.Continue() {
			return session.ErrCanceled
		}
		minIdx := i
		b.Tag(session.Pivot, i)

		for j := i + 1; j < n; j++ {
			if !b.Continue() {
				return session.ErrCanceled
			}
			b.Tag(session.Comparing, j)
			b.Report(fmt.Sprintf("Selection Sort: Finding minimum from position %d", i))
			if err := b.Pace(ctx); err != nil {
				return err
			}
			if b.Compare(j, minIdx) < 0 {
				if minIdx != i {
					b.Tag(session.Default, minIdx)
				}
				minIdx = j
			} else {
				b.Tag(session.Default, j)
			}
		}

		if minIdx != i {
			b.Report(fmt.Sprintf("Selection Sort: Swapping %d with %d", b.At(i), b.At(minIdx)))
			if err := exchange(ctx, b, i, minIdx); err != nil {
				return err
			}
		}
		b.Tag(session.Default, minIdx)
		b.Tag(session.Sorted, i)
	}
	return nil
}
