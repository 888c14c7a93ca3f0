// Package sorting implements the step-generating sort procedures.
//
// Each procedure drives a [Board]: it reads and compares live values, tags
// indices for the renderer, reports status lines and yields to the pacer
// after every visual event. Values only ever change through the shared
// exchange primitive, so what is displayed and what is stored cannot
// diverge mid-swap.
package sorting

import (
	"context"

	"github.com/san-kum/sortviz/internal/session"
)

// Board is the surface a procedure animates.
type Board interface {
	Len() int
	At(i int) int
	// Compare orders the live values at i and j and records a comparison.
	Compare(i, j int) int
	Tag(t session.Tag, idx ...int)
	TagAt(i int) session.Tag
	// Swap exchanges two values atomically.
	Swap(i, j int) error
	Report(msg string)
	// Pace is the paced suspension point.
	Pace(ctx context.Context) error
	// Continue is the cooperative cancellation check.
	Continue() bool
}

// Algorithm is one sorting procedure.
type Algorithm interface {
	Name() session.Algorithm
	Sort(ctx context.Context, b Board) error
}

// exchange marks both positions as swapping, swaps the values, paces once
// and restores the tags the positions held before.
func exchange(ctx context.Context, b Board, i, j int) error {
	ti, tj := b.TagAt(i), b.TagAt(j)
	b.Tag(session.Swapping, i, j)
	if err := b.Swap(i, j); err != nil {
		return err
	}
	if err := b.Pace(ctx); err != nil {
		return err
	}
	b.Tag(ti, i)
	b.Tag(tj, j)
	return nil
}
