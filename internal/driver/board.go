package driver

import (
	"context"

	"github.com/san-kum/sortviz/internal/pacing"
	"github.com/san-kum/sortviz/internal/session"
)

// board adapts a session and its pacer to sorting.Board.
type board struct {
	*session.Session
	pacer *pacing.Pacer
	steps int
}

func (b *board) Report(msg string) { b.SetStatus(msg) }

func (b *board) Pace(ctx context.Context) error {
	b.steps++
	return b.pacer.Pace(ctx)
}

func (b *board) Continue() bool { return !b.Canceled() }
