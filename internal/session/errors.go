package session

import "errors"

// Domain errors for session operations.
var (
	// ErrBusy indicates an operation that is only valid while Idle.
	ErrBusy = errors.New("session: animation in progress")

	// ErrEmptySequence indicates an attempt to install or run an empty sequence.
	ErrEmptySequence = errors.New("session: empty sequence")

	// ErrUnknownAlgorithm indicates an algorithm name outside the supported set.
	ErrUnknownAlgorithm = errors.New("session: unknown algorithm")

	// ErrCanceled indicates the run was canceled before it completed.
	ErrCanceled = errors.New("session: run canceled")

	// ErrIndexRange indicates an index outside the working sequence.
	ErrIndexRange = errors.New("session: index out of range")
)
