package session

import (
	"fmt"
	"strings"
)

// RunState is the coarse animation state.
type RunState int

const (
	Idle RunState = iota
	Running
	Paused
)

func (s RunState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	}
	return fmt.Sprintf("RunState(%d)", int(s))
}

// Tag annotates a single index for rendering.
type Tag int

const (
	Default Tag = iota
	Comparing
	Pivot
	Swapping
	Sorted
)

func (t Tag) String() string {
	switch t {
	case Default:
		return "default"
	case Comparing:
		return "comparing"
	case Pivot:
		return "pivot"
	case Swapping:
		return "swapping"
	case Sorted:
		return "sorted"
	}
	return fmt.Sprintf("Tag(%d)", int(t))
}

// Algorithm names a sorting procedure. The zero value selects nothing.
type Algorithm string

const (
	AlgorithmNone      Algorithm = ""
	AlgorithmBubble    Algorithm = "bubble"
	AlgorithmSelection Algorithm = "selection"
	AlgorithmInsertion Algorithm = "insertion"
)

// Algorithms lists the selectable algorithms in menu order.
var Algorithms = []Algorithm{AlgorithmBubble, AlgorithmSelection, AlgorithmInsertion}

// Valid reports whether a is one of the selectable algorithms or None.
func (a Algorithm) Valid() bool {
	switch a {
	case AlgorithmNone, AlgorithmBubble, AlgorithmSelection, AlgorithmInsertion:
		return true
	}
	return false
}

// Title returns the display name, e.g. "Bubble Sort".
func (a Algorithm) Title() string {
	if a == AlgorithmNone {
		return "none"
	}
	s := string(a)
	return strings.ToUpper(s[:1]) + s[1:] + " Sort"
}

// ParseAlgorithm accepts "bubble", "Bubble Sort", "bubble_sort" and similar.
func ParseAlgorithm(name string) (Algorithm, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.TrimSuffix(s, "sort")
	s = strings.TrimRight(s, " _-")
	a := Algorithm(s)
	if !a.Valid() {
		return AlgorithmNone, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return a, nil
}

const (
	MinSpeed     = 1
	MaxSpeed     = 100
	DefaultSpeed = 30
)

// ClampSpeed bounds v to [MinSpeed, MaxSpeed].
func ClampSpeed(v int) int {
	if v < MinSpeed {
		return MinSpeed
	}
	if v > MaxSpeed {
		return MaxSpeed
	}
	return v
}

// Snapshot is a consistent copy of the session taken under its lock.
type Snapshot struct {
	Seq       uint64
	Values    []int
	Tags      []Tag
	State     RunState
	Algorithm Algorithm
	Speed     int
	Status    string
}

// Max returns the largest value, or 0 for an empty sequence.
func (s Snapshot) Max() int {
	if len(s.Values) == 0 {
		return 0
	}
	m := s.Values[0]
	for _, v := range s.Values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// ControlsLocked reports whether algorithm selection and sequence input
// must be disabled.
func (s Snapshot) ControlsLocked() bool {
	return s.State != Idle
}

// IsSorted reports whether the values are in ascending order.
func (s Snapshot) IsSorted() bool { return IsSorted(s.Values) }

// IsSorted reports whether values is in ascending order.
func IsSorted(values []int) bool {
	for i := 1; i < len(values); i++ {
		if values[i-1] > values[i] {
			return false
		}
	}
	return true
}

// ChangeKind classifies a session mutation.
type ChangeKind int

const (
	ChangeSequence ChangeKind = iota
	ChangeTags
	ChangeCompare
	ChangeSwap
	ChangeStatus
	ChangeState
	ChangeSpeed
	ChangeAlgorithm
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeSequence:
		return "sequence"
	case ChangeTags:
		return "tags"
	case ChangeCompare:
		return "compare"
	case ChangeSwap:
		return "swap"
	case ChangeStatus:
		return "status"
	case ChangeState:
		return "state"
	case ChangeSpeed:
		return "speed"
	case ChangeAlgorithm:
		return "algorithm"
	}
	return fmt.Sprintf("ChangeKind(%d)", int(k))
}

// Change describes one mutation. I and J are the affected indices, -1 when
// not applicable.
type Change struct {
	Kind     ChangeKind
	I, J     int
	Snapshot Snapshot
}
