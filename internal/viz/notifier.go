package viz

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/sortviz/internal/session"
)

// changeMsg carries the newest snapshot into the program loop.
type changeMsg struct {
	snap session.Snapshot
}

// Notifier is the session observer for the TUI. It keeps only the newest
// snapshot and never blocks the goroutine reporting a change.
type Notifier struct {
	mu     sync.Mutex
	latest session.Snapshot
	seen   bool
	signal chan struct{}
}

var _ session.Observer = (*Notifier)(nil)

func NewNotifier() *Notifier {
	return &Notifier{signal: make(chan struct{}, 1)}
}

func (n *Notifier) OnChange(c session.Change) {
	n.mu.Lock()
	if !n.seen || c.Snapshot.Seq > n.latest.Seq {
		n.latest = c.Snapshot
		n.seen = true
	}
	n.mu.Unlock()

	select {
	case n.signal <- struct{}{}:
	default:
	}
}

// Latest returns the newest snapshot seen so far.
func (n *Notifier) Latest() session.Snapshot {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.latest
}

func waitForChange(n *Notifier) tea.Cmd {
	return func() tea.Msg {
		<-n.signal
		return changeMsg{snap: n.Latest()}
	}
}
