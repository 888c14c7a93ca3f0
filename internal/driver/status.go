package driver

import "github.com/san-kum/sortviz/internal/session"

// Status lines shown by the driver itself. Step statuses come from the
// sorting procedures.
const (
	StatusReady       = "Ready to visualize!"
	StatusNoAlgorithm = "⚠️ Please select an algorithm first!"
	StatusPaused      = "⏸️ Paused"
	StatusResumed     = "▶️ Resumed..."
	StatusComplete    = "✅ Sorting Complete!"
)

func StatusSelected(a session.Algorithm) string {
	return "Selected: " + a.Title()
}
