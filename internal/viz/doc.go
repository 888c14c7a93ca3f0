// Package viz provides the terminal user interface for sorting animations.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: bar chart, side panel with live metrics and the sequence input box
//   - [Notifier]: session observer that hands snapshots to the program loop
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	1/B   - Bubble sort
//	2/S   - Selection sort
//	3/I   - Insertion sort
//	Space - Play/Pause
//	R     - Reset from the input box
//	E     - Edit the sequence
//	+/-   - Speed up / slow down
//	T     - Cycle color themes
//	?     - Show help overlay
//
// Algorithm selection and editing are ignored while an animation runs.
package viz
