// Package viz provides terminal-based visualization of the growing tree.
//
// The package implements an animated TUI using the Bubble Tea framework:
//
//   - [Model]: the live view, one level revealed per tick
//   - [Canvas]: Braille-based pixel canvas that implements fibtree.Surface
//   - Theme selection with 4 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume growth
//	N     - Grow a new tree now
//	T     - Cycle color themes
//	+/-   - Change frame interval
//	?     - Show help overlay
package viz
