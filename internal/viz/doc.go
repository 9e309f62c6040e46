// Package viz hosts a pan widget in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework.
// The terminal plays the role of the page: a strip of cards is the content,
// a window of the terminal width is the container, and mouse motion is the
// pointer.
//
//   - [Model]: the Bubble Tea model driving one widget through a sim.Host
//   - [Strip]: pre-rendered card rows cut to the visible window
//   - [Canvas]: Braille minimap of the visible window over the content
//   - [WatchConfig]: reloads the config file and re-applies the widget
//
// # Key Bindings
//
//	r     - Re-initialize the widget
//	p     - Toggle pause-on-mouse-out (takes effect on re-init)
//	b / e - Fire the before / end callbacks
//	t     - Cycle color themes
//	s     - Save the offset history as SVG
//	←/→   - Scroll natively (touch mode)
//	?     - Show help overlay
package viz
