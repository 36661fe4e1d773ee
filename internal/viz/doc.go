// Package viz hosts a starfield in the terminal.
//
// The package implements the host using the Bubble Tea framework:
//
//   - [Model]: the tea.Model that ticks the field at its refresh rate
//   - [Canvas]: braille-based pixel canvas, 2x4 dots per cell
//   - [Surface]: adapts a Canvas to the display and renderer ports
//   - Theme selection with 4 built-in colour schemes
//
// # Key Bindings
//
//	Space - Pause/Resume
//	Up/K  - Raise throttle
//	Down/J - Lower throttle
//	+/-   - Crank impulse (mouse wheel does the same)
//	C     - Toggle centred projection
//	T     - Cycle colour themes
//	?     - Show help overlay
package viz
