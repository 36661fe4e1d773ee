// Package hal defines the ports the starfield core talks to.
//
// Hosts (terminal, raylib window, ebiten framebuffer, headless recorder)
// implement these interfaces; the core never reaches for a global device.
package hal

import (
	"errors"
	"time"
)

var ErrNotImplemented = errors.New("not implemented")

// Point is a screen-space pixel coordinate. Values outside the display are
// legal; renderers clip.
type Point struct {
	X, Y int
}

// Color is an opaque 8-bit RGB colour.
type Color struct {
	R, G, B uint8
}

var (
	Black = Color{}
	White = Color{R: 0xFF, G: 0xFF, B: 0xFF}
)

// RGBA implements image/color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	return r, g, b, 0xFFFF
}

// Display configures the output device.
type Display interface {
	// SetRefreshRate requests a target frame rate in frames per second.
	SetRefreshRate(fps float32) error
}

// Renderer is the drawing surface for one frame.
type Renderer interface {
	Clear(c Color) error
	// DrawLine strokes a segment with the given thickness in pixels.
	// A thickness below 1 is drawn as a hairline.
	DrawLine(from, to Point, thickness int, c Color) error
}

// Input reports the accumulated travel requested since the previous poll.
type Input interface {
	Speed() (float32, error)
}

// Clock provides wall-clock time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }
