package viz

import (
	"fmt"
	"math"

	"github.com/san-kum/warpfield/internal/hal"
)

// Surface adapts a Canvas to the display and renderer ports. Engine
// coordinates in a width x height view are scaled onto the canvas dots.
type Surface struct {
	canvas     *Canvas
	sx, sy     float64
	background hal.Color
	rate       float32
	lines      int
}

func NewSurface(cols, rows int, width, height float32) *Surface {
	c := NewCanvas(cols, rows)
	w, h := c.Dots()
	return &Surface{
		canvas: c,
		sx:     float64(w) / float64(width),
		sy:     float64(h) / float64(height),
	}
}

func (s *Surface) Canvas() *Canvas { return s.canvas }

// SetRefreshRate records the tick rate the terminal host should run at.
func (s *Surface) SetRefreshRate(fps float32) error {
	if !(fps > 0) {
		return fmt.Errorf("viz: refresh rate %g", fps)
	}
	s.rate = fps
	return nil
}

func (s *Surface) RefreshRate() float32 { return s.rate }

func (s *Surface) Clear(bg hal.Color) error {
	s.background = bg
	s.lines = 0
	s.canvas.Clear()
	return nil
}

// DrawLine ignores the colour: a braille cell has one foreground, set by
// the theme when the canvas is rendered.
func (s *Surface) DrawLine(from, to hal.Point, thickness int, _ hal.Color) error {
	x0, y0 := s.scale(from)
	x1, y1 := s.scale(to)
	w := int(math.Round(float64(thickness) * s.sx))
	s.canvas.DrawThickLine(x0, y0, x1, y1, w)
	s.lines++
	return nil
}

// Lines is the number of DrawLine calls since the last Clear.
func (s *Surface) Lines() int { return s.lines }

func (s *Surface) Background() hal.Color { return s.background }

func (s *Surface) scale(p hal.Point) (int, int) {
	return int(math.Floor(float64(p.X) * s.sx)), int(math.Floor(float64(p.Y) * s.sy))
}
