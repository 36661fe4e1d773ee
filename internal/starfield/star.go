package starfield

import (
	"math"

	"github.com/san-kum/warpfield/internal/hal"
	"github.com/san-kum/warpfield/internal/rng"
)

// RecycleDepth is the depth below which a star has passed the viewer.
const RecycleDepth = 1.0

// MaxRadius is the stroke width of a star at zero depth.
const MaxRadius = 4.0

// Star is a point drifting toward the viewer. X and Y are offsets from the
// screen centre, Z is the current depth and PZ the depth drawn last frame.
type Star struct {
	X, Y, Z, PZ float32
}

// Segment is the projected streak of one star for one frame.
type Segment struct {
	From, To hal.Point
	Radius   int
}

// Length is the pixel length of the streak.
func (s Segment) Length() float64 {
	dx := float64(s.To.X - s.From.X)
	dy := float64(s.To.Y - s.From.Y)
	return math.Hypot(dx, dy)
}

// NewStar places a star at a random depth in [0, W) and a random signed
// offset. It consumes exactly three draws, in the order Z, X, Y.
func NewStar(src *rng.Source, v View) Star {
	z := src.Between(0, v.Width, v.Scale)
	return Star{
		X:  src.Between(-v.Width, v.Width, v.Scale),
		Y:  src.Between(-v.Height, v.Height, v.Scale),
		Z:  z,
		PZ: z,
	}
}

// Update advances the star by speed. A star whose depth falls below
// RecycleDepth is moved back to the far plane at a new lateral offset with
// PZ == Z, so it is drawn as a dot on its first frame. Update reports
// whether the star was recycled.
func (s *Star) Update(src *rng.Source, v View, speed float32) bool {
	s.Z -= speed
	if s.Z >= RecycleDepth {
		return false
	}
	s.Z = v.Width
	switch v.Recycle {
	case RecycleUnsigned:
		s.X = src.Between(0, v.Width, v.Scale)
		s.Y = src.Between(0, v.Height, v.Scale)
	default:
		s.X = src.Between(-v.Width, v.Width, v.Scale)
		s.Y = src.Between(-v.Height, v.Height, v.Scale)
	}
	s.PZ = s.Z
	return true
}

// Project maps the previous and current depth onto the screen and commits
// the current depth as next frame's previous one.
func (s *Star) Project(v View) Segment {
	c := v.offset()

	sx := Map(s.X/s.Z+c, 0, 1, 0, v.Width)
	sy := Map(s.Y/s.Z+c, 0, 1, 0, v.Height)
	r := Map(s.Z, 0, v.Width, MaxRadius, 0)

	px := Map(s.X/s.PZ+c, 0, 1, 0, v.Width)
	py := Map(s.Y/s.PZ+c, 0, 1, 0, v.Height)

	s.PZ = s.Z

	return Segment{
		From:   hal.Point{X: int(px), Y: int(py)},
		To:     hal.Point{X: int(sx), Y: int(sy)},
		Radius: int(r),
	}
}

// Show projects the star and strokes exactly one line for it. Off-screen
// segments are passed through; the renderer clips.
func (s *Star) Show(r hal.Renderer, v View, c hal.Color) (Segment, error) {
	seg := s.Project(v)
	return seg, r.DrawLine(seg.From, seg.To, seg.Radius, c)
}
