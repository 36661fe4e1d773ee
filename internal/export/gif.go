package export

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"io"
	"math"

	"github.com/san-kum/warpfield/internal/hal"
	"github.com/san-kum/warpfield/internal/starfield"
)

var ErrNoFrames = errors.New("export: no frames captured")

// GIFRecorder rasterizes the lines captured for each frame into a
// two-colour paletted image. Attach it as a sim observer with the same
// Capture used as the run's renderer.
type GIFRecorder struct {
	capture *hal.Capture
	width   int
	height  int
	scale   int
	palette color.Palette
	// Every keeps one frame in n.
	Every  int
	delay  int
	frames []*image.Paletted
}

// NewGIFRecorder sizes frames to the view times scale. fps sets the frame
// delay.
func NewGIFRecorder(capture *hal.Capture, v starfield.View, scale int, fps float32, fg, bg hal.Color) *GIFRecorder {
	if scale < 1 {
		scale = 1
	}
	delay := 2
	if fps > 0 {
		delay = max(2, int(math.Round(100/float64(fps))))
	}
	return &GIFRecorder{
		capture: capture,
		width:   int(math.Ceil(float64(v.Width))) * scale,
		height:  int(math.Ceil(float64(v.Height))) * scale,
		scale:   scale,
		palette: color.Palette{bg, fg},
		Every:   1,
		delay:   delay,
	}
}

func (g *GIFRecorder) OnFrame(_ *starfield.Field, st starfield.FrameStats) error {
	if g.Every > 1 && st.Frame%uint64(g.Every) != 0 {
		return nil
	}
	g.frames = append(g.frames, g.rasterize(g.capture.Lines))
	return nil
}

func (g *GIFRecorder) Frames() []*image.Paletted { return g.frames }

func (g *GIFRecorder) rasterize(lines []hal.Line) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, g.width, g.height), g.palette)
	for _, l := range lines {
		width := max(l.Thickness, 1) * g.scale
		Stroke(img, l.From.X*g.scale, l.From.Y*g.scale, l.To.X*g.scale, l.To.Y*g.scale, width, 1)
	}
	return img
}

// Encode writes the captured frames as a looping GIF.
func (g *GIFRecorder) Encode(w io.Writer) error {
	if len(g.frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range g.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, g.delay)
	}
	return gif.EncodeAll(w, &anim)
}

// Stroke draws a line of the given width in palette index idx using
// Bresenham's algorithm. Pixels outside img are dropped.
func Stroke(img *image.Paletted, x0, y0, x1, y1, width int, idx uint8) {
	b := img.Bounds()
	if (x0 < b.Min.X && x1 < b.Min.X) || (y0 < b.Min.Y && y1 < b.Min.Y) ||
		(x0 >= b.Max.X && x1 >= b.Max.X) || (y0 >= b.Max.Y && y1 >= b.Max.Y) {
		return
	}
	lo := -(width / 2)
	hi := lo + max(width, 1)
	plot := func(x, y int) {
		for dy := lo; dy < hi; dy++ {
			for dx := lo; dx < hi; dx++ {
				if image.Pt(x+dx, y+dy).In(b) {
					img.SetColorIndex(x+dx, y+dy, idx)
				}
			}
		}
	}

	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
