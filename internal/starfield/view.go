package starfield

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/warpfield/internal/rng"
)

// RecycleMode selects the lateral range a recycled star is re-rolled into.
type RecycleMode uint8

const (
	// RecycleSigned re-rolls X in [-W, W) and Y in [-H, H).
	RecycleSigned RecycleMode = iota
	// RecycleUnsigned re-rolls X in [0, W) and Y in [0, H), which biases
	// recycled stars toward the lower right.
	RecycleUnsigned
)

func (m RecycleMode) String() string {
	switch m {
	case RecycleSigned:
		return "signed"
	case RecycleUnsigned:
		return "unsigned"
	default:
		return fmt.Sprintf("RecycleMode(%d)", uint8(m))
	}
}

// ParseRecycleMode accepts "signed" or "unsigned".
func ParseRecycleMode(s string) (RecycleMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "signed", "":
		return RecycleSigned, nil
	case "unsigned":
		return RecycleUnsigned, nil
	}
	return 0, fmt.Errorf("starfield: unknown recycle mode %q", s)
}

// View is the display geometry plus the projection choices that differ
// between renditions of the effect.
type View struct {
	Width, Height float32
	// Centered adds 0.5 before scaling so the vanishing point sits in the
	// middle of the screen instead of the top-left corner.
	Centered bool
	Recycle  RecycleMode
	// Scale divides raw random draws before they are folded into a range.
	Scale float32
}

// Handheld is the 400x240 panel the effect was designed for.
func Handheld() View {
	return View{
		Width:    400,
		Height:   240,
		Centered: true,
		Recycle:  RecycleSigned,
		Scale:    rng.DefaultScale,
	}
}

func (v View) validate() error {
	for _, f := range []float32{v.Width, v.Height, v.Scale} {
		if !(f > 0) || math.IsInf(float64(f), 1) {
			return fmt.Errorf("%w: %gx%g scale %g", ErrView, v.Width, v.Height, v.Scale)
		}
	}
	if v.Recycle > RecycleUnsigned {
		return fmt.Errorf("%w: %v", ErrView, v.Recycle)
	}
	return nil
}

func (v View) offset() float32 {
	if v.Centered {
		return 0.5
	}
	return 0
}

// Map linearly re-ranges value from [start1, stop1] to [start2, stop2]
// without clamping.
func Map(value, start1, stop1, start2, stop2 float32) float32 {
	return start2 + (stop2-start2)*((value-start1)/(stop1-start1))
}
