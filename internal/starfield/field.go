package starfield

import (
	"fmt"

	"github.com/san-kum/warpfield/internal/hal"
	"github.com/san-kum/warpfield/internal/rng"
)

const (
	// MaxStars bounds the star array. The whole array lives inline in the
	// Field, so it stays a flat block of a few kilobytes.
	MaxStars = 600

	DefaultStars       = 300
	DefaultRefreshRate = 50
)

// Config fixes everything a Field needs at construction.
type Config struct {
	Stars int
	Seed  uint64
	// ClockSeed seeds from Ports.Clock instead of Seed.
	ClockSeed   bool
	View        View
	RefreshRate float32
	Foreground  hal.Color
	Background  hal.Color
}

func DefaultConfig() Config {
	return Config{
		Stars:       DefaultStars,
		View:        Handheld(),
		RefreshRate: DefaultRefreshRate,
		Foreground:  hal.White,
		Background:  hal.Black,
	}
}

// Validate checks the config without touching any port.
func (c Config) Validate() error {
	if c.Stars < 1 || c.Stars > MaxStars {
		return fmt.Errorf("%w: %d (max %d)", ErrStarCount, c.Stars, MaxStars)
	}
	if err := c.View.validate(); err != nil {
		return err
	}
	if !(c.RefreshRate > 0) {
		return fmt.Errorf("%w: %g", ErrRefreshRate, c.RefreshRate)
	}
	return nil
}

// Ports are the host collaborators. Clock is only consulted when
// Config.ClockSeed is set and defaults to the system clock.
type Ports struct {
	Display  hal.Display
	Renderer hal.Renderer
	Input    hal.Input
	Clock    hal.Clock
}

// FrameStats summarizes one completed frame.
type FrameStats struct {
	Frame      uint64
	Speed      float32
	Recycled   int
	MeanDepth  float64
	MeanStreak float64
}

// Field is the fixed population of stars and the source that places them.
type Field struct {
	cfg   Config
	ports Ports
	src   *rng.Source
	stars [MaxStars]Star
	n     int
	frame uint64
	last  FrameStats
}

// New sets the display refresh rate, seeds the random source and places
// every star. A display failure aborts construction.
func New(cfg Config, ports Ports) (*Field, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if ports.Display == nil || ports.Renderer == nil || ports.Input == nil {
		return nil, ErrPorts
	}
	if ports.Clock == nil {
		ports.Clock = hal.SystemClock{}
	}

	if err := ports.Display.SetRefreshRate(cfg.RefreshRate); err != nil {
		return nil, fmt.Errorf("starfield: set refresh rate: %w", err)
	}

	f := &Field{cfg: cfg, ports: ports, n: cfg.Stars}
	if cfg.ClockSeed {
		f.src = rng.NewFromClock(ports.Clock)
	} else {
		f.src = rng.New(cfg.Seed)
	}
	for i := 0; i < f.n; i++ {
		f.stars[i] = NewStar(f.src, cfg.View)
	}
	return f, nil
}

// Update runs one frame: clear, poll the speed, then update and show every
// star in index order. Negative and NaN speeds count as zero so the field
// never runs backwards. The first collaborator error aborts the frame; the
// remaining stars are not drawn and the frame counter does not advance.
func (f *Field) Update() error {
	if err := f.ports.Renderer.Clear(f.cfg.Background); err != nil {
		return &FrameError{Frame: f.frame, Star: -1, Op: "clear", Err: err}
	}
	speed, err := f.ports.Input.Speed()
	if err != nil {
		return &FrameError{Frame: f.frame, Star: -1, Op: "input", Err: err}
	}
	speed = clampSpeed(speed)

	stats := FrameStats{Frame: f.frame, Speed: speed}
	var depth, streak float64
	for i := 0; i < f.n; i++ {
		s := &f.stars[i]
		if s.Update(f.src, f.cfg.View, speed) {
			stats.Recycled++
		}
		seg, err := s.Show(f.ports.Renderer, f.cfg.View, f.cfg.Foreground)
		if err != nil {
			return &FrameError{Frame: f.frame, Star: i, Op: "draw", Err: err}
		}
		depth += float64(s.Z)
		streak += seg.Length()
	}
	stats.MeanDepth = depth / float64(f.n)
	stats.MeanStreak = streak / float64(f.n)

	f.last = stats
	f.frame++
	return nil
}

func clampSpeed(s float32) float32 {
	if !(s > 0) {
		return 0
	}
	return s
}

// Len is the number of stars; it never changes.
func (f *Field) Len() int { return f.n }

// Star returns a copy of star i.
func (f *Field) Star(i int) Star { return f.stars[:f.n][i] }

// Stars returns a copy of every star in index order.
func (f *Field) Stars() []Star {
	out := make([]Star, f.n)
	copy(out, f.stars[:f.n])
	return out
}

// Frame is the number of completed frames.
func (f *Field) Frame() uint64 { return f.frame }

// LastStats describes the most recent completed frame.
func (f *Field) LastStats() FrameStats { return f.last }

// Seed is the seed the random source was created with, including a
// clock-derived one.
func (f *Field) Seed() uint64 { return f.src.Seed() }

func (f *Field) Config() Config { return f.cfg }

func (f *Field) View() View { return f.cfg.View }

// SetCentered toggles the projection offset between frames.
func (f *Field) SetCentered(on bool) { f.cfg.View.Centered = on }
