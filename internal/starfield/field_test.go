package starfield

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/san-kum/warpfield/internal/hal"
)

var errBoom = errors.New("boom")

// failingRenderer fails the DrawLine call numbered failAt (zero based).
type failingRenderer struct {
	hal.Capture
	failAt   int
	attempts int
	clearErr error
}

func (r *failingRenderer) Clear(c hal.Color) error {
	if r.clearErr != nil {
		return r.clearErr
	}
	r.attempts = 0
	return r.Capture.Clear(c)
}

func (r *failingRenderer) DrawLine(from, to hal.Point, th int, c hal.Color) error {
	n := r.attempts
	r.attempts++
	if n == r.failAt {
		return errBoom
	}
	return r.Capture.DrawLine(from, to, th, c)
}

type failingDisplay struct{}

func (failingDisplay) SetRefreshRate(float32) error { return errBoom }

type failingInput struct{}

func (failingInput) Speed() (float32, error) { return 0, errBoom }

// speeds replays a fixed sequence, repeating the last value.
type speeds struct {
	seq []float32
	i   int
}

func (s *speeds) Speed() (float32, error) {
	v := s.seq[len(s.seq)-1]
	if s.i < len(s.seq) {
		v = s.seq[s.i]
	}
	s.i++
	return v, nil
}

func newTestField(t *testing.T, cfg Config, r hal.Renderer, in hal.Input) *Field {
	t.Helper()
	f, err := New(cfg, Ports{Display: hal.Discard{}, Renderer: r, Input: in})
	if err != nil {
		t.Fatalf("new field: %v", err)
	}
	return f
}

func TestNewInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"no stars", func(c *Config) { c.Stars = 0 }, ErrStarCount},
		{"too many stars", func(c *Config) { c.Stars = MaxStars + 1 }, ErrStarCount},
		{"zero width", func(c *Config) { c.View.Width = 0 }, ErrView},
		{"negative height", func(c *Config) { c.View.Height = -240 }, ErrView},
		{"nan scale", func(c *Config) { c.View.Scale = float32(math.NaN()) }, ErrView},
		{"bad recycle mode", func(c *Config) { c.View.Recycle = 7 }, ErrView},
		{"zero refresh", func(c *Config) { c.RefreshRate = 0 }, ErrRefreshRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			_, err := New(cfg, Ports{Display: hal.Discard{}, Renderer: hal.Discard{}, Input: hal.Fixed(1)})
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestNewMissingPorts(t *testing.T) {
	_, err := New(DefaultConfig(), Ports{Display: hal.Discard{}, Input: hal.Fixed(1)})
	if !errors.Is(err, ErrPorts) {
		t.Errorf("expected ErrPorts, got %v", err)
	}
}

func TestNewSetsRefreshRate(t *testing.T) {
	var c hal.Capture
	_, err := New(DefaultConfig(), Ports{Display: &c, Renderer: &c, Input: hal.Fixed(1)})
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if c.Rate != DefaultRefreshRate {
		t.Errorf("expected refresh rate %d, got %v", DefaultRefreshRate, c.Rate)
	}
	if c.Clears != 0 {
		t.Error("construction should not draw")
	}
}

func TestNewDisplayFailure(t *testing.T) {
	_, err := New(DefaultConfig(), Ports{Display: failingDisplay{}, Renderer: hal.Discard{}, Input: hal.Fixed(1)})
	if !errors.Is(err, errBoom) {
		t.Errorf("expected display error, got %v", err)
	}
}

func TestUpdateOneLinePerStar(t *testing.T) {
	var c hal.Capture
	cfg := DefaultConfig()
	cfg.Stars = 17
	f := newTestField(t, cfg, &c, hal.Fixed(3))

	for frame := 1; frame <= 5; frame++ {
		if err := f.Update(); err != nil {
			t.Fatalf("frame %d: %v", frame, err)
		}
		if len(c.Lines) != cfg.Stars {
			t.Errorf("frame %d: expected %d lines, got %d", frame, cfg.Stars, len(c.Lines))
		}
		if c.Clears != frame {
			t.Errorf("expected %d clears, got %d", frame, c.Clears)
		}
		if c.Background != hal.Black {
			t.Errorf("expected black background, got %v", c.Background)
		}
	}
	if f.Frame() != 5 {
		t.Errorf("expected 5 frames, got %d", f.Frame())
	}
}

func TestUpdateAbortsOnDrawError(t *testing.T) {
	r := &failingRenderer{failAt: 4}
	cfg := DefaultConfig()
	cfg.Stars = 10
	f := newTestField(t, cfg, r, hal.Fixed(1))

	err := f.Update()

	var fe *FrameError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FrameError, got %v", err)
	}
	if fe.Star != 4 || fe.Frame != 0 || fe.Op != "draw" {
		t.Errorf("unexpected frame error %+v", fe)
	}
	if !errors.Is(err, errBoom) {
		t.Error("frame error should unwrap to the renderer error")
	}
	if r.attempts != 5 {
		t.Errorf("expected drawing to stop after 5 attempts, got %d", r.attempts)
	}
	if f.Frame() != 0 {
		t.Errorf("aborted frame must not count, got %d", f.Frame())
	}
}

func TestUpdateAbortsOnClearAndInputError(t *testing.T) {
	cfg := DefaultConfig()

	r := &failingRenderer{failAt: -1, clearErr: errBoom}
	f := newTestField(t, cfg, r, hal.Fixed(1))
	if err := f.Update(); !errors.Is(err, errBoom) {
		t.Errorf("expected clear error, got %v", err)
	}
	if r.attempts != 0 {
		t.Error("no star should be drawn after a failed clear")
	}

	var c hal.Capture
	f = newTestField(t, cfg, &c, failingInput{})
	err := f.Update()
	var fe *FrameError
	if !errors.As(err, &fe) || fe.Op != "input" || fe.Star != -1 {
		t.Errorf("expected input frame error, got %v", err)
	}
	if len(c.Lines) != 0 {
		t.Error("no star should be drawn after a failed poll")
	}
}

func TestNegativeSpeedClamped(t *testing.T) {
	cfg := DefaultConfig()
	f := newTestField(t, cfg, hal.Discard{}, &speeds{seq: []float32{4, -10, float32(math.NaN()), 2}})

	if err := f.Update(); err != nil {
		t.Fatal(err)
	}
	for frame := 0; frame < 10; frame++ {
		before := f.Stars()
		if err := f.Update(); err != nil {
			t.Fatal(err)
		}
		after := f.Stars()
		for i := range before {
			if after[i].Z > before[i].Z && after[i].Z != cfg.View.Width {
				t.Fatalf("frame %d star %d moved backwards: %v -> %v", frame, i, before[i].Z, after[i].Z)
			}
		}
		if s := f.LastStats().Speed; s < 0 {
			t.Fatalf("negative speed %v applied", s)
		}
	}
}

func TestDeterminismUnderFixedSeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 1234
	seq := []float32{1, 7.5, 0, 3, 12, 0.25, 40, 2}

	a := newTestField(t, cfg, hal.Discard{}, &speeds{seq: seq})
	b := newTestField(t, cfg, hal.Discard{}, &speeds{seq: seq})

	for frame := 0; frame < 200; frame++ {
		sa, sb := a.Stars(), b.Stars()
		for i := range sa {
			if sa[i] != sb[i] {
				t.Fatalf("frame %d star %d: %+v != %+v", frame, i, sa[i], sb[i])
			}
		}
		if err := a.Update(); err != nil {
			t.Fatal(err)
		}
		if err := b.Update(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestCollectionSizeConstant(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Stars = 42
	f := newTestField(t, cfg, hal.Discard{}, hal.Fixed(25))

	for frame := 0; frame < 100; frame++ {
		if f.Len() != 42 || len(f.Stars()) != 42 {
			t.Fatalf("frame %d: collection size changed to %d", frame, f.Len())
		}
		if err := f.Update(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestDepthGuard(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Stars = MaxStars
	f := newTestField(t, cfg, hal.Discard{}, &speeds{seq: []float32{0, 0.9, 1, 399, 5, 0.001, 250, 1.5}})

	for frame := 0; frame < 300; frame++ {
		if err := f.Update(); err != nil {
			t.Fatal(err)
		}
		for i, s := range f.Stars() {
			if s.Z < RecycleDepth || s.PZ < RecycleDepth {
				t.Fatalf("frame %d star %d: depth %v/%v below %v", frame, i, s.Z, s.PZ, RecycleDepth)
			}
		}
	}
}

func TestEndToEndHandheld(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Stars = 3
	cfg.Seed = 0
	f := newTestField(t, cfg, hal.Discard{}, hal.Fixed(5))

	initial := f.Stars()
	firstRecycle := make([]int, len(initial))
	for i, s := range initial {
		if s.Z < 0 || s.Z >= 400 {
			t.Fatalf("star %d: initial z %v outside [0, 400)", i, s.Z)
		}
		z := s.Z
		for k := 1; ; k++ {
			z -= 5
			if z < RecycleDepth {
				firstRecycle[i] = k
				break
			}
		}
	}

	recycledAt := make([]int, len(initial))
	prev := initial
	for step := 1; step <= 80; step++ {
		if err := f.Update(); err != nil {
			t.Fatal(err)
		}
		cur := f.Stars()
		for i := range cur {
			if recycledAt[i] == 0 && cur[i].Z > prev[i].Z {
				recycledAt[i] = step
				if cur[i].Z != 400 || cur[i].PZ != cur[i].Z {
					t.Errorf("star %d: recycled to z %v pz %v", i, cur[i].Z, cur[i].PZ)
				}
			}
		}
		prev = cur

		if step == 40 {
			for i, s := range initial {
				if s.Z < 201 && recycledAt[i] == 0 {
					t.Errorf("star %d (z0 %v) not recycled within 40 steps", i, s.Z)
				}
			}
		}
	}

	for i := range initial {
		if recycledAt[i] != firstRecycle[i] {
			t.Errorf("star %d (z0 %v): expected first recycle at step %d, got %d", i, initial[i].Z, firstRecycle[i], recycledAt[i])
		}
	}
}

func TestClockSeed(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	cfg := DefaultConfig()
	cfg.ClockSeed = true
	f, err := New(cfg, Ports{Display: hal.Discard{}, Renderer: hal.Discard{}, Input: hal.Fixed(1), Clock: hal.FixedClock(at)})
	if err != nil {
		t.Fatal(err)
	}
	if f.Seed() != uint64(at.Unix()) {
		t.Errorf("expected seed %d, got %d", at.Unix(), f.Seed())
	}

	cfg.ClockSeed = false
	cfg.Seed = uint64(at.Unix())
	g := newTestField(t, cfg, hal.Discard{}, hal.Fixed(1))
	if f.Star(0) != g.Star(0) {
		t.Error("clock seeded field should replay from its reported seed")
	}
}

func TestFrameStats(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Stars = 50
	f := newTestField(t, cfg, hal.Discard{}, hal.Fixed(500))

	if err := f.Update(); err != nil {
		t.Fatal(err)
	}
	st := f.LastStats()
	if st.Recycled != 50 {
		t.Errorf("speed beyond the far plane should recycle all stars, got %d", st.Recycled)
	}
	if st.MeanDepth != 400 {
		t.Errorf("expected mean depth 400, got %v", st.MeanDepth)
	}
	if st.MeanStreak != 0 {
		t.Errorf("fresh stars draw dots, got mean streak %v", st.MeanStreak)
	}
	if st.Frame != 0 || f.Frame() != 1 {
		t.Errorf("unexpected frame numbering %d/%d", st.Frame, f.Frame())
	}
}
