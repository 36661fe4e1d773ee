// Package sim runs a starfield headlessly for a fixed number of frames,
// folding per-frame statistics into metrics and sampling star states.
package sim

import (
	"time"

	"github.com/san-kum/warpfield/internal/hal"
	"github.com/san-kum/warpfield/internal/starfield"
)

type Metric interface {
	Name() string
	Observe(st starfield.FrameStats)
	Value() float64
	Reset()
}

// Observer sees the field after every completed frame. An error stops the
// run.
type Observer interface {
	OnFrame(f *starfield.Field, st starfield.FrameStats) error
}

type Config struct {
	Frames int
	// SampleEvery keeps the stars of the initial placement and of every
	// n-th frame. Zero keeps none.
	SampleEvery int
	// Renderer defaults to hal.Discard. When it also implements
	// hal.Display it receives the refresh rate.
	Renderer hal.Renderer
	Input    hal.Input
}

// Snapshot is the star collection after Frame completed frames.
type Snapshot struct {
	Frame uint64
	Stars []starfield.Star
}

type Result struct {
	Seed      uint64
	Stats     []starfield.FrameStats
	Snapshots []Snapshot
	Metrics   map[string]float64
	Elapsed   time.Duration
}

// FramesPerSecond is the headless throughput of the run.
func (r *Result) FramesPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(len(r.Stats)) / r.Elapsed.Seconds()
}
