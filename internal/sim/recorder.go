package sim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/san-kum/warpfield/internal/hal"
	"github.com/san-kum/warpfield/internal/starfield"
)

var ErrConfig = errors.New("sim: invalid run config")

type Recorder struct {
	metrics   []Metric
	observers []Observer
}

func New() *Recorder {
	return &Recorder{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Recorder) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Recorder) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run builds a field from fc and advances it cfg.Frames times. On a frame
// error or cancellation the partial result is returned with the error.
func (r *Recorder) Run(ctx context.Context, fc starfield.Config, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	renderer := cfg.Renderer
	if renderer == nil {
		renderer = hal.Discard{}
	}
	var display hal.Display = hal.Discard{}
	if d, ok := renderer.(hal.Display); ok {
		display = d
	}

	f, err := starfield.New(fc, starfield.Ports{
		Display:  display,
		Renderer: renderer,
		Input:    cfg.Input,
	})
	if err != nil {
		return nil, err
	}

	result := &Result{
		Seed:    f.Seed(),
		Stats:   make([]starfield.FrameStats, 0, cfg.Frames),
		Metrics: make(map[string]float64),
	}
	for _, m := range r.metrics {
		m.Reset()
	}
	if cfg.SampleEvery > 0 {
		result.Snapshots = append(result.Snapshots, Snapshot{Frame: 0, Stars: f.Stars()})
	}

	start := time.Now()
	defer func() {
		result.Elapsed = time.Since(start)
		for _, m := range r.metrics {
			result.Metrics[m.Name()] = m.Value()
		}
	}()

	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := f.Update(); err != nil {
			return result, err
		}
		st := f.LastStats()
		result.Stats = append(result.Stats, st)

		for _, m := range r.metrics {
			m.Observe(st)
		}
		for _, obs := range r.observers {
			if err := obs.OnFrame(f, st); err != nil {
				return result, fmt.Errorf("sim: observer at frame %d: %w", st.Frame, err)
			}
		}
		if cfg.SampleEvery > 0 && f.Frame()%uint64(cfg.SampleEvery) == 0 {
			result.Snapshots = append(result.Snapshots, Snapshot{Frame: f.Frame(), Stars: f.Stars()})
		}
	}
	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", ErrConfig, cfg.Frames)
	}
	if cfg.SampleEvery < 0 {
		return fmt.Errorf("%w: sample interval must not be negative, got %d", ErrConfig, cfg.SampleEvery)
	}
	if cfg.Input == nil {
		return fmt.Errorf("%w: input required", ErrConfig)
	}
	return nil
}
