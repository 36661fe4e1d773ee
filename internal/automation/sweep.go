package automation

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/warpfield/internal/hal"
	"github.com/san-kum/warpfield/internal/sim"
	"github.com/san-kum/warpfield/internal/starfield"
)

// SweepParams lists the parameters a sweep can vary.
var SweepParams = []string{"stars", "speed", "scale", "width", "height"}

// Sweep records one fixed-throttle run per value of Param, spaced evenly
// from Min to Max.
type Sweep struct {
	Param  string
	Min    float64
	Max    float64
	Steps  int
	Frames int
	Speed  float32
}

type SweepResult struct {
	Value   float64
	Seed    uint64
	Metrics map[string]float64
}

func (sw Sweep) Values() []float64 {
	if sw.Steps == 1 {
		return []float64{sw.Min}
	}
	vals := make([]float64, sw.Steps)
	step := (sw.Max - sw.Min) / float64(sw.Steps-1)
	for i := range vals {
		vals[i] = sw.Min + float64(i)*step
	}
	return vals
}

func (sw Sweep) validate() error {
	if sw.Steps < 1 {
		return fmt.Errorf("%w: sweep needs at least one step", ErrScenario)
	}
	if sw.Frames <= 0 {
		return fmt.Errorf("%w: sweep frames %d", ErrScenario, sw.Frames)
	}
	for _, p := range SweepParams {
		if p == sw.Param {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown sweep parameter %q (available: %v)", ErrScenario, sw.Param, SweepParams)
}

// apply sets the swept parameter on fc and returns the throttle to run at.
func (sw Sweep) apply(fc *starfield.Config, v float64) float32 {
	speed := sw.Speed
	switch sw.Param {
	case "stars":
		fc.Stars = int(math.Round(v))
	case "speed":
		speed = float32(v)
	case "scale":
		fc.View.Scale = float32(v)
	case "width":
		fc.View.Width = float32(v)
	case "height":
		fc.View.Height = float32(v)
	}
	return speed
}

// RunSweep runs the sweep in order. Every run uses fc's seed so the values
// are compared on the same sky.
func RunSweep(ctx context.Context, sw Sweep, fc starfield.Config, newMetrics func() []sim.Metric) ([]SweepResult, error) {
	if err := sw.validate(); err != nil {
		return nil, err
	}

	results := make([]SweepResult, 0, sw.Steps)
	for i, v := range sw.Values() {
		runCfg := fc
		speed := sw.apply(&runCfg, v)

		r := sim.New()
		if newMetrics != nil {
			for _, m := range newMetrics() {
				r.AddMetric(m)
			}
		}
		res, err := r.Run(ctx, runCfg, sim.Config{
			Frames: sw.Frames,
			Input:  hal.Fixed(speed),
		})
		if err != nil {
			return results, fmt.Errorf("sweep %s=%g: %w", sw.Param, v, err)
		}

		slog.Debug("sweep step", "step", i+1, "of", sw.Steps, "param", sw.Param, "value", v)
		results = append(results, SweepResult{Value: v, Seed: res.Seed, Metrics: res.Metrics})
	}
	return results, nil
}
