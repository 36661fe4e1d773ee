package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/warpfield/internal/starfield"
	"golang.org/x/sync/errgroup"
)

// Ensemble records the same configuration under consecutive seeds in
// parallel. Each run gets its own metrics from newMetrics and a discarding
// renderer; the input is shared, so it must be stateless (hal.Fixed).
type Ensemble struct {
	newMetrics func() []Metric
	numRuns    int
	seedStart  uint64
}

func NewEnsemble(newMetrics func() []Metric, numRuns int, seedStart uint64) *Ensemble {
	return &Ensemble{newMetrics: newMetrics, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, fc starfield.Config, cfg Config) ([]*Result, error) {
	if e.numRuns < 1 {
		return nil, fmt.Errorf("%w: runs must be positive, got %d", ErrConfig, e.numRuns)
	}
	results := make([]*Result, e.numRuns)
	cfg.Renderer = nil

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < e.numRuns; i++ {
		g.Go(func() error {
			fcCopy := fc
			fcCopy.Seed = e.seedStart + uint64(i)
			fcCopy.ClockSeed = false

			r := New()
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					r.AddMetric(m)
				}
			}
			res, err := r.Run(ctx, fcCopy, cfg)
			results[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
