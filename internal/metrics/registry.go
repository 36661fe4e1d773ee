package metrics

import "github.com/san-kum/warpfield/internal/sim"

// Standard returns a fresh set of every frame metric.
func Standard() []sim.Metric {
	return []sim.Metric{
		NewRecycleRate(),
		NewMeanDepth(),
		NewMeanStreak(),
		NewPeakSpeed(),
	}
}
