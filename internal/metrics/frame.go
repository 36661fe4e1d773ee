// Package metrics folds per-frame starfield statistics into scalar values.
package metrics

import (
	"github.com/san-kum/warpfield/internal/starfield"
)

// RecycleRate is the mean number of stars recycled per frame.
type RecycleRate struct {
	name     string
	recycled int
	samples  int
}

func NewRecycleRate() *RecycleRate {
	return &RecycleRate{name: "recycle_rate"}
}

func (r *RecycleRate) Name() string { return r.name }

func (r *RecycleRate) Observe(st starfield.FrameStats) {
	r.recycled += st.Recycled
	r.samples++
}

func (r *RecycleRate) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return float64(r.recycled) / float64(r.samples)
}

func (r *RecycleRate) Reset() {
	r.recycled = 0
	r.samples = 0
}

// MeanDepth averages the per-frame mean star depth.
type MeanDepth struct {
	name    string
	sum     float64
	samples int
}

func NewMeanDepth() *MeanDepth {
	return &MeanDepth{name: "mean_depth"}
}

func (m *MeanDepth) Name() string { return m.name }

func (m *MeanDepth) Observe(st starfield.FrameStats) {
	m.sum += st.MeanDepth
	m.samples++
}

func (m *MeanDepth) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanDepth) Reset() {
	m.sum = 0
	m.samples = 0
}

// MeanStreak averages the per-frame mean streak length in pixels.
type MeanStreak struct {
	name    string
	sum     float64
	samples int
}

func NewMeanStreak() *MeanStreak {
	return &MeanStreak{name: "mean_streak"}
}

func (m *MeanStreak) Name() string { return m.name }

func (m *MeanStreak) Observe(st starfield.FrameStats) {
	m.sum += st.MeanStreak
	m.samples++
}

func (m *MeanStreak) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanStreak) Reset() {
	m.sum = 0
	m.samples = 0
}

// PeakSpeed is the highest speed seen in any frame.
type PeakSpeed struct {
	peak float32
}

func NewPeakSpeed() *PeakSpeed { return &PeakSpeed{} }

func (p *PeakSpeed) Name() string { return "peak_speed" }

func (p *PeakSpeed) Observe(st starfield.FrameStats) {
	p.peak = max(p.peak, st.Speed)
}

func (p *PeakSpeed) Value() float64 { return float64(p.peak) }

func (p *PeakSpeed) Reset() { p.peak = 0 }
