// Package rng provides the seedable random source used to place stars.
package rng

import (
	"math"
	"math/rand/v2"

	"github.com/san-kum/warpfield/internal/hal"
)

// DefaultScale is the normalization divisor applied to raw draws before
// they are folded into a range.
const DefaultScale = 100

const goldenRatio64 = 0x9e3779b97f4a7c15

// Source is a deterministic PCG stream. It is not safe for concurrent use;
// the starfield owns exactly one and lends it to stars one at a time.
type Source struct {
	seed uint64
	r    *rand.Rand
}

// New returns a source seeded with seed. Equal seeds give equal streams.
func New(seed uint64) *Source {
	return &Source{
		seed: seed,
		r:    rand.New(rand.NewPCG(mix(seed), mix(seed+goldenRatio64))),
	}
}

// NewFromClock seeds from the clock's seconds since the epoch.
func NewFromClock(c hal.Clock) *Source {
	return New(uint64(c.Now().Unix()))
}

// Seed reports the seed the stream was created with.
func (s *Source) Seed() uint64 { return s.seed }

// Uint32 returns the next uniformly distributed 32-bit value.
func (s *Source) Uint32() uint32 { return s.r.Uint32() }

// Range folds a raw draw into [min, max): raw/scale modulo the span, offset
// by min. The fold is not perfectly uniform, which is fine for placing
// stars. A scale of 1 uses the raw integer directly.
func Range(raw uint32, min, max, scale float32) float32 {
	scaled := float32(raw) / scale
	return float32(math.Mod(float64(scaled), float64(max-min))) + min
}

// Between draws once and folds the value into [min, max).
func (s *Source) Between(min, max, scale float32) float32 {
	return Range(s.Uint32(), min, max, scale)
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
