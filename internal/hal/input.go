package hal

import "sync"

// Fixed is an Input that always reports the same speed.
type Fixed float32

func (f Fixed) Speed() (float32, error) { return float32(f), nil }

// Crank accumulates rotary motion between polls, like a hand crank or a
// mouse wheel. Each poll drains the accumulated turn and adds Base, a
// throttle that applies every frame.
//
// Turn may be called from an event goroutine; Speed is called by the frame
// loop.
type Crank struct {
	mu      sync.Mutex
	base    float32
	pending float32
}

func NewCrank(base float32) *Crank {
	return &Crank{base: base}
}

// Turn adds delta to the motion reported by the next poll.
func (c *Crank) Turn(delta float32) {
	c.mu.Lock()
	c.pending += delta
	c.mu.Unlock()
}

// SetBase replaces the per-frame throttle.
func (c *Crank) SetBase(base float32) {
	c.mu.Lock()
	c.base = base
	c.mu.Unlock()
}

func (c *Crank) Base() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.base
}

func (c *Crank) Speed() (float32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.base + c.pending
	c.pending = 0
	return s, nil
}
