// Package automation drives the starfield without a person at the crank:
// scripted throttle scenarios loaded from YAML, and parameter sweeps that
// record the frame metrics across a range of values.
package automation

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/warpfield/internal/hal"
	"github.com/san-kum/warpfield/internal/sim"
	"github.com/san-kum/warpfield/internal/starfield"
	"gopkg.in/yaml.v3"
)

var (
	ErrScenario = errors.New("automation: invalid scenario")
	// ErrExhausted is returned by a Script polled past its last step.
	ErrExhausted = errors.New("automation: script exhausted")
)

// Scenario is a scripted crank sequence.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step holds the throttle for Frames frames. Turn is a one-off crank
// impulse applied on the step's first frame.
type Step struct {
	Label  string  `yaml:"label"`
	Frames int     `yaml:"frames"`
	Speed  float32 `yaml:"speed"`
	Turn   float32 `yaml:"turn"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScenario, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (sc *Scenario) Validate() error {
	if len(sc.Steps) == 0 {
		return fmt.Errorf("%w: no steps", ErrScenario)
	}
	for i, st := range sc.Steps {
		if st.Frames <= 0 {
			return fmt.Errorf("%w: step %d has %d frames", ErrScenario, i+1, st.Frames)
		}
	}
	return nil
}

// TotalFrames is the number of frames the scenario scripts.
func (sc *Scenario) TotalFrames() int {
	n := 0
	for _, st := range sc.Steps {
		n += st.Frames
	}
	return n
}

// Script plays a scenario as the field's input.
type Script struct {
	steps []Step
	crank *hal.Crank
	next  int
	left  int
}

func NewScript(sc *Scenario) *Script {
	return &Script{steps: sc.Steps, crank: hal.NewCrank(0)}
}

func (s *Script) Speed() (float32, error) {
	for s.left == 0 {
		if s.next >= len(s.steps) {
			return 0, ErrExhausted
		}
		st := s.steps[s.next]
		s.next++
		s.left = st.Frames
		s.crank.SetBase(st.Speed)
		s.crank.Turn(st.Turn)
	}
	s.left--
	return s.crank.Speed()
}

// Step returns the index of the step being played, or -1 before the first
// poll.
func (s *Script) Step() int {
	return s.next - 1
}

// RunScenario records one run of sc through r.
func RunScenario(ctx context.Context, sc *Scenario, fc starfield.Config, r *sim.Recorder, sampleEvery int) (*sim.Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return r.Run(ctx, fc, sim.Config{
		Frames:      sc.TotalFrames(),
		SampleEvery: sampleEvery,
		Input:       NewScript(sc),
	})
}
