package starfield

import (
	"errors"
	"fmt"
)

var (
	// ErrStarCount indicates a star count outside [1, MaxStars].
	ErrStarCount = errors.New("starfield: star count out of range")

	// ErrView indicates a non-positive or non-finite display size or scale.
	ErrView = errors.New("starfield: invalid view")

	// ErrRefreshRate indicates a non-positive refresh rate.
	ErrRefreshRate = errors.New("starfield: refresh rate must be positive")

	// ErrPorts indicates a missing display, renderer or input.
	ErrPorts = errors.New("starfield: missing port")
)

// FrameError reports a collaborator failure that aborted a frame.
type FrameError struct {
	Frame uint64
	// Star is the index being drawn, or -1 when the frame failed before
	// any star was drawn.
	Star int
	Op   string
	Err  error
}

func (e *FrameError) Error() string {
	if e.Star < 0 {
		return fmt.Sprintf("starfield: frame %d: %s: %v", e.Frame, e.Op, e.Err)
	}
	return fmt.Sprintf("starfield: frame %d star %d: %s: %v", e.Frame, e.Star, e.Op, e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}
