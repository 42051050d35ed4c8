package telemetry

import (
	"math"
	"time"
)

// FPSSampler estimates the frame rate over consecutive fixed windows.
type FPSSampler struct {
	window  time.Duration
	frames  int
	start   time.Duration
	started bool
	last    float64
}

// NewFPSSampler creates a sampler that reports once per window.
func NewFPSSampler(window time.Duration) *FPSSampler {
	if window <= 0 {
		window = time.Second
	}
	return &FPSSampler{window: window}
}

// Frame records a frame at loop time now. Once a full window has elapsed it
// returns the rounded rate and true, and starts the next window.
func (s *FPSSampler) Frame(now time.Duration) (float64, bool) {
	if !s.started {
		s.start = now
		s.started = true
		s.frames = 0
		return 0, false
	}

	s.frames++
	elapsed := now - s.start
	if elapsed < s.window {
		return 0, false
	}

	fps := math.Round(float64(s.frames) * float64(time.Second) / float64(elapsed))
	s.last = fps
	s.frames = 0
	s.start = now
	return fps, true
}

// Reset discards the current window. Call it after a pause so the gap is not
// measured as a slow frame.
func (s *FPSSampler) Reset() {
	s.started = false
	s.frames = 0
}

// Last returns the most recent completed estimate (0 before the first window).
func (s *FPSSampler) Last() float64 {
	return s.last
}
