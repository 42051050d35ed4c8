package systems

import "time"

// Ripple is the expanding ring left by a touch.
type Ripple struct {
	X, Y float64
	Born time.Duration
}

// RippleSystem manages touch ripples. Ripples age out by time rather than by
// timer so a paused field never holds a pending removal.
type RippleSystem struct {
	Ripples    []Ripple
	lifetime   time.Duration
	maxRipples int
}

// NewRippleSystem creates a ripple system whose ripples last lifetime.
func NewRippleSystem(lifetime time.Duration) *RippleSystem {
	return &RippleSystem{
		Ripples:    make([]Ripple, 0, 16),
		lifetime:   lifetime,
		maxRipples: 64,
	}
}

// Emit adds a ripple at (x, y). Non-finite positions are ignored.
func (s *RippleSystem) Emit(x, y float64, now time.Duration) {
	if !FinitePoint(x, y) || len(s.Ripples) >= s.maxRipples {
		return
	}
	s.Ripples = append(s.Ripples, Ripple{X: x, Y: y, Born: now})
}

// Update drops ripples older than the lifetime.
func (s *RippleSystem) Update(now time.Duration) {
	alive := 0
	for i := range s.Ripples {
		if now-s.Ripples[i].Born >= s.lifetime {
			continue
		}
		s.Ripples[alive] = s.Ripples[i]
		alive++
	}
	s.Ripples = s.Ripples[:alive]
}

// Progress returns how far through its lifetime r is, in [0, 1].
func (s *RippleSystem) Progress(r Ripple, now time.Duration) float64 {
	if s.lifetime <= 0 {
		return 1
	}
	return clamp(float64(now-r.Born)/float64(s.lifetime), 0, 1)
}

// Count returns the current number of live ripples.
func (s *RippleSystem) Count() int {
	return len(s.Ripples)
}
