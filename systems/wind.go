package systems

import (
	"math"

	"github.com/pthm-cable/leaves/config"
)

// AmbientForce is the global wind vector driven by pointer movement.
// It is set from pointer deltas and decays toward zero every frame.
type AmbientForce struct {
	X, Y float64
}

// Set replaces the force with a scaled and clamped pointer delta.
// Non-finite deltas count as no movement.
func (f *AmbientForce) Set(dx, dy float64, cfg config.WindConfig) {
	if !Finite(dx) {
		dx = 0
	}
	if !Finite(dy) {
		dy = 0
	}
	f.X = clamp(dx*cfg.ScaleX, -cfg.MaxX, cfg.MaxX)
	f.Y = clamp(dy*cfg.ScaleY, -cfg.MaxY, cfg.MaxY)
}

// Decay applies one frame of exponential decay.
func (f *AmbientForce) Decay(cfg config.WindConfig) {
	f.X *= cfg.Decay
	f.Y *= cfg.Decay
	// Flush denormals so the force actually reaches zero
	if math.Abs(f.X) < 1e-9 {
		f.X = 0
	}
	if math.Abs(f.Y) < 1e-9 {
		f.Y = 0
	}
}

// Reset zeroes the force.
func (f *AmbientForce) Reset() {
	f.X, f.Y = 0, 0
}

// Magnitude returns the length of the force vector.
func (f AmbientForce) Magnitude() float64 {
	return math.Hypot(f.X, f.Y)
}
