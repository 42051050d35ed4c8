package systems

import (
	"math"

	"github.com/pthm-cable/leaves/config"
)

// Avoidance is the pointer response computed for one leaf in one frame.
type Avoidance struct {
	VX, VY    float64 // Avoidance velocity, pointing away from the pointer
	Influence float64 // Linear falloff in [0, 1], zero at the outer radius
	Strength  float64 // Influence plus the weighted inner-zone term
	Spin      float64 // Rotation speed impulse
}

// ComputeAvoidance evaluates the radial force field around the pointer at (px, py)
// for a leaf at (x, y). Outside the outer radius the result is zero. Inside the
// flutter radius a zero-mean jitter is drawn from rng.
func ComputeAvoidance(px, py, x, y float64, wind AmbientForce, cfg config.AvoidanceConfig, rng Rand) Avoidance {
	if !FinitePoint(px, py) || !FinitePoint(x, y) {
		return Avoidance{}
	}

	d := distance(px, py, x, y)
	if d >= cfg.OuterRadius {
		return Avoidance{}
	}

	var a Avoidance
	a.Influence = 1 - d/cfg.OuterRadius
	a.Strength = a.Influence
	if d < cfg.InnerRadius {
		inner := 1 - d/cfg.InnerRadius
		a.Strength += inner * cfg.InnerWeight
	}

	// Direction from the pointer toward the leaf. A leaf exactly on the
	// pointer gets atan2(0, 0) = 0, i.e. pushed to the right.
	angle := math.Atan2(y-py, x-px)
	a.VX = math.Cos(angle) * a.Strength * cfg.WeightX
	a.VY = math.Sin(angle) * a.Strength * cfg.WeightY

	if d < cfg.FlutterRadius {
		flutter := (cfg.FlutterRadius - d) / cfg.FlutterRadius
		a.VX += centred(rng) * flutter * cfg.JitterX
		a.VY += centred(rng) * flutter * cfg.JitterY
		a.Spin += flutter * cfg.FlutterSpin * centred(rng)
	}

	windInfluence := a.Influence * (1 - a.Strength*cfg.WindDamping)
	a.VX += wind.X * windInfluence * cfg.WindWeightX
	a.VY += wind.Y * windInfluence * cfg.WindWeightY

	a.Spin += a.Strength * cfg.AvoidSpin
	return a
}

// Magnitude returns the length of the avoidance velocity.
func (a Avoidance) Magnitude() float64 {
	return math.Hypot(a.VX, a.VY)
}
