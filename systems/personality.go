package systems

import (
	"math"

	"github.com/pthm-cable/leaves/components"
	"github.com/pthm-cable/leaves/config"
)

// Trait ranges. Every draw is an independent uniform sample.
const (
	swayAmpMin, swayAmpMax     = 20.0, 45.0
	fallSpeedMin, fallSpeedMax = 0.6, 1.4
	driftSpread                = 0.4
	spinPersonalitySpread      = 1.2
	swayRespMin, swayRespMax   = 0.5, 1.5
	fallRespMin, fallRespMax   = 0.7, 1.3
	massMin, massMax           = 0.4, 1.2
	scaleMin, scaleMax         = 0.7, 1.3
	staticSpinSpread           = 1.2
	dynamicSpinSpread          = 1.0 // Spawned leaves start with gentler spin
)

// NewTraits draws a fresh personality anchored at anchorX.
func NewTraits(rng Rand, anchorX float64) components.Traits {
	tr := components.Traits{
		AnchorX:             anchorX,
		BaseSwayAmplitude:   uniform(rng, swayAmpMin, swayAmpMax),
		PersonalityX:        centred(rng) * driftSpread,
		PersonalityRotation: centred(rng) * spinPersonalitySpread,
		Mass:                uniform(rng, massMin, massMax),
	}
	redrawMotion(&tr, rng)
	return tr
}

// redrawMotion redraws the traits a recycled leaf gets fresh values for.
func redrawMotion(tr *components.Traits, rng Rand) {
	tr.BaseFallSpeed = uniform(rng, fallSpeedMin, fallSpeedMax)
	tr.Phase = rng.Float64() * 2 * math.Pi
	tr.SwayResponse = uniform(rng, swayRespMin, swayRespMax)
	tr.FallResponse = uniform(rng, fallRespMin, fallRespMax)
	tr.Turbulence = rng.Float64()
}

// SpawnY draws a start height above the top edge.
func SpawnY(rng Rand, b config.BoundsConfig) float64 {
	return b.SpawnTop - rng.Float64()*b.SpawnDepth
}

// NewKinematics draws the starting motion state of a leaf at x.
func NewKinematics(rng Rand, x float64, dynamic bool, b config.BoundsConfig) components.Kinematics {
	spread := staticSpinSpread
	if dynamic {
		spread = dynamicSpinSpread
	}
	return components.Kinematics{
		X:             x,
		Y:             SpawnY(rng, b),
		Rotation:      rng.Float64() * 360,
		RotationSpeed: centred(rng) * spread,
		Scale:         uniform(rng, scaleMin, scaleMax),
	}
}

// Recycle returns a static leaf to a fresh state above the field. Its anchor,
// scale and identity are kept.
func Recycle(k *components.Kinematics, tr *components.Traits, rng Rand, b config.BoundsConfig) {
	k.Y = SpawnY(rng, b)
	k.X = tr.AnchorX
	k.Rotation = rng.Float64() * 360
	k.RotationSpeed = centred(rng) * staticSpinSpread
	k.MomentumX, k.MomentumY = 0, 0
	redrawMotion(tr, rng)
}
