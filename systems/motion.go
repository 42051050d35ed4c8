package systems

import (
	"math"

	"github.com/pthm-cable/leaves/components"
	"github.com/pthm-cable/leaves/config"
)

// Per-frame leaf motion. Positions advance by a fixed amount per call rather
// than per second; t only drives the oscillators.

// Sway returns the horizontal offset from the anchor: three sines at different
// frequencies scaled by the leaf's sway response, plus its drift bias.
func Sway(t float64, tr *components.Traits, m config.MotionConfig) float64 {
	primary := math.Sin(t*m.PrimaryFreq+tr.Phase) * m.PrimaryWeight
	secondary := math.Sin(t*m.SecondaryFreq+tr.Phase*1.7) * m.SecondaryWeight
	tertiary := math.Sin(t*m.TertiaryFreq+tr.Phase*0.6) * m.TertiaryWeight
	natural := (primary + secondary + tertiary) * tr.SwayResponse
	return natural*tr.BaseSwayAmplitude + tr.PersonalityX*m.DriftOffset
}

// FallSpeed returns the vertical advance for this frame.
func FallSpeed(t float64, tr *components.Traits, m config.MotionConfig) float64 {
	vertical := math.Sin(t*m.VerticalFreq+tr.Phase*2) * m.VerticalWeight * tr.FallResponse
	turbulence := math.Sin(t*m.TurbulenceFreq+tr.Phase*4) * m.TurbulenceWeight * tr.Turbulence
	return tr.BaseFallSpeed * (1 + vertical + turbulence) * tr.FallResponse
}

// Fall advances the leaf vertically. Avoidance is evaluated after this, at the
// new position.
func Fall(k *components.Kinematics, tr *components.Traits, t float64, m config.MotionConfig) {
	k.Y += FallSpeed(t, tr, m)
}

// Integrate applies sway, avoidance, momentum smoothing and rotation for one frame.
func Integrate(k *components.Kinematics, tr *components.Traits, t float64, av Avoidance, m config.MotionConfig) {
	k.RotationSpeed += av.Spin

	targetX := tr.AnchorX + Sway(t, tr, m) + av.VX
	k.Y += av.VY

	// Exponential smoothing toward the target, not snapping
	k.MomentumX += (targetX - k.X) * m.MomentumBlend
	k.MomentumY += av.VY * m.VerticalGain

	k.X += k.MomentumX
	k.Y += k.MomentumY * m.VerticalApply

	k.MomentumX *= m.MomentumDecayX
	k.MomentumY *= m.MomentumDecayY

	wave := math.Sin(t*m.RotationWaveFreq+tr.Phase*3) * m.RotationWaveWeight * tr.PersonalityRotation
	air := math.Sin(t*m.AirFreq+tr.Phase*0.8) * m.AirWeight * tr.Turbulence
	k.Rotation += (k.RotationSpeed + wave + air) * m.RotationGain * tr.PersonalityRotation
	k.RotationSpeed *= m.SpinDecayBase + tr.Turbulence*m.SpinDecayTurbulence
}

// BelowBottom reports whether the leaf has left the field through the bottom.
func BelowBottom(k *components.Kinematics, height float64, b config.BoundsConfig) bool {
	return k.Y > height+b.BottomMargin
}

// ClampSides keeps the leaf within the side margins and zeroes momentum that
// would carry it back out. Returns true if the leaf was clamped.
func ClampSides(k *components.Kinematics, width float64, b config.BoundsConfig) bool {
	switch {
	case k.X < -b.SideMargin:
		k.X = -b.SideMargin + b.SideInset
		k.MomentumX = math.Max(0, k.MomentumX)
		return true
	case k.X > width+b.SideMargin:
		k.X = width + b.SideMargin - b.SideInset
		k.MomentumX = math.Min(0, k.MomentumX)
		return true
	}
	return false
}

// Render builds the display transform: position, rotation and a breathing scale
// that shrinks slightly with pointer influence.
func Render(k *components.Kinematics, id uint64, t, influence float64, m config.MotionConfig) components.Transform {
	breath := 1 + math.Sin(t*m.BreathFreq+float64(id))*m.BreathAmplitude
	shrink := 1 - clamp(influence, 0, 1)*m.AvoidShrink
	return components.Transform{
		X:         k.X,
		Y:         k.Y,
		Rotation:  k.Rotation,
		Scale:     k.Scale * breath * shrink,
		Influence: influence,
	}
}
