package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/leaves/components"
)

// stillTraits has no sway, drift or spin personality.
func stillTraits(anchor float64) components.Traits {
	return components.Traits{
		AnchorX:       anchor,
		BaseFallSpeed: 1,
		FallResponse:  1,
	}
}

func TestSway_Bounded(t *testing.T) {
	m := testConfig(t).Motion
	rng := rand.New(rand.NewSource(3))

	limit := (m.PrimaryWeight+m.SecondaryWeight+m.TertiaryWeight)*swayRespMax*swayAmpMax +
		driftSpread/2*m.DriftOffset
	for i := 0; i < 200; i++ {
		tr := NewTraits(rng, 0)
		for ts := 0.0; ts < 30; ts += 0.37 {
			require.LessOrEqual(t, math.Abs(Sway(ts, &tr, m)), limit)
		}
	}
}

func TestFall_AlwaysDownward(t *testing.T) {
	m := testConfig(t).Motion
	rng := rand.New(rand.NewSource(4))

	for i := 0; i < 200; i++ {
		tr := NewTraits(rng, 0)
		k := components.Kinematics{}
		for ts := 0.0; ts < 20; ts += 0.5 {
			y := k.Y
			Fall(&k, &tr, ts, m)
			require.Greater(t, k.Y, y)
		}
	}
}

func TestIntegrate_MomentumSmoothing(t *testing.T) {
	m := testConfig(t).Motion

	tr := stillTraits(500)
	k := components.Kinematics{X: 600, Scale: 1}

	Integrate(&k, &tr, 0, Avoidance{}, m)

	// Moves 15% of the gap rather than snapping to the anchor
	assert.InDelta(t, 585, k.X, 1e-9)
	assert.InDelta(t, -15*m.MomentumDecayX, k.MomentumX, 1e-9)
	assert.Zero(t, k.Y)

	for i := 0; i < 600; i++ {
		Integrate(&k, &tr, 0, Avoidance{}, m)
	}
	assert.InDelta(t, 500, k.X, 0.5)
}

func TestIntegrate_AvoidancePushesAndSpins(t *testing.T) {
	m := testConfig(t).Motion

	tr := stillTraits(100)
	tr.PersonalityRotation = 1
	k := components.Kinematics{X: 100, Y: 200}

	Integrate(&k, &tr, 0, Avoidance{VX: 2, VY: 1, Spin: 0.5}, m)

	assert.Greater(t, k.X, 100.0)
	assert.InDelta(t, 200+1+1*m.VerticalGain*m.VerticalApply, k.Y, 1e-9)
	assert.NotZero(t, k.Rotation)
	assert.InDelta(t, 0.5*m.SpinDecayBase, k.RotationSpeed, 1e-9)
}

func TestBelowBottom(t *testing.T) {
	b := testConfig(t).Bounds

	assert.False(t, BelowBottom(&components.Kinematics{Y: 800 + b.BottomMargin}, 800, b))
	assert.True(t, BelowBottom(&components.Kinematics{Y: 800 + b.BottomMargin + 0.1}, 800, b))
}

func TestClampSides(t *testing.T) {
	b := testConfig(t).Bounds

	tests := []struct {
		name        string
		x, momentum float64
		wantX       float64
		wantMom     float64
		clamped     bool
	}{
		{"inside", 640, -3, 640, -3, false},
		{"left edge", -b.SideMargin - 1, -3, -b.SideMargin + b.SideInset, 0, true},
		{"left keeps inward momentum", -b.SideMargin - 1, 2, -b.SideMargin + b.SideInset, 2, true},
		{"right edge", 1280 + b.SideMargin + 1, 3, 1280 + b.SideMargin - b.SideInset, 0, true},
		{"right keeps inward momentum", 1280 + b.SideMargin + 1, -2, 1280 + b.SideMargin - b.SideInset, -2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := components.Kinematics{X: tt.x, MomentumX: tt.momentum}
			assert.Equal(t, tt.clamped, ClampSides(&k, 1280, b))
			assert.Equal(t, tt.wantX, k.X)
			assert.Equal(t, tt.wantMom, k.MomentumX)
		})
	}
}

func TestRender_ScaleStaysPositive(t *testing.T) {
	m := testConfig(t).Motion

	k := components.Kinematics{X: 10, Y: 20, Rotation: 725, Scale: scaleMin}
	for ts := 0.0; ts < 20; ts += 0.1 {
		for _, infl := range []float64{0, 0.5, 1, 7} {
			tf := Render(&k, 3, ts, infl, m)
			require.Greater(t, tf.Scale, 0.0)
		}
	}

	calm := Render(&k, 3, 0, 0, m)
	pushed := Render(&k, 3, 0, 1, m)
	assert.Less(t, pushed.Scale, calm.Scale)
	assert.Equal(t, 725.0, calm.Rotation, "rotation is not normalised")
	assert.Equal(t, 10.0, calm.X)
	assert.Equal(t, 1.0, pushed.Influence)
}
