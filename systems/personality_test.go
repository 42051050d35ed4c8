package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestNewTraits_Ranges(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	const n = 5000
	sway := make([]float64, n)
	drift := make([]float64, n)
	for i := range n {
		tr := NewTraits(rng, 250)
		require.Equal(t, 250.0, tr.AnchorX)
		require.GreaterOrEqual(t, tr.BaseSwayAmplitude, swayAmpMin)
		require.Less(t, tr.BaseSwayAmplitude, swayAmpMax)
		require.GreaterOrEqual(t, tr.BaseFallSpeed, fallSpeedMin)
		require.Less(t, tr.BaseFallSpeed, fallSpeedMax)
		require.LessOrEqual(t, math.Abs(tr.PersonalityX), driftSpread/2)
		require.LessOrEqual(t, math.Abs(tr.PersonalityRotation), spinPersonalitySpread/2)
		require.GreaterOrEqual(t, tr.Phase, 0.0)
		require.Less(t, tr.Phase, 2*math.Pi)
		require.GreaterOrEqual(t, tr.SwayResponse, swayRespMin)
		require.GreaterOrEqual(t, tr.FallResponse, fallRespMin)
		require.GreaterOrEqual(t, tr.Turbulence, 0.0)
		require.Less(t, tr.Turbulence, 1.0)
		sway[i] = tr.BaseSwayAmplitude
		drift[i] = tr.PersonalityX
	}

	// Uniform draws: mean at the midpoint, stddev of width/sqrt(12)
	mean, std := stat.MeanStdDev(sway, nil)
	assert.InDelta(t, (swayAmpMin+swayAmpMax)/2, mean, 0.5)
	assert.InDelta(t, (swayAmpMax-swayAmpMin)/math.Sqrt(12), std, 0.3)
	assert.InDelta(t, 0, stat.Mean(drift, nil), 0.01)
}

func TestNewKinematics(t *testing.T) {
	b := testConfig(t).Bounds
	rng := rand.New(rand.NewSource(8))

	for i := 0; i < 1000; i++ {
		dynamic := i%2 == 0
		k := NewKinematics(rng, 42, dynamic, b)
		require.Equal(t, 42.0, k.X)
		require.LessOrEqual(t, k.Y, b.SpawnTop)
		require.Greater(t, k.Y, b.SpawnTop-b.SpawnDepth)
		require.GreaterOrEqual(t, k.Scale, scaleMin)
		require.Less(t, k.Scale, scaleMax)
		require.GreaterOrEqual(t, k.Rotation, 0.0)
		require.Less(t, k.Rotation, 360.0)
		spread := staticSpinSpread
		if dynamic {
			spread = dynamicSpinSpread
		}
		require.LessOrEqual(t, math.Abs(k.RotationSpeed), spread/2)
		require.Zero(t, k.MomentumX)
	}
}

func TestRecycle_KeepsAnchorAndScale(t *testing.T) {
	b := testConfig(t).Bounds
	rng := rand.New(rand.NewSource(9))

	tr := NewTraits(rng, 300)
	k := NewKinematics(rng, 300, false, b)
	k.X, k.Y = 340, 1000
	k.MomentumX, k.MomentumY = 3, 4
	scale := k.Scale
	sway, drift := tr.BaseSwayAmplitude, tr.PersonalityX

	Recycle(&k, &tr, rng, b)

	assert.Equal(t, 300.0, k.X)
	assert.Less(t, k.Y, 0.0)
	assert.Equal(t, scale, k.Scale)
	assert.Zero(t, k.MomentumX)
	assert.Zero(t, k.MomentumY)
	assert.Equal(t, 300.0, tr.AnchorX)
	assert.Equal(t, sway, tr.BaseSwayAmplitude)
	assert.Equal(t, drift, tr.PersonalityX)
}
