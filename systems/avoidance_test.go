package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/leaves/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg
}

func TestComputeAvoidance_ZeroOutsideOuterRadius(t *testing.T) {
	cfg := testConfig(t).Avoidance
	rng := rand.New(rand.NewSource(1))

	for _, d := range []float64{120, 120.001, 150, 400, 1e6} {
		av := ComputeAvoidance(0, 0, d, 0, AmbientForce{X: 2, Y: 1}, cfg, rng)
		assert.Equal(t, Avoidance{}, av, "distance %v", d)
	}
}

func TestComputeAvoidance_FlutterBoundaryScenario(t *testing.T) {
	cfg := testConfig(t).Avoidance
	rng := rand.New(rand.NewSource(1))

	near := ComputeAvoidance(100, 100, 100, 160, AmbientForce{}, cfg, rng)
	far := ComputeAvoidance(100, 100, 100, 250, AmbientForce{}, cfg, rng)

	// Screen space grows downward: a leaf below the pointer is pushed further down
	assert.Greater(t, near.VY, 0.0)
	assert.InDelta(t, 0.0, near.VX, 1e-9)
	assert.Greater(t, math.Abs(near.VY), math.Abs(far.VY))
	assert.Equal(t, Avoidance{}, far)

	// influence 0.5, inner term 0.25 doubled
	assert.InDelta(t, 0.5, near.Influence, 1e-12)
	assert.InDelta(t, 1.0, near.Strength, 1e-12)
	assert.InDelta(t, 1.2, near.VY, 1e-12)
	assert.InDelta(t, 0.8, near.Spin, 1e-12)
}

func TestComputeAvoidance_MagnitudeFallsWithDistance(t *testing.T) {
	cfg := testConfig(t).Avoidance
	rng := rand.New(rand.NewSource(1))

	// Beyond the flutter radius there is no randomness
	prev := math.Inf(1)
	for d := 60.0; d <= 130; d += 0.5 {
		m := ComputeAvoidance(0, 0, d, 0, AmbientForce{}, cfg, rng).Magnitude()
		require.LessOrEqual(t, m, prev, "distance %v", d)
		prev = m
	}
	assert.Zero(t, prev)
}

func TestComputeAvoidance_InnerZoneIsStronger(t *testing.T) {
	cfg := testConfig(t).Avoidance
	rng := rand.New(rand.NewSource(1))

	inside := ComputeAvoidance(0, 0, 0, 79.9, AmbientForce{}, cfg, rng)
	outside := ComputeAvoidance(0, 0, 0, 80.1, AmbientForce{}, cfg, rng)
	assert.Greater(t, inside.Magnitude(), outside.Magnitude())
	assert.Greater(t, inside.Strength, inside.Influence)
	assert.Equal(t, outside.Strength, outside.Influence)
}

func TestComputeAvoidance_HorizontalWeightedAboutTwiceVertical(t *testing.T) {
	cfg := testConfig(t).Avoidance
	rng := rand.New(rand.NewSource(1))

	h := ComputeAvoidance(0, 0, 100, 0, AmbientForce{}, cfg, rng)
	v := ComputeAvoidance(0, 0, 0, 100, AmbientForce{}, cfg, rng)
	assert.InDelta(t, cfg.WeightX/cfg.WeightY, h.VX/v.VY, 1e-9)
	assert.Greater(t, h.VX, 0.0, "pushed away to the right")
}

func TestComputeAvoidance_FlutterJitterIsBounded(t *testing.T) {
	cfg := testConfig(t).Avoidance
	rng := rand.New(rand.NewSource(42))

	d := 15.0
	base := ComputeAvoidance(0, 0, d, 0, AmbientForce{}, cfg, zeroJitter{})
	flutter := (cfg.FlutterRadius - d) / cfg.FlutterRadius

	var sawLeft, sawRight bool
	for i := 0; i < 500; i++ {
		av := ComputeAvoidance(0, 0, d, 0, AmbientForce{}, cfg, rng)
		require.LessOrEqual(t, math.Abs(av.VX-base.VX), flutter*cfg.JitterX/2+1e-9)
		require.LessOrEqual(t, math.Abs(av.VY-base.VY), flutter*cfg.JitterY/2+1e-9)
		require.LessOrEqual(t, math.Abs(av.Spin-base.Spin), flutter*cfg.FlutterSpin/2+1e-9)
		if av.VX < base.VX {
			sawLeft = true
		} else if av.VX > base.VX {
			sawRight = true
		}
	}
	assert.True(t, sawLeft && sawRight, "jitter is zero-mean")
}

func TestComputeAvoidance_BlendsWind(t *testing.T) {
	cfg := testConfig(t).Avoidance
	rng := rand.New(rand.NewSource(1))

	still := ComputeAvoidance(0, 0, 0, 100, AmbientForce{}, cfg, rng)
	windy := ComputeAvoidance(0, 0, 0, 100, AmbientForce{X: 2, Y: 1}, cfg, rng)

	w := still.Influence * (1 - still.Strength*cfg.WindDamping)
	assert.InDelta(t, 2*w*cfg.WindWeightX, windy.VX-still.VX, 1e-12)
	assert.InDelta(t, 1*w*cfg.WindWeightY, windy.VY-still.VY, 1e-12)
}

func TestComputeAvoidance_NonFiniteInput(t *testing.T) {
	cfg := testConfig(t).Avoidance
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		name         string
		px, py, x, y float64
	}{
		{"nan pointer", math.NaN(), 0, 10, 10},
		{"inf pointer", 0, math.Inf(1), 10, 10},
		{"nan leaf", 0, 0, math.NaN(), 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			av := ComputeAvoidance(tt.px, tt.py, tt.x, tt.y, AmbientForce{}, cfg, rng)
			assert.Equal(t, Avoidance{}, av)
		})
	}
}

// zeroJitter makes every centred draw zero.
type zeroJitter struct{}

func (zeroJitter) Float64() float64 { return 0.5 }
func (zeroJitter) Intn(int) int     { return 0 }
