package systems

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRippleSystem_Lifetime(t *testing.T) {
	s := NewRippleSystem(600 * time.Millisecond)

	s.Emit(10, 20, time.Second)
	assert.Equal(t, 1, s.Count())

	r := s.Ripples[0]
	assert.Equal(t, 0.0, s.Progress(r, time.Second))
	assert.InDelta(t, 0.5, s.Progress(r, time.Second+300*time.Millisecond), 1e-9)
	assert.Equal(t, 1.0, s.Progress(r, 5*time.Second))

	s.Update(time.Second + 599*time.Millisecond)
	assert.Equal(t, 1, s.Count())
	s.Update(time.Second + 600*time.Millisecond)
	assert.Zero(t, s.Count())
}

func TestRippleSystem_IgnoresNonFinite(t *testing.T) {
	s := NewRippleSystem(time.Second)
	s.Emit(math.NaN(), 0, 0)
	s.Emit(0, math.Inf(1), 0)
	assert.Zero(t, s.Count())
}

func TestRippleSystem_Cap(t *testing.T) {
	s := NewRippleSystem(time.Second)
	for i := 0; i < 100; i++ {
		s.Emit(float64(i), 0, 0)
	}
	assert.Equal(t, 64, s.Count())
}
