package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFPSSampler_SteadyRate(t *testing.T) {
	s := NewFPSSampler(time.Second)
	frame := time.Second / 60

	var got []float64
	for i := 0; i <= 200; i++ {
		if fps, ok := s.Frame(time.Duration(i) * frame); ok {
			got = append(got, fps)
		}
	}

	assert.Len(t, got, 3)
	for _, fps := range got {
		assert.Equal(t, 60.0, fps)
	}
	assert.Equal(t, 60.0, s.Last())
}

func TestFPSSampler_SlowFrames(t *testing.T) {
	s := NewFPSSampler(time.Second)
	frame := 100 * time.Millisecond

	var fps float64
	var ok bool
	for i := 0; i <= 10 && !ok; i++ {
		fps, ok = s.Frame(time.Duration(i) * frame)
	}

	assert.True(t, ok)
	assert.Equal(t, 10.0, fps)
}

func TestFPSSampler_ResetSkipsGap(t *testing.T) {
	s := NewFPSSampler(time.Second)
	s.Frame(0)
	s.Frame(16 * time.Millisecond)

	s.Reset()
	_, ok := s.Frame(30 * time.Second)
	assert.False(t, ok, "first frame after reset only opens a window")

	fps, ok := s.Frame(30*time.Second + 500*time.Millisecond)
	assert.False(t, ok)
	assert.Zero(t, fps)
}
