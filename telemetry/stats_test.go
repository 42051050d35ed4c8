package telemetry

import (
	"math"
	"testing"
	"time"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeInfluenceStats(t *testing.T) {
	values := []float64{0.9, 0, 0, 0.1, 0.5}
	mean, p50, p90, influenced := ComputeInfluenceStats(values)

	if math.Abs(mean-0.3) > 0.001 {
		t.Errorf("mean = %v, want 0.3", mean)
	}
	if math.Abs(p50-0.1) > 0.001 {
		t.Errorf("p50 = %v, want 0.1", p50)
	}
	if math.Abs(p90-0.74) > 0.001 {
		t.Errorf("p90 = %v, want 0.74", p90)
	}
	if influenced != 3 {
		t.Errorf("influenced = %d, want 3", influenced)
	}
	if values[0] != 0.9 {
		t.Error("input slice must not be reordered")
	}
}

func TestComputeSpread(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		mean   float64
		std    float64
	}{
		{"empty", nil, 0, 0},
		{"single", []float64{0.4}, 0.4, 0},
		{"pair", []float64{0, 1}, 0.5, 0.5},
		{"constant", []float64{2, 2, 2}, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std := ComputeSpread(tt.values)
			if math.Abs(mean-tt.mean) > 1e-9 || math.Abs(std-tt.std) > 1e-9 {
				t.Errorf("ComputeSpread(%v) = (%v, %v), want (%v, %v)", tt.values, mean, std, tt.mean, tt.std)
			}
		})
	}
}

func TestCollector_FlushResetsCounters(t *testing.T) {
	c := NewCollector(2 * time.Second)

	c.RecordFrame()
	c.RecordFrame()
	c.RecordSpawn(false)
	c.RecordSpawn(true)
	c.RecordSpawn(true)
	c.RecordExpired(2)
	c.RecordExited()
	c.RecordRecycled()
	c.RecordTrimmed(3)
	c.RecordLowFPS()
	c.RecordRipple()

	if c.ShouldFlush(time.Second) {
		t.Error("should not flush before the window elapses")
	}
	if !c.ShouldFlush(2 * time.Second) {
		t.Error("should flush once the window elapses")
	}

	s := c.Flush(2*time.Second, Sample{Static: 6, Dynamic: 4, Capacity: 20, FPS: 58})
	if s.Frames != 2 || s.Spawned != 1 || s.BurstSpawned != 2 || s.Expired != 2 ||
		s.Exited != 1 || s.Recycled != 1 || s.Trimmed != 3 || s.LowFPS != 1 || s.Ripples != 1 {
		t.Errorf("unexpected counters: %+v", s)
	}
	if s.Leaves != 10 || s.WindowStart != 0 || s.WindowEnd != 2 {
		t.Errorf("unexpected window: %+v", s)
	}

	next := c.Flush(4*time.Second, Sample{})
	if next.Spawned != 0 || next.Frames != 0 || next.WindowStart != 2 {
		t.Errorf("counters not reset: %+v", next)
	}
}
