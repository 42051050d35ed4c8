package telemetry

import "time"

// Sample is the field state the caller hands to Flush.
type Sample struct {
	Static, Dynamic int
	Capacity        int
	Paused          bool
	Degraded        bool
	FPS             float64
	Influences      []float64
	Depths          []float64
	WindX, WindY    float64
}

// Collector accumulates lifecycle events within time windows and produces WindowStats.
type Collector struct {
	window      time.Duration
	windowStart time.Duration
	frames      int

	// Event counters for current window
	spawned      int
	burstSpawned int
	expired      int
	exited       int
	recycled     int
	trimmed      int
	lowFPS       int
	ripples      int
}

// NewCollector creates a new stats collector.
// window: how long each stats window lasts on the animation clock.
func NewCollector(window time.Duration) *Collector {
	if window <= 0 {
		window = 10 * time.Second
	}
	return &Collector{window: window}
}

// RecordFrame counts one animation frame.
func (c *Collector) RecordFrame() { c.frames++ }

// RecordSpawn records a dynamic leaf entering the field.
func (c *Collector) RecordSpawn(burst bool) {
	if burst {
		c.burstSpawned++
	} else {
		c.spawned++
	}
}

// RecordExpired records dynamic leaves removed by age.
func (c *Collector) RecordExpired(n int) { c.expired += n }

// RecordExited records a dynamic leaf leaving past the bottom edge.
func (c *Collector) RecordExited() { c.exited++ }

// RecordRecycled records a static leaf sent back to the top.
func (c *Collector) RecordRecycled() { c.recycled++ }

// RecordTrimmed records leaves removed by capacity enforcement.
func (c *Collector) RecordTrimmed(n int) { c.trimmed += n }

// RecordLowFPS records a degraded-mode trigger.
func (c *Collector) RecordLowFPS() { c.lowFPS++ }

// RecordRipple records a touch ripple.
func (c *Collector) RecordRipple() { c.ripples++ }

// ShouldFlush returns true if enough time has passed to flush the window.
func (c *Collector) ShouldFlush(now time.Duration) bool {
	return now-c.windowStart >= c.window
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(now time.Duration, s Sample) WindowStats {
	infMean, infP50, infP90, influenced := ComputeInfluenceStats(s.Influences)
	depthMean, depthStd := ComputeSpread(s.Depths)

	stats := WindowStats{
		WindowStart: c.windowStart.Seconds(),
		WindowEnd:   now.Seconds(),
		Frames:      c.frames,

		Leaves:   s.Static + s.Dynamic,
		Static:   s.Static,
		Dynamic:  s.Dynamic,
		Capacity: s.Capacity,
		Paused:   s.Paused,
		Degraded: s.Degraded,

		Spawned:      c.spawned,
		BurstSpawned: c.burstSpawned,
		Expired:      c.expired,
		Exited:       c.exited,
		Recycled:     c.recycled,
		Trimmed:      c.trimmed,
		LowFPS:       c.lowFPS,
		Ripples:      c.ripples,

		FPS: s.FPS,

		InfluenceMean: infMean,
		InfluenceP50:  infP50,
		InfluenceP90:  infP90,
		Influenced:    influenced,

		DepthMean: depthMean,
		DepthStd:  depthStd,

		WindX: s.WindX,
		WindY: s.WindY,
	}

	// Reset for next window
	c.windowStart = now
	c.frames = 0
	c.spawned = 0
	c.burstSpawned = 0
	c.expired = 0
	c.exited = 0
	c.recycled = 0
	c.trimmed = 0
	c.lowFPS = 0
	c.ripples = 0

	return stats
}

// Window returns the window length.
func (c *Collector) Window() time.Duration {
	return c.window
}
