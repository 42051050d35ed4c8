package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/leaves/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and writes it out.
func (g *Game) flushTelemetry(now time.Duration) {
	if !g.collector.ShouldFlush(now) {
		return
	}

	stats := g.collector.Flush(now, g.sample())
	perfStats := g.perfCollector.Stats()

	if g.logStats {
		stats.LogStats()
		slog.Info("perf", "stats", perfStats)
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteStats(stats); err != nil {
			slog.Error("failed to write stats", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, now, g.fps.Last()); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// sample collects the field state for a stats window.
func (g *Game) sample() telemetry.Sample {
	static, dynamic := g.field.Counts()
	_, height := g.field.Size()
	wind := g.field.AmbientForce()

	transforms := g.field.Transforms()
	influences := make([]float64, len(transforms))
	depths := make([]float64, len(transforms))
	for i, tf := range transforms {
		influences[i] = tf.Influence
		depths[i] = tf.Y / height
	}

	return telemetry.Sample{
		Static:     static,
		Dynamic:    dynamic,
		Capacity:   g.field.Capacity(),
		Paused:     !g.running,
		Degraded:   g.degraded,
		FPS:        g.fps.Last(),
		Influences: influences,
		Depths:     depths,
		WindX:      wind.X,
		WindY:      wind.Y,
	}
}
