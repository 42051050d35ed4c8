package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStart float64 `csv:"-"`
	WindowEnd   float64 `csv:"window_end"`
	Frames      int     `csv:"frames"`

	// Population at window end
	Leaves   int  `csv:"leaves"`
	Static   int  `csv:"static"`
	Dynamic  int  `csv:"dynamic"`
	Capacity int  `csv:"capacity"`
	Paused   bool `csv:"paused"`
	Degraded bool `csv:"degraded"`

	// Lifecycle events during window
	Spawned      int `csv:"spawned"`
	BurstSpawned int `csv:"burst_spawned"`
	Expired      int `csv:"expired"`
	Exited       int `csv:"exited"`
	Recycled     int `csv:"recycled"`
	Trimmed      int `csv:"trimmed"`
	LowFPS       int `csv:"low_fps"`
	Ripples      int `csv:"ripples"`

	FPS float64 `csv:"fps"`

	// Pointer influence across leaves (sampled at window end)
	InfluenceMean float64 `csv:"influence_mean"`
	InfluenceP50  float64 `csv:"influence_p50"`
	InfluenceP90  float64 `csv:"influence_p90"`
	Influenced    int     `csv:"influenced"`

	// Fall depth spread, as a fraction of viewport height
	DepthMean float64 `csv:"depth_mean"`
	DepthStd  float64 `csv:"depth_std"`

	WindX float64 `csv:"wind_x"`
	WindY float64 `csv:"wind_y"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeInfluenceStats returns the mean, median and 90th percentile of
// influence values plus the number of leaves with any influence at all.
func ComputeInfluenceStats(values []float64) (mean, p50, p90 float64, influenced int) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	for _, v := range sorted {
		if v > 0 {
			influenced++
		}
	}

	return stat.Mean(sorted, nil), Percentile(sorted, 0.50), Percentile(sorted, 0.90), influenced
}

// ComputeSpread returns the mean and population standard deviation.
func ComputeSpread(values []float64) (mean, std float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	}
	mean = stat.Mean(values, nil)
	std = stat.PopStdDev(values, nil)
	return mean, std
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("window_start", s.WindowStart),
		slog.Float64("window_end", s.WindowEnd),
		slog.Int("frames", s.Frames),
		slog.Int("leaves", s.Leaves),
		slog.Int("static", s.Static),
		slog.Int("dynamic", s.Dynamic),
		slog.Int("capacity", s.Capacity),
		slog.Bool("paused", s.Paused),
		slog.Bool("degraded", s.Degraded),
		slog.Int("spawned", s.Spawned),
		slog.Int("burst_spawned", s.BurstSpawned),
		slog.Int("expired", s.Expired),
		slog.Int("exited", s.Exited),
		slog.Int("recycled", s.Recycled),
		slog.Int("trimmed", s.Trimmed),
		slog.Int("low_fps", s.LowFPS),
		slog.Int("ripples", s.Ripples),
		slog.Float64("fps", s.FPS),
		slog.Float64("influence_mean", s.InfluenceMean),
		slog.Float64("influence_p90", s.InfluenceP90),
		slog.Int("influenced", s.Influenced),
		slog.Float64("depth_mean", s.DepthMean),
		slog.Float64("depth_std", s.DepthStd),
		slog.Float64("wind_x", s.WindX),
		slog.Float64("wind_y", s.WindY),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEnd,
		"leaves", s.Leaves,
		"capacity", s.Capacity,
		"spawned", s.Spawned,
		"burst_spawned", s.BurstSpawned,
		"expired", s.Expired,
		"exited", s.Exited,
		"recycled", s.Recycled,
		"trimmed", s.Trimmed,
		"fps", s.FPS,
		"degraded", s.Degraded,
		"influenced", s.Influenced,
	)
}
