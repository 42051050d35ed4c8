package game

import "log/slog"

// logLeaf occasionally logs the state of the oldest leaf.
func (g *Game) logLeaf() {
	first, ok := g.field.Oldest()
	if !ok {
		return
	}
	g.leafLog.Do(func() {
		slog.Debug("leaf",
			"id", first.ID,
			"x", first.Transform.X,
			"y", first.Transform.Y,
			"influence", first.Transform.Influence,
		)
	})
}

// LogState logs a one-line summary of the controller state.
func (g *Game) LogState() {
	static, dynamic := g.field.Counts()
	wind := g.field.AmbientForce()
	slog.Info("state",
		"time", g.loop.Now(),
		"frames", g.loop.Frames(),
		"static", static,
		"dynamic", dynamic,
		"capacity", g.field.Capacity(),
		"paused", !g.running,
		"degraded", g.degraded,
		"fps", g.fps.Last(),
		"timers", g.loop.Pending(),
		"wind", wind.Magnitude(),
	)
}
