package game

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/leaves/config"
	"github.com/pthm-cable/leaves/sched"
	"github.com/pthm-cable/leaves/telemetry"
)

// Generator keeps the field populated: a periodic spawn timer that also ages
// out old leaves, and a burst timer that schedules short staggered gusts.
// Every timer it owns is tracked so Stop leaves nothing behind.
type Generator struct {
	loop      *sched.Loop
	field     *Field
	cfg       *config.Config
	rng       *rand.Rand
	collector *telemetry.Collector

	timers  map[sched.ID]struct{}
	running bool

	spawnInterval time.Duration
	burstInterval time.Duration
}

// NewGenerator creates a stopped generator. The spawn and burst intervals are
// drawn once here and reused across restarts.
func NewGenerator(loop *sched.Loop, field *Field, cfg *config.Config, rng *rand.Rand, collector *telemetry.Collector) *Generator {
	s := cfg.Spawn
	return &Generator{
		loop:          loop,
		field:         field,
		cfg:           cfg,
		rng:           rng,
		collector:     collector,
		timers:        make(map[sched.ID]struct{}),
		spawnInterval: randomDuration(rng, s.MinIntervalSec, s.MaxIntervalSec),
		burstInterval: randomDuration(rng, s.BurstMinSec, s.BurstMaxSec),
	}
}

func randomDuration(rng *rand.Rand, lo, hi float64) time.Duration {
	sec := lo + rng.Float64()*(hi-lo)
	return time.Duration(sec * float64(time.Second))
}

// Start installs the spawn and burst timers. Calling Start while running is a no-op.
func (g *Generator) Start() {
	if g.running {
		return
	}
	g.running = true
	g.track(g.loop.Every(g.spawnInterval, g.spawnTick))
	g.track(g.loop.Every(g.burstInterval, g.burstTick))
	slog.Debug("generator started", "spawn_interval", g.spawnInterval, "burst_interval", g.burstInterval)
}

// Stop cancels every timer the generator owns, including burst members that
// have not fired yet. Calling Stop while stopped is a no-op.
func (g *Generator) Stop() {
	if !g.running {
		return
	}
	for id := range g.timers {
		g.loop.Cancel(id)
	}
	clear(g.timers)
	g.running = false
	slog.Debug("generator stopped")
}

// Running reports whether the timers are installed.
func (g *Generator) Running() bool { return g.running }

// Timers returns how many timers the generator currently owns.
func (g *Generator) Timers() int { return len(g.timers) }

// SpawnInterval returns the periodic spawn interval.
func (g *Generator) SpawnInterval() time.Duration { return g.spawnInterval }

// BurstInterval returns the burst interval.
func (g *Generator) BurstInterval() time.Duration { return g.burstInterval }

func (g *Generator) track(id sched.ID) { g.timers[id] = struct{}{} }

// spawnTick ages out old dynamic leaves, then adds one leaf if there is room.
func (g *Generator) spawnTick(now time.Duration) {
	if n := g.field.ExpireOlderThan(now, g.cfg.Derived.MaxLifetime); n > 0 {
		g.collector.RecordExpired(n)
		slog.Debug("expired leaves", "count", n, "remaining", g.field.Len())
	}
	if _, ok := g.field.Spawn(now); ok {
		g.collector.RecordSpawn(false)
	}
}

// burstTick rolls for a gust and schedules its members, stopping early once
// the field is full.
func (g *Generator) burstTick(now time.Duration) {
	s := g.cfg.Spawn
	if g.rng.Float64() >= s.BurstChance {
		return
	}
	count := g.rng.Intn(max(s.BurstMax, 1)) + 1
	scheduled := 0
	for i := 0; i < count; i++ {
		if g.field.Len() >= g.field.Capacity() {
			break
		}
		g.scheduleBurstMember(time.Duration(i) * g.cfg.Derived.BurstStagger)
		scheduled++
	}
	slog.Debug("burst", "count", count, "scheduled", scheduled)
}

func (g *Generator) scheduleBurstMember(delay time.Duration) {
	var id sched.ID
	id = g.loop.After(delay, func(now time.Duration) {
		delete(g.timers, id)
		if !g.running {
			return
		}
		if _, ok := g.field.Spawn(now); ok {
			g.collector.RecordSpawn(true)
		}
	})
	g.track(id)
}
