// Package game wires the leaf field, its generator and the event loop into a
// controller that backends drive with input events and frame timestamps.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"golang.org/x/time/rate"

	"github.com/pthm-cable/leaves/config"
	"github.com/pthm-cable/leaves/sched"
	"github.com/pthm-cable/leaves/systems"
	"github.com/pthm-cable/leaves/telemetry"
)

// Options configures a new Game. Zero values fall back to the loaded config;
// the LowPower and ReducedMotion hints are ORed with it.
type Options struct {
	Config         *config.Config
	Seed           int64
	Display        Display
	Width, Height  float64
	LowPower       bool
	ReducedMotion  bool
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
}

// ControlState is what the pause/resume control shows.
type ControlState struct {
	Visible bool
	Paused  bool
	Icon    string
	Label   string
}

// InfluenceIndicator describes the avoidance radii drawn around the pointer.
type InfluenceIndicator struct {
	Visible               bool
	X, Y                  float64
	Outer, Inner, Flutter float64
}

// Game is the leaf field controller.
type Game struct {
	cfg *config.Config
	rng *rand.Rand

	loop      *sched.Loop
	field     *Field
	generator *Generator
	pointer   *PointerTracker
	ripples   *systems.RippleSystem

	// Telemetry
	fps           *telemetry.FPSSampler
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool

	// State
	userPaused    bool
	hidden        bool
	reducedMotion bool
	running       bool
	frameID       sched.ID
	lowPower      bool
	degradeSteps  int
	degraded      bool
	showInfluence bool

	// Throttled debug logging
	windLog rate.Sometimes
	leafLog rate.Sometimes
}

// NewGame creates a controller, seeds the static leaves and starts animating
// unless reduced motion is requested.
func NewGame(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = float64(cfg.Screen.Width), float64(cfg.Screen.Height)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	field, err := NewField(cfg, rng, opts.Display, width, height)
	if err != nil {
		return nil, err
	}

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}

	outputManager, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := outputManager.WriteConfig(cfg); err != nil {
		outputManager.Close()
		return nil, fmt.Errorf("writing config: %w", err)
	}

	loop := sched.New()
	collector := telemetry.NewCollector(time.Duration(statsWindow * float64(time.Second)))

	// Reduced motion at start is also a user pause
	reduced := opts.ReducedMotion || cfg.Screen.ReducedMotion
	g := &Game{
		cfg:           cfg,
		rng:           rng,
		loop:          loop,
		field:         field,
		generator:     NewGenerator(loop, field, cfg, rng, collector),
		pointer:       NewPointerTracker(cfg.Derived.IdleTimeout),
		ripples:       systems.NewRippleSystem(cfg.Derived.RippleLifetime),
		fps:           telemetry.NewFPSSampler(cfg.Derived.PerfWindow),
		collector:     collector,
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfWindowFrames),
		outputManager: outputManager,
		logStats:      opts.LogStats,
		lowPower:      opts.LowPower || cfg.Screen.LowPower,
		reducedMotion: reduced,
		userPaused:    reduced,
		windLog:       rate.Sometimes{Every: 100},
		leafLog:       rate.Sometimes{Every: 200},
	}

	seeded := field.SeedStatic()
	field.SetCapacity(g.targetCapacity())
	slog.Info("leaf field created",
		"width", width,
		"height", height,
		"static", seeded,
		"capacity", field.Capacity(),
		"seed", opts.Seed,
	)

	g.reconcile()
	return g, nil
}

// targetCapacity is the viewport capacity less any degraded-mode reductions.
func (g *Game) targetCapacity() int {
	width, _ := g.field.Size()
	capacity := CapacityFor(width, g.lowPower, g.cfg.Capacity)
	for i := 0; i < g.degradeSteps; i++ {
		capacity = degradedCapacity(capacity, g.cfg.Capacity)
	}
	return capacity
}

// reconcile starts or stops the animation to match the pause inputs.
func (g *Game) reconcile() {
	want := !g.userPaused && !g.hidden && !g.reducedMotion
	switch {
	case want && !g.running:
		g.start()
	case !want && g.running:
		g.stop()
	}
}

func (g *Game) start() {
	g.running = true
	g.fps.Reset()
	g.generator.Start()
	g.frameID = g.loop.RequestFrame(g.animate)
	slog.Info("animation running", "leaves", g.field.Len(), "capacity", g.field.Capacity())
}

func (g *Game) stop() {
	g.running = false
	if g.frameID != 0 {
		g.loop.CancelFrame(g.frameID)
		g.frameID = 0
	}
	g.generator.Stop()
	slog.Info("animation paused",
		"user", g.userPaused,
		"hidden", g.hidden,
		"reduced_motion", g.reducedMotion,
	)
}

// Pause stops the frame chain and every generation timer.
func (g *Game) Pause() {
	g.userPaused = true
	g.reconcile()
}

// Resume restarts animation from scratch. It has no effect while reduced
// motion is requested or the window is hidden, beyond clearing the user pause.
func (g *Game) Resume() {
	g.userPaused = false
	g.reconcile()
}

// Toggle flips the user pause.
func (g *Game) Toggle() {
	if g.userPaused {
		g.Resume()
	} else {
		g.Pause()
	}
}

// SetReducedMotion applies a reduced-motion preference. Turning it on pauses
// and hides the control; turning it off shows the control but does not resume.
func (g *Game) SetReducedMotion(reduced bool) {
	if reduced && !g.reducedMotion {
		g.userPaused = true
	}
	g.reducedMotion = reduced
	g.reconcile()
}

// SetVisible pauses while the window is hidden. Becoming visible resumes only
// if the user had not paused.
func (g *Game) SetVisible(visible bool) {
	g.hidden = !visible
	g.reconcile()
}

// Paused reports whether the animation is currently stopped for any reason.
func (g *Game) Paused() bool { return !g.running }

// Controls returns the pause control state.
func (g *Game) Controls() ControlState {
	if g.userPaused || !g.running {
		return ControlState{Visible: !g.reducedMotion, Paused: true, Icon: "▶", Label: "Play"}
	}
	return ControlState{Visible: !g.reducedMotion, Paused: false, Icon: "⏸", Label: "Pause"}
}

// Frame runs one host frame at loop time now: due timers first, then the
// animation callback if one is pending.
func (g *Game) Frame(now time.Duration) {
	g.loop.RunFrame(now)
}

// animate is the per-frame callback. It re-requests itself while running.
func (g *Game) animate(now time.Duration) {
	g.frameID = 0
	if !g.running {
		return
	}

	g.perfCollector.StartFrame()

	g.perfCollector.StartPhase(telemetry.PhaseInput)
	if g.pointer.Expire(now) {
		g.field.ResetAmbientForce()
		slog.Debug("pointer idle")
	}

	g.perfCollector.StartPhase(telemetry.PhaseStep)
	res := g.field.Step(now.Seconds(), g.pointer.State(), false)
	for i := 0; i < res.Exited; i++ {
		g.collector.RecordExited()
	}
	for i := 0; i < res.Recycled; i++ {
		g.collector.RecordRecycled()
	}

	g.perfCollector.StartPhase(telemetry.PhaseApply)
	g.field.Apply()
	g.ripples.Update(now)

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.sampleFPS(now)
	g.collector.RecordFrame()
	g.flushTelemetry(now)
	g.logLeaf()

	g.perfCollector.EndFrame()

	if g.running {
		g.frameID = g.loop.RequestFrame(g.animate)
	}
}

// sampleFPS feeds the frame-rate sampler and enters degraded mode on a slow window.
func (g *Game) sampleFPS(now time.Duration) {
	fps, ok := g.fps.Frame(now)
	if !ok || fps >= g.cfg.Perf.MinFPS {
		return
	}

	g.degradeSteps++
	g.degraded = true
	trimmed := g.field.SetCapacity(g.targetCapacity())
	if g.field.Len() > g.cfg.Capacity.Floor {
		trimmed += g.field.RemoveNewest(1)
	}
	g.collector.RecordLowFPS()
	g.collector.RecordTrimmed(trimmed)
	slog.Warn("low fps detected, reducing leaf count",
		"fps", fps,
		"capacity", g.field.Capacity(),
		"removed", trimmed,
		"leaves", g.field.Len(),
	)
}

// Resize updates the viewport and re-evaluates capacity.
func (g *Game) Resize(width, height float64) {
	if !systems.FinitePoint(width, height) || width <= 0 || height <= 0 {
		return
	}
	g.field.Resize(width, height)
	before := g.field.Capacity()
	trimmed := g.field.SetCapacity(g.targetCapacity())
	g.collector.RecordTrimmed(trimmed)
	if before != g.field.Capacity() {
		slog.Info("capacity changed",
			"width", width,
			"capacity", g.field.Capacity(),
			"removed", trimmed,
		)
	}
}

// PointerMove records a pointer sample and sets the wind from its movement
// delta. Ignored while paused.
func (g *Game) PointerMove(x, y, dx, dy float64) {
	if !g.running {
		return
	}
	if !g.pointer.Move(x, y, g.loop.Now()) {
		return
	}
	g.field.UpdateAmbientForce(dx, dy)
	g.windLog.Do(func() {
		wind := g.field.AmbientForce()
		slog.Debug("wind", "x", wind.X, "y", wind.Y)
	})
}

// PointerEnter reactivates the pointer at its last position.
func (g *Game) PointerEnter() {
	g.pointer.Enter(g.loop.Now())
}

// PointerLeave deactivates the pointer and stills the wind.
func (g *Game) PointerLeave() {
	g.pointer.Leave()
	g.field.ResetAmbientForce()
}

// TouchMove moves the pointer without generating wind. Ignored while paused.
func (g *Game) TouchMove(x, y float64) {
	if !g.running {
		return
	}
	g.pointer.Move(x, y, g.loop.Now())
}

// TouchStart places the pointer and leaves a ripple.
func (g *Game) TouchStart(x, y float64) {
	if !g.pointer.Place(x, y) {
		return
	}
	g.ripples.Emit(x, y, g.loop.Now())
	g.collector.RecordRipple()
}

// ToggleInfluenceIndicator shows or hides the avoidance radii.
func (g *Game) ToggleInfluenceIndicator() {
	g.showInfluence = !g.showInfluence
	slog.Info("influence indicator", "visible", g.showInfluence)
}

// Indicator returns the avoidance radii overlay state.
func (g *Game) Indicator() InfluenceIndicator {
	p := g.pointer.State()
	a := g.cfg.Avoidance
	return InfluenceIndicator{
		Visible: g.showInfluence && p.Active,
		X:       p.X,
		Y:       p.Y,
		Outer:   a.OuterRadius,
		Inner:   a.InnerRadius,
		Flutter: a.FlutterRadius,
	}
}

// Ripples returns the live ripples with their progress in [0, 1].
func (g *Game) Ripples(fn func(x, y, progress float64)) {
	now := g.loop.Now()
	for _, r := range g.ripples.Ripples {
		fn(r.X, r.Y, g.ripples.Progress(r, now))
	}
}

// Field returns the particle field.
func (g *Game) Field() *Field { return g.field }

// Generator returns the generation manager.
func (g *Game) Generator() *Generator { return g.generator }

// Loop returns the event loop.
func (g *Game) Loop() *sched.Loop { return g.loop }

// Pointer returns the current pointer state.
func (g *Game) Pointer() Pointer { return g.pointer.State() }

// Degraded reports whether low frame rate has reduced capacity.
func (g *Game) Degraded() bool { return g.degraded }

// FPS returns the most recent frame-rate sample.
func (g *Game) FPS() float64 { return g.fps.Last() }

// Close stops animation and flushes output.
func (g *Game) Close() error {
	if g.running {
		g.stop()
	}
	return g.outputManager.Close()
}
