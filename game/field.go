package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/leaves/components"
	"github.com/pthm-cable/leaves/config"
	"github.com/pthm-cable/leaves/systems"
)

// Leaf is a read-only copy of one leaf's components.
type Leaf struct {
	components.Identity
	components.Kinematics
	components.Traits
	components.Appearance
	Transform components.Transform
}

// StepResult summarises one Step call.
type StepResult struct {
	Stepped      int     // Leaves advanced
	Exited       int     // Dynamic leaves destroyed past the bottom edge
	Recycled     int     // Static leaves returned to the top
	Clamped      int     // Leaves pulled back inside a side margin
	MaxInfluence float64 // Strongest pointer influence on any leaf
}

// leafHandle pairs a display handle with whether it has been shown yet.
type leafHandle struct {
	Handle
	shown bool
}

// Field is the particle field simulator. It owns every leaf; the generator
// inserts and removes leaves only through its methods.
type Field struct {
	world *ecs.World
	cfg   *config.Config
	rng   *rand.Rand

	leaves *ecs.Map5[
		components.Identity,
		components.Kinematics,
		components.Traits,
		components.Appearance,
		components.Transform,
	]
	leafFilter *ecs.Filter5[
		components.Identity,
		components.Kinematics,
		components.Traits,
		components.Appearance,
		components.Transform,
	]

	// Insertion order, oldest first. Capacity trimming pops from the end.
	order   []ecs.Entity
	handles map[uint64]*leafHandle
	display Display
	palette *systems.Palette

	wind     systems.AmbientForce
	width    float64
	height   float64
	capacity int
	elapsed  float64
	nextID   uint64
	statics  int

	toRemove []ecs.Entity
}

// NewField creates an empty field for a width x height viewport.
// A nil display is replaced by NullDisplay.
func NewField(cfg *config.Config, rng *rand.Rand, display Display, width, height float64) (*Field, error) {
	palette, err := systems.NewPalette(cfg.Palette)
	if err != nil {
		return nil, fmt.Errorf("creating palette: %w", err)
	}

	world := ecs.NewWorld()
	f := &Field{
		world: world,
		cfg:   cfg,
		rng:   rng,
		leaves: ecs.NewMap5[
			components.Identity,
			components.Kinematics,
			components.Traits,
			components.Appearance,
			components.Transform,
		](world),
		leafFilter: ecs.NewFilter5[
			components.Identity,
			components.Kinematics,
			components.Traits,
			components.Appearance,
			components.Transform,
		](world),
		handles:  make(map[uint64]*leafHandle),
		display:  displayOrNull(display),
		palette:  palette,
		width:    width,
		height:   height,
		capacity: cfg.Capacity.Default,
	}
	return f, nil
}

// SeedStatic creates the identity-stable leaves at the configured anchors.
// Their IDs are their index; dynamic IDs continue above them.
func (f *Field) SeedStatic() int {
	anchors := f.cfg.Derived.StaticAnchors
	for i, pct := range anchors {
		x := pct / 100 * f.width
		id := uint64(i)
		kin := systems.NewKinematics(f.rng, x, false, f.cfg.Bounds)
		f.insert(components.Identity{ID: id}, kin, systems.NewTraits(f.rng, x))
	}
	f.statics = len(anchors)
	f.capacity = max(f.capacity, f.statics)
	if f.nextID < uint64(len(anchors)) {
		f.nextID = uint64(len(anchors))
	}
	return len(anchors)
}

// Spawn inserts one dynamic leaf with fully random parameters, unless the
// field is at capacity.
func (f *Field) Spawn(now time.Duration) (uint64, bool) {
	if f.Len() >= f.capacity {
		return 0, false
	}
	b := f.cfg.Bounds
	x := f.rng.Float64()*(f.width+2*b.SpawnOverscan) - b.SpawnOverscan

	id := f.nextID
	f.nextID++
	kin := systems.NewKinematics(f.rng, x, true, b)
	f.insert(components.Identity{ID: id, Dynamic: true, CreatedAt: now}, kin, systems.NewTraits(f.rng, x))
	return id, true
}

func (f *Field) insert(ident components.Identity, kin components.Kinematics, tr components.Traits) {
	look := f.palette.Pick(f.rng)
	tf := systems.Render(&kin, ident.ID, f.elapsed, 0, f.cfg.Motion)
	e := f.leaves.NewEntity(&ident, &kin, &tr, &look, &tf)
	f.order = append(f.order, e)

	h := f.display.Attach(ident.ID, look)
	if h == nil {
		h = nullHandle{}
	}
	h.SetVisible(false)
	f.handles[ident.ID] = &leafHandle{Handle: h}
}

// Remove destroys the leaf with the given id.
func (f *Field) Remove(id uint64) bool {
	for _, e := range f.order {
		ident, _, _, _, _ := f.leaves.Get(e)
		if ident.ID == id {
			f.destroy(e)
			return true
		}
	}
	return false
}

// RemoveNewest destroys up to n of the most recently inserted dynamic leaves.
// Static leaves are never removed.
func (f *Field) RemoveNewest(n int) int {
	removed := 0
	for i := len(f.order) - 1; i >= 0 && removed < n; i-- {
		e := f.order[i]
		ident, _, _, _, _ := f.leaves.Get(e)
		if !ident.Dynamic {
			continue
		}
		f.destroy(e)
		removed++
	}
	return removed
}

// ExpireOlderThan destroys dynamic leaves whose age exceeds maxAge.
func (f *Field) ExpireOlderThan(now, maxAge time.Duration) int {
	// Collect first; the world is locked while a query is open
	f.toRemove = f.toRemove[:0]
	query := f.leafFilter.Query()
	for query.Next() {
		ident, _, _, _, _ := query.Get()
		if ident.Dynamic && now-ident.CreatedAt > maxAge {
			f.toRemove = append(f.toRemove, query.Entity())
		}
	}
	for _, e := range f.toRemove {
		f.destroy(e)
	}
	return len(f.toRemove)
}

// destroy detaches the display handle and removes the entity.
func (f *Field) destroy(e ecs.Entity) {
	if !f.world.Alive(e) {
		return
	}
	ident, _, _, _, _ := f.leaves.Get(e)
	id, dynamic := ident.ID, ident.Dynamic

	if h, ok := f.handles[id]; ok {
		h.Detach()
		delete(f.handles, id)
	}
	for i, o := range f.order {
		if o == e {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	if !dynamic {
		f.statics--
	}
	f.world.RemoveEntity(e)
}

// SetCapacity changes the population bound and destroys the newest dynamic
// leaves beyond it. The bound never drops below the static leaf count.
// Returns the number destroyed.
func (f *Field) SetCapacity(n int) int {
	f.capacity = max(n, f.statics, 0)
	if excess := f.Len() - n; excess > 0 {
		return f.RemoveNewest(excess)
	}
	return 0
}

// Capacity returns the current population bound.
func (f *Field) Capacity() int { return f.capacity }

// Len returns the number of leaves.
func (f *Field) Len() int { return len(f.order) }

// Statics returns the number of static leaves still present.
func (f *Field) Statics() int { return f.statics }

// Resize updates the viewport. Leaves keep their positions.
func (f *Field) Resize(width, height float64) {
	f.width, f.height = width, height
}

// Size returns the viewport dimensions.
func (f *Field) Size() (float64, float64) { return f.width, f.height }

// UpdateAmbientForce sets the wind from a pointer movement delta.
func (f *Field) UpdateAmbientForce(dx, dy float64) {
	f.wind.Set(dx, dy, f.cfg.Wind)
}

// ResetAmbientForce zeroes the wind.
func (f *Field) ResetAmbientForce() { f.wind.Reset() }

// AmbientForce returns the current wind.
func (f *Field) AmbientForce() systems.AmbientForce { return f.wind }

// Elapsed returns the time of the last step in seconds.
func (f *Field) Elapsed() float64 { return f.elapsed }

// Step advances the wind by one decay step and every leaf by one frame.
// elapsed is seconds since the field started; it is clamped to be
// non-negative and non-decreasing. When paused nothing changes.
func (f *Field) Step(elapsed float64, pointer Pointer, paused bool) StepResult {
	var res StepResult
	if paused {
		return res
	}
	if !systems.Finite(elapsed) || elapsed < f.elapsed {
		elapsed = f.elapsed
	}
	f.elapsed = elapsed

	f.wind.Decay(f.cfg.Wind)

	active := pointer.Active && systems.FinitePoint(pointer.X, pointer.Y)
	m := f.cfg.Motion
	b := f.cfg.Bounds

	f.toRemove = f.toRemove[:0]
	query := f.leafFilter.Query()
	for query.Next() {
		ident, kin, tr, _, tf := query.Get()
		res.Stepped++

		systems.Fall(kin, tr, elapsed, m)

		var av systems.Avoidance
		if active {
			av = systems.ComputeAvoidance(pointer.X, pointer.Y, kin.X, kin.Y, f.wind, f.cfg.Avoidance, f.rng)
		}
		systems.Integrate(kin, tr, elapsed, av, m)

		if systems.BelowBottom(kin, f.height, b) || !systems.FinitePoint(kin.X, kin.Y) {
			if ident.Dynamic {
				f.toRemove = append(f.toRemove, query.Entity())
				res.Exited++
				continue
			}
			systems.Recycle(kin, tr, f.rng, b)
			res.Recycled++
		}
		if systems.ClampSides(kin, f.width, b) {
			res.Clamped++
		}

		*tf = systems.Render(kin, ident.ID, elapsed, av.Influence, m)
		if av.Influence > res.MaxInfluence {
			res.MaxInfluence = av.Influence
		}
	}

	for _, e := range f.toRemove {
		f.destroy(e)
	}
	return res
}

// Apply writes each leaf's latest transform to its display handle.
func (f *Field) Apply() {
	for _, e := range f.order {
		ident, _, _, _, tf := f.leaves.Get(e)
		h, ok := f.handles[ident.ID]
		if !ok {
			continue
		}
		h.SetTransform(*tf)
		if !h.shown {
			h.SetVisible(true)
			h.shown = true
		}
	}
}

// Transforms returns the render output of every leaf in insertion order.
func (f *Field) Transforms() []components.Transform {
	out := make([]components.Transform, 0, len(f.order))
	for _, e := range f.order {
		_, _, _, _, tf := f.leaves.Get(e)
		out = append(out, *tf)
	}
	return out
}

// Each calls fn with a copy of every leaf in insertion order.
func (f *Field) Each(fn func(Leaf)) {
	for _, e := range f.order {
		fn(f.leafAt(e))
	}
}

// Oldest returns a copy of the earliest inserted leaf still present.
func (f *Field) Oldest() (Leaf, bool) {
	if len(f.order) == 0 {
		return Leaf{}, false
	}
	return f.leafAt(f.order[0]), true
}

func (f *Field) leafAt(e ecs.Entity) Leaf {
	ident, kin, tr, look, tf := f.leaves.Get(e)
	return Leaf{
		Identity:   *ident,
		Kinematics: *kin,
		Traits:     *tr,
		Appearance: *look,
		Transform:  *tf,
	}
}

// Counts returns the number of static and dynamic leaves.
func (f *Field) Counts() (static, dynamic int) {
	return f.statics, len(f.order) - f.statics
}

// Nearest returns the leaf closest to (x, y) within radius.
func (f *Field) Nearest(x, y, radius float64) (Leaf, bool) {
	if !systems.FinitePoint(x, y) {
		return Leaf{}, false
	}
	best := radius * radius
	var found ecs.Entity
	ok := false
	for _, e := range f.order {
		_, kin, _, _, _ := f.leaves.Get(e)
		dx, dy := kin.X-x, kin.Y-y
		if d := dx*dx + dy*dy; d <= best {
			best = d
			found = e
			ok = true
		}
	}
	if !ok {
		return Leaf{}, false
	}
	return f.leafAt(found), true
}
