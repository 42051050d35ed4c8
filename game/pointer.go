package game

import (
	"time"

	"github.com/pthm-cable/leaves/systems"
)

// Pointer is the pointer state handed to Field.Step.
type Pointer struct {
	X, Y   float64
	Active bool
}

// PointerTracker holds the last pointer sample and expires it after an idle
// period without movement.
type PointerTracker struct {
	x, y     float64
	active   bool
	seen     bool
	lastMove time.Duration
	idle     time.Duration
}

// NewPointerTracker creates a tracker with the given idle timeout.
func NewPointerTracker(idle time.Duration) *PointerTracker {
	return &PointerTracker{idle: idle}
}

// Move records a sample. Non-finite samples are dropped and reported false.
func (p *PointerTracker) Move(x, y float64, now time.Duration) bool {
	if !systems.FinitePoint(x, y) {
		return false
	}
	p.x, p.y = x, y
	p.active = true
	p.seen = true
	p.lastMove = now
	return true
}

// Place records a position without activating the pointer.
func (p *PointerTracker) Place(x, y float64) bool {
	if !systems.FinitePoint(x, y) {
		return false
	}
	p.x, p.y = x, y
	p.seen = true
	return true
}

// Enter reactivates the pointer at its last known position. It does nothing
// if no position has ever been recorded.
func (p *PointerTracker) Enter(now time.Duration) {
	if !p.seen {
		return
	}
	p.active = true
	p.lastMove = now
}

// Leave marks the pointer inactive.
func (p *PointerTracker) Leave() {
	p.active = false
}

// Expire clears the active flag once the idle timeout has passed. Returns true
// on the transition to idle.
func (p *PointerTracker) Expire(now time.Duration) bool {
	if !p.active || now-p.lastMove < p.idle {
		return false
	}
	p.active = false
	return true
}

// State returns the current pointer state.
func (p *PointerTracker) State() Pointer {
	return Pointer{X: p.x, Y: p.y, Active: p.active}
}
