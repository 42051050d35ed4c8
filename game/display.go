package game

import "github.com/pthm-cable/leaves/components"

// Display creates per-leaf visual handles. Backends (window, terminal) implement it.
type Display interface {
	Attach(id uint64, look components.Appearance) Handle
}

// Handle is the visual element of one leaf.
type Handle interface {
	SetTransform(tf components.Transform)
	SetVisible(visible bool)
	Detach()
}

// NullDisplay discards everything. Used when no backend is available.
type NullDisplay struct{}

// Attach returns a no-op handle.
func (NullDisplay) Attach(uint64, components.Appearance) Handle { return nullHandle{} }

type nullHandle struct{}

func (nullHandle) SetTransform(components.Transform) {}
func (nullHandle) SetVisible(bool)                   {}
func (nullHandle) Detach()                           {}

// displayOrNull substitutes NullDisplay for a missing backend.
func displayOrNull(d Display) Display {
	if d == nil {
		return NullDisplay{}
	}
	return d
}
