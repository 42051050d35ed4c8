// Package components defines the ECS components stored for each leaf.
package components

import (
	"image/color"
	"time"
)

// Identity holds the stable identity of a leaf and its lifecycle class.
// Dynamic is fixed at creation: static leaves recycle to the top when they
// fall out of view, dynamic ones are destroyed.
type Identity struct {
	ID        uint64        `inspect:"label"`
	Dynamic   bool          `inspect:"bool"`
	CreatedAt time.Duration `inspect:"label"` // Loop time at creation (dynamic leaves only)
}

// Appearance holds the per-leaf look chosen at creation.
type Appearance struct {
	Color      color.RGBA `inspect:"skip"`
	Size       float32    `inspect:"label,fmt:%.0fpx"`
	Brightness float32    `inspect:"bar,max:1.2"`
	HueShift   float32    `inspect:"label,fmt:%+.0f°"`
}
