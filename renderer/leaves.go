// Package renderer draws the leaf field in a raylib window.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/leaves/components"
	"github.com/pthm-cable/leaves/game"
)

// sprite is the raylib-side state of one attached leaf.
type sprite struct {
	owner   *LeafRenderer
	id      uint64
	color   rl.Color
	size    float32
	tf      components.Transform
	visible bool
}

func (s *sprite) SetTransform(tf components.Transform) { s.tf = tf }
func (s *sprite) SetVisible(v bool)                    { s.visible = v }
func (s *sprite) Detach()                              { s.owner.detach(s) }

// LeafRenderer is a game.Display that keeps one sprite per leaf and draws them
// in attach order.
type LeafRenderer struct {
	sprites []*sprite
}

// NewLeafRenderer creates an empty renderer.
func NewLeafRenderer() *LeafRenderer {
	return &LeafRenderer{sprites: make([]*sprite, 0, 32)}
}

// Attach implements game.Display.
func (r *LeafRenderer) Attach(id uint64, look components.Appearance) game.Handle {
	s := &sprite{
		owner: r,
		id:    id,
		color: rl.Color{R: look.Color.R, G: look.Color.G, B: look.Color.B, A: 230},
		size:  look.Size,
	}
	r.sprites = append(r.sprites, s)
	return s
}

func (r *LeafRenderer) detach(s *sprite) {
	for i, other := range r.sprites {
		if other == s {
			r.sprites = append(r.sprites[:i], r.sprites[i+1:]...)
			return
		}
	}
}

// Count returns the number of attached sprites.
func (r *LeafRenderer) Count() int {
	return len(r.sprites)
}

// Draw renders every visible sprite.
func (r *LeafRenderer) Draw() {
	for _, s := range r.sprites {
		if !s.visible {
			continue
		}
		drawLeaf(float32(s.tf.X), float32(s.tf.Y), float32(s.tf.Rotation), s.size*float32(s.tf.Scale), s.color)
	}
}

// leafPoints returns the tip, left edge, stem and right edge of a leaf of
// length size centred on (x, y), rotated by degrees.
func leafPoints(x, y, degrees, size float32) [4]rl.Vector2 {
	rad := float64(degrees) * math.Pi / 180
	cos := float32(math.Cos(rad))
	sin := float32(math.Sin(rad))

	half := size / 2
	width := size * 0.3
	local := [4]rl.Vector2{
		{X: 0, Y: -half},
		{X: -width, Y: 0},
		{X: 0, Y: half},
		{X: width, Y: 0},
	}
	var out [4]rl.Vector2
	for i, p := range local {
		out[i] = rl.Vector2{
			X: x + p.X*cos - p.Y*sin,
			Y: y + p.X*sin + p.Y*cos,
		}
	}
	return out
}

// drawLeaf draws a rotated diamond with a darker midrib.
func drawLeaf(x, y, degrees, size float32, color rl.Color) {
	p := leafPoints(x, y, degrees, size)

	// DrawTriangle requires counter-clockwise winding
	rl.DrawTriangle(p[0], p[1], p[2], color)
	rl.DrawTriangle(p[0], p[2], p[3], color)

	vein := rl.Color{R: color.R / 2, G: color.G / 2, B: color.B / 2, A: color.A}
	rl.DrawLineV(p[0], p[2], vein)
}
