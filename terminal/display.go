// Package terminal draws the leaf field in a terminal with tcell.
package terminal

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/leaves/components"
	"github.com/pthm-cable/leaves/game"
)

// Field coordinates are pixels; one cell covers CellWidth x CellHeight of them.
const (
	CellWidth  = 8
	CellHeight = 16
)

// glyphs by rotation, in 45 degree steps over a half turn.
var glyphs = [4]rune{'|', '/', '-', '\\'}

type cell struct {
	owner   *Display
	id      uint64
	style   tcell.Style
	tf      components.Transform
	visible bool
}

func (c *cell) SetTransform(tf components.Transform) { c.tf = tf }
func (c *cell) SetVisible(v bool)                    { c.visible = v }
func (c *cell) Detach()                              { c.owner.detach(c) }

// Display is a game.Display that maps each leaf to one terminal cell.
type Display struct {
	cells []*cell
}

// NewDisplay creates an empty display.
func NewDisplay() *Display {
	return &Display{}
}

// Attach implements game.Display.
func (d *Display) Attach(id uint64, look components.Appearance) game.Handle {
	c := &cell{
		owner: d,
		id:    id,
		style: tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(look.Color.R), int32(look.Color.G), int32(look.Color.B))),
	}
	d.cells = append(d.cells, c)
	return c
}

func (d *Display) detach(c *cell) {
	for i, other := range d.cells {
		if other == c {
			d.cells = append(d.cells[:i], d.cells[i+1:]...)
			return
		}
	}
}

// Count returns the number of attached leaves.
func (d *Display) Count() int {
	return len(d.cells)
}

// Draw puts every visible leaf on screen. Leaves outside the grid are skipped.
func (d *Display) Draw(screen tcell.Screen) {
	cols, rows := screen.Size()
	for _, c := range d.cells {
		if !c.visible {
			continue
		}
		col, row := ToCell(c.tf.X, c.tf.Y)
		if col < 0 || row < 0 || col >= cols || row >= rows {
			continue
		}
		screen.SetContent(col, row, Glyph(c.tf.Rotation), nil, c.style)
	}
}

// ToCell converts field pixels to a cell position.
func ToCell(x, y float64) (int, int) {
	return int(math.Floor(x / CellWidth)), int(math.Floor(y / CellHeight))
}

// FromCell returns the pixel centre of a cell.
func FromCell(col, row int) (float64, float64) {
	return float64(col)*CellWidth + CellWidth/2, float64(row)*CellHeight + CellHeight/2
}

// Glyph picks a stroke character for a rotation in degrees.
func Glyph(degrees float64) rune {
	d := math.Mod(degrees, 180)
	if d < 0 {
		d += 180
	}
	return glyphs[int(math.Round(d/45))%len(glyphs)]
}
