package renderer

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/leaves/game"
	"github.com/pthm-cable/leaves/inspector"
)

// Colors for overlays.
var (
	outerRingColor   = rl.Color{R: 255, G: 255, B: 255, A: 60}
	innerRingColor   = rl.Color{R: 255, G: 200, B: 120, A: 90}
	flutterRingColor = rl.Color{R: 255, G: 120, B: 80, A: 120}
	panelBg          = rl.Color{R: 20, G: 20, B: 25, A: 220}
	panelBorder      = rl.Color{R: 80, G: 80, B: 90, A: 255}
	labelColor       = rl.Color{R: 180, G: 180, B: 180, A: 255}
	barColor         = rl.Color{R: 218, G: 165, B: 32, A: 255}
)

// DrawIndicator draws the avoidance radii around the pointer.
func DrawIndicator(ind game.InfluenceIndicator) {
	if !ind.Visible {
		return
	}
	x, y := int32(ind.X), int32(ind.Y)
	rl.DrawCircleLines(x, y, float32(ind.Outer), outerRingColor)
	rl.DrawCircleLines(x, y, float32(ind.Inner), innerRingColor)
	rl.DrawCircleLines(x, y, float32(ind.Flutter), flutterRingColor)
}

// DrawRipples draws touch ripples as expanding, fading rings.
func DrawRipples(g *game.Game) {
	g.Ripples(func(x, y, progress float64) {
		radius := float32(10 + progress*50)
		alpha := uint8((1 - progress) * 180)
		rl.DrawCircleLines(int32(x), int32(y), radius, rl.Color{R: 255, G: 255, B: 255, A: alpha})
	})
}

// DrawHUD draws the frame rate and population in the top-left corner.
func DrawHUD(g *game.Game) {
	static, dynamic := g.Field().Counts()
	status := fmt.Sprintf("FPS: %d  Leaves: %d/%d  (static %d, dynamic %d)",
		rl.GetFPS(), static+dynamic, g.Field().Capacity(), static, dynamic)
	rl.DrawText(status, 10, 10, 14, labelColor)
	if g.Degraded() {
		rl.DrawText("reduced for performance", 10, 28, 12, rl.Yellow)
	}
}

// DrawInspector draws the component panel for one leaf.
func DrawInspector(leaf game.Leaf, now time.Duration) {
	sections := inspector.Leaf(leaf)

	const (
		width    = 230
		padding  = 10
		rowH     = 16
		fontSize = 12
	)
	rows := 0
	for _, s := range sections {
		rows += len(s.Fields) + 1
	}
	height := int32(rows*rowH + 40)
	x := int32(rl.GetScreenWidth()) - width - 10
	y := int32(40)

	rl.DrawRectangle(x, y, width, height, panelBg)
	rl.DrawRectangleLines(x, y, width, height, panelBorder)
	rl.DrawText(inspector.Title(leaf, now), x+padding, y+padding, 14, rl.White)

	cy := y + padding + 22
	for _, s := range sections {
		rl.DrawText(s.Title, x+padding, cy, fontSize, rl.Yellow)
		cy += rowH
		for _, f := range s.Fields {
			rl.DrawText(f.Name, x+padding, cy, fontSize, labelColor)
			vx := x + 120
			if f.Widget == inspector.WidgetBar {
				if ratio, ok := f.Ratio(); ok {
					rl.DrawRectangle(vx, cy+2, 60, 8, panelBorder)
					rl.DrawRectangle(vx, cy+2, int32(60*ratio), 8, barColor)
					vx += 66
				}
			}
			rl.DrawText(f.Text(), vx, cy, fontSize, rl.White)
			cy += rowH
		}
	}
}
