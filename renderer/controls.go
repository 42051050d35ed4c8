package renderer

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/leaves/game"
)

const (
	buttonWidth  = 90
	buttonHeight = 30
	buttonMargin = 16
)

// buttonBounds places the pause button in the bottom-right corner.
func buttonBounds(screenW, screenH int) rl.Rectangle {
	return rl.Rectangle{
		X:      float32(screenW - buttonWidth - buttonMargin),
		Y:      float32(screenH - buttonHeight - buttonMargin),
		Width:  buttonWidth,
		Height: buttonHeight,
	}
}

// DrawControls draws the pause/resume button and reports whether it was
// clicked this frame.
func DrawControls(state game.ControlState) bool {
	if !state.Visible {
		return false
	}
	bounds := buttonBounds(rl.GetScreenWidth(), rl.GetScreenHeight())
	// The default font has no glyphs for the play/pause symbols
	return gui.Button(bounds, state.Label)
}

// overControls reports whether a screen position is over the pause button, so
// clicks there are not also treated as pointer input.
func overControls(x, y float32, screenW, screenH int) bool {
	b := buttonBounds(screenW, screenH)
	return x >= b.X && x <= b.X+b.Width && y >= b.Y && y <= b.Y+b.Height
}
