package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/leaves/game"
)

// Snapshot is the raw window input for one frame.
type Snapshot struct {
	MouseX, MouseY  float32
	OnScreen        bool
	TouchPoints     int
	TouchX, TouchY  float32
	Width, Height   int
	Minimized       bool
	TogglePause     bool
	ToggleInfluence bool
}

// PollSnapshot reads the current raylib input state.
func PollSnapshot() Snapshot {
	s := Snapshot{
		OnScreen:        rl.IsCursorOnScreen(),
		TouchPoints:     int(rl.GetTouchPointCount()),
		Width:           rl.GetScreenWidth(),
		Height:          rl.GetScreenHeight(),
		Minimized:       rl.IsWindowMinimized(),
		TogglePause:     rl.IsKeyPressed(rl.KeySpace),
		ToggleInfluence: rl.IsKeyPressed(rl.KeyM),
	}
	mouse := rl.GetMousePosition()
	s.MouseX, s.MouseY = mouse.X, mouse.Y
	if s.TouchPoints > 0 {
		touch := rl.GetTouchPosition(0)
		s.TouchX, s.TouchY = touch.X, touch.Y
	}
	return s
}

// Translator turns successive snapshots into game events.
type Translator struct {
	started       bool
	lastX, lastY  float32
	onScreen      bool
	touching      bool
	width, height int
	minimized     bool
}

// NewTranslator creates a translator for a window of the given size.
func NewTranslator(width, height int) *Translator {
	return &Translator{width: width, height: height}
}

// Translate compares s with the previous snapshot and returns the events in
// the order they should be handled.
func (t *Translator) Translate(s Snapshot) []game.Event {
	var events []game.Event

	if s.Width != t.width || s.Height != t.height {
		t.width, t.height = s.Width, s.Height
		events = append(events, game.Event{Kind: game.EventResize, X: float64(s.Width), Y: float64(s.Height)})
	}
	if s.Minimized != t.minimized {
		t.minimized = s.Minimized
		events = append(events, game.Event{Kind: game.EventVisibility, On: !s.Minimized})
	}

	if s.OnScreen && !t.onScreen {
		events = append(events, game.Event{Kind: game.EventPointerEnter})
	}
	if s.OnScreen && (!t.started || s.MouseX != t.lastX || s.MouseY != t.lastY) {
		ev := game.Event{Kind: game.EventPointerMove, X: float64(s.MouseX), Y: float64(s.MouseY)}
		if t.started {
			ev.DX = float64(s.MouseX - t.lastX)
			ev.DY = float64(s.MouseY - t.lastY)
		}
		events = append(events, ev)
		t.lastX, t.lastY = s.MouseX, s.MouseY
		t.started = true
	}
	if !s.OnScreen && t.onScreen {
		events = append(events, game.Event{Kind: game.EventPointerLeave})
	}
	t.onScreen = s.OnScreen

	touching := s.TouchPoints > 0 && !overControls(s.TouchX, s.TouchY, t.width, t.height)
	switch {
	case touching && !t.touching:
		events = append(events, game.Event{Kind: game.EventTouchStart, X: float64(s.TouchX), Y: float64(s.TouchY)})
	case touching:
		events = append(events, game.Event{Kind: game.EventTouchMove, X: float64(s.TouchX), Y: float64(s.TouchY)})
	}
	t.touching = touching

	if s.TogglePause {
		events = append(events, game.Event{Kind: game.EventTogglePause})
	}
	if s.ToggleInfluence {
		events = append(events, game.Event{Kind: game.EventToggleInfluence})
	}
	return events
}
