package game

// EventKind identifies an input event delivered by a backend.
type EventKind int

const (
	EventPointerMove EventKind = iota
	EventPointerEnter
	EventPointerLeave
	EventTouchStart
	EventTouchMove
	EventTogglePause
	EventToggleInfluence
	EventResize
	EventVisibility
	EventReducedMotion
)

// Event is a backend-neutral input event. Fields not used by a kind are ignored.
type Event struct {
	Kind   EventKind
	X, Y   float64 // Position, or width and height for EventResize
	DX, DY float64 // Movement since the previous pointer sample
	On     bool    // Visible for EventVisibility, requested for EventReducedMotion
}

// HandleEvent dispatches one input event.
func (g *Game) HandleEvent(ev Event) {
	switch ev.Kind {
	case EventPointerMove:
		g.PointerMove(ev.X, ev.Y, ev.DX, ev.DY)
	case EventPointerEnter:
		g.PointerEnter()
	case EventPointerLeave:
		g.PointerLeave()
	case EventTouchStart:
		g.TouchStart(ev.X, ev.Y)
	case EventTouchMove:
		g.TouchMove(ev.X, ev.Y)
	case EventTogglePause:
		if g.reducedMotion {
			return
		}
		g.Toggle()
	case EventToggleInfluence:
		g.ToggleInfluenceIndicator()
	case EventResize:
		g.Resize(ev.X, ev.Y)
	case EventVisibility:
		g.SetVisible(ev.On)
	case EventReducedMotion:
		g.SetReducedMotion(ev.On)
	}
}
