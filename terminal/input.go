package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/leaves/game"
)

// Translator converts tcell events into game events.
type Translator struct {
	seen         bool
	lastX, lastY float64
	pressed      bool
}

// Translate returns the game events for ev and whether the user asked to quit.
func (t *Translator) Translate(ev tcell.Event) ([]game.Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return nil, true
		case ev.Key() == tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return nil, true
			case ' ':
				return []game.Event{{Kind: game.EventTogglePause}}, false
			case 'm', 'M':
				return []game.Event{{Kind: game.EventToggleInfluence}}, false
			}
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		x, y := FromCell(col, row)
		var events []game.Event

		move := game.Event{Kind: game.EventPointerMove, X: x, Y: y}
		if t.seen {
			move.DX, move.DY = x-t.lastX, y-t.lastY
		}
		if !t.seen || move.DX != 0 || move.DY != 0 {
			events = append(events, move)
		}
		t.seen = true
		t.lastX, t.lastY = x, y

		down := ev.Buttons()&tcell.Button1 != 0
		if down && !t.pressed {
			events = append(events, game.Event{Kind: game.EventTouchStart, X: x, Y: y})
		}
		t.pressed = down
		return events, false

	case *tcell.EventResize:
		cols, rows := ev.Size()
		return []game.Event{{
			Kind: game.EventResize,
			X:    float64(cols * CellWidth),
			Y:    float64(rows * CellHeight),
		}}, false

	case *tcell.EventFocus:
		if ev.Focused {
			return []game.Event{{Kind: game.EventPointerEnter}}, false
		}
		return []game.Event{{Kind: game.EventPointerLeave}}, false
	}
	return nil, false
}
