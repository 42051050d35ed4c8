package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/leaves/game"
)

const frameInterval = 16 * time.Millisecond

var (
	rippleStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	indicatorStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	statusStyle    = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// App runs a game in a terminal screen.
type App struct {
	screen     tcell.Screen
	game       *game.Game
	display    *Display
	translator Translator
}

// NewApp wires a game to an initialised screen. The game must have been
// created with display as its Display.
func NewApp(screen tcell.Screen, g *game.Game, display *Display) *App {
	return &App{screen: screen, game: g, display: display}
}

// Size returns the field size in pixels for a screen.
func Size(screen tcell.Screen) (float64, float64) {
	cols, rows := screen.Size()
	return float64(cols * CellWidth), float64(rows * CellHeight)
}

// Run draws frames until ctx is cancelled or the user quits. The screen is
// finalised before Run returns.
func (a *App) Run(ctx context.Context) error {
	a.screen.EnableMouse(tcell.MouseMotionEvents)
	a.screen.EnableFocus()
	a.screen.HideCursor()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	polled := make(chan struct{})
	go func() {
		defer close(polled)
		for {
			// PollEvent returns nil once the screen is finalised
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	defer func() {
		close(done)
		a.screen.Fini()
		<-polled
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	start := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			evs, quit := a.translator.Translate(ev)
			if quit {
				slog.Info("quit requested")
				return nil
			}
			for _, e := range evs {
				a.game.HandleEvent(e)
			}
			if _, ok := ev.(*tcell.EventResize); ok {
				a.screen.Sync()
			}

		case <-ticker.C:
			now := time.Since(start)
			a.game.Frame(now)
			a.draw(now)
		}
	}
}

func (a *App) draw(now time.Duration) {
	a.screen.Clear()
	a.display.Draw(a.screen)

	a.game.Ripples(func(x, y, progress float64) {
		a.ring(x, y, 8+progress*40, '·', rippleStyle)
	})
	if ind := a.game.Indicator(); ind.Visible {
		a.ring(ind.X, ind.Y, ind.Outer, '.', indicatorStyle)
		a.ring(ind.X, ind.Y, ind.Inner, '.', indicatorStyle)
		a.ring(ind.X, ind.Y, ind.Flutter, '.', indicatorStyle)
	}
	a.status()
	a.screen.Show()
}

// ring plots a circle of radius r pixels around (x, y).
func (a *App) ring(x, y, r float64, ch rune, style tcell.Style) {
	cols, rows := a.screen.Size()
	steps := int(math.Max(12, r/2))
	for i := 0; i < steps; i++ {
		angle := 2 * math.Pi * float64(i) / float64(steps)
		col, row := ToCell(x+math.Cos(angle)*r, y+math.Sin(angle)*r)
		if col < 0 || row < 0 || col >= cols || row >= rows {
			continue
		}
		a.screen.SetContent(col, row, ch, nil, style)
	}
}

func (a *App) status() {
	_, rows := a.screen.Size()
	controls := a.game.Controls()
	line := fmt.Sprintf(" leaves %d/%d  fps %.0f  q quit  m radii", a.game.Field().Len(), a.game.Field().Capacity(), a.game.FPS())
	if controls.Visible {
		line += fmt.Sprintf("  space %s %s", controls.Icon, controls.Label)
	}
	for i, r := range []rune(line) {
		a.screen.SetContent(i, rows-1, r, nil, statusStyle)
	}
}
