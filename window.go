package main

import (
	"fmt"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/leaves/game"
	"github.com/pthm-cable/leaves/renderer"
)

var backgroundColor = rl.Color{R: 24, G: 22, B: 28, A: 255}

// inspectRadius is how close the pointer must be to a leaf to inspect it.
const inspectRadius = 60

// runWindow opens a raylib window and runs the field until it is closed.
func runWindow(opts game.Options) error {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), "Leaves")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(opts.Config.Screen.TargetFPS))

	display := renderer.NewLeafRenderer()
	opts.Display = display
	g, err := game.NewGame(opts)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	defer g.Close()

	translator := renderer.NewTranslator(rl.GetScreenWidth(), rl.GetScreenHeight())
	inspecting := false
	start := time.Now()

	slog.Info("window opened", "width", opts.Width, "height", opts.Height, "seed", opts.Seed)

	for !rl.WindowShouldClose() {
		for _, ev := range translator.Translate(renderer.PollSnapshot()) {
			g.HandleEvent(ev)
		}
		if rl.IsKeyPressed(rl.KeyI) {
			inspecting = !inspecting
		}

		now := time.Since(start)
		g.Frame(now)

		rl.BeginDrawing()
		rl.ClearBackground(backgroundColor)
		display.Draw()
		renderer.DrawRipples(g)
		renderer.DrawIndicator(g.Indicator())
		if inspecting {
			p := g.Pointer()
			if leaf, ok := g.Field().Nearest(p.X, p.Y, inspectRadius); ok {
				renderer.DrawInspector(leaf, g.Loop().Now())
			}
		}
		if renderer.DrawControls(g.Controls()) {
			g.HandleEvent(game.Event{Kind: game.EventTogglePause})
		}
		renderer.DrawHUD(g)
		rl.EndDrawing()
	}

	g.LogState()
	return nil
}
