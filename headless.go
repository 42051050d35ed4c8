package main

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/leaves/game"
)

const headlessFrame = time.Second / 60

var headlessFrames int

var headlessCmd = &cobra.Command{
	Use:   "headless",
	Short: "Run the field without graphics on a virtual 60 Hz clock",
	RunE: func(cmd *cobra.Command, args []string) error {
		setupLogger(os.Stdout, true)
		summary, err := runHeadless(gameOptions(), headlessFrames)
		if err != nil {
			return err
		}
		slog.Info("headless run complete",
			"frames", summary.Frames,
			"leaves", summary.Leaves,
			"capacity", summary.Capacity,
			"max_id", summary.MaxID,
			"degraded", summary.Degraded,
		)
		return nil
	},
}

func init() {
	headlessCmd.Flags().IntVar(&headlessFrames, "frames", 3600, "Number of frames to simulate")
}

// headlessSummary is the end state of a headless run.
type headlessSummary struct {
	Frames   uint64
	Leaves   int
	Capacity int
	MaxID    uint64
	Degraded bool
}

// orbit is the synthetic pointer path: a slow ellipse around the centre that
// leaves the field for a few seconds every cycle.
type orbit struct {
	cx, cy, rx, ry float64
	lastX, lastY   float64
	inside         bool
}

func newOrbit(w, h float64) *orbit {
	return &orbit{cx: w / 2, cy: h / 2, rx: w * 0.35, ry: h * 0.3}
}

// events returns the pointer events for loop time t.
func (o *orbit) events(t time.Duration) []game.Event {
	secs := t.Seconds()
	cycle := math.Mod(secs, 20)
	if cycle >= 16 {
		if o.inside {
			o.inside = false
			return []game.Event{{Kind: game.EventPointerLeave}}
		}
		return nil
	}

	angle := secs * 0.8
	x := o.cx + math.Cos(angle)*o.rx
	y := o.cy + math.Sin(angle*1.3)*o.ry
	var evs []game.Event
	if !o.inside {
		o.inside = true
		o.lastX, o.lastY = x, y
		evs = append(evs, game.Event{Kind: game.EventTouchStart, X: x, Y: y})
	}
	evs = append(evs, game.Event{Kind: game.EventPointerMove, X: x, Y: y, DX: x - o.lastX, DY: y - o.lastY})
	o.lastX, o.lastY = x, y
	return evs
}

// runHeadless drives the controller for the given number of frames.
func runHeadless(opts game.Options, frames int) (headlessSummary, error) {
	if frames <= 0 {
		return headlessSummary{}, fmt.Errorf("frames must be positive, got %d", frames)
	}

	opts.Display = game.NullDisplay{}
	g, err := game.NewGame(opts)
	if err != nil {
		return headlessSummary{}, fmt.Errorf("creating game: %w", err)
	}
	defer g.Close()

	w, h := g.Field().Size()
	pointer := newOrbit(w, h)

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"frames", frames,
		"output_dir", opts.OutputDir,
	)

	var now time.Duration
	for i := 0; i < frames; i++ {
		now += headlessFrame
		for _, ev := range pointer.events(now) {
			g.HandleEvent(ev)
		}
		g.Frame(now)
	}

	g.LogState()
	var maxID uint64
	g.Field().Each(func(l game.Leaf) {
		maxID = max(maxID, l.ID)
	})
	return headlessSummary{
		Frames:   g.Loop().Frames(),
		Leaves:   g.Field().Len(),
		Capacity: g.Field().Capacity(),
		MaxID:    maxID,
		Degraded: g.Degraded(),
	}, nil
}
