package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/leaves/components"
	"github.com/pthm-cable/leaves/config"
)

const frame = time.Second / 60

// recordingDisplay keeps every handle it hands out.
type recordingDisplay struct {
	handles map[uint64]*recordingHandle
}

func newRecordingDisplay() *recordingDisplay {
	return &recordingDisplay{handles: make(map[uint64]*recordingHandle)}
}

func (d *recordingDisplay) Attach(id uint64, look components.Appearance) Handle {
	h := &recordingHandle{id: id, look: look}
	d.handles[id] = h
	return h
}

func (d *recordingDisplay) attached() int {
	n := 0
	for _, h := range d.handles {
		if !h.detached {
			n++
		}
	}
	return n
}

type recordingHandle struct {
	id       uint64
	look     components.Appearance
	last     components.Transform
	writes   int
	visible  bool
	detached bool
}

func (h *recordingHandle) SetTransform(tf components.Transform) {
	h.last = tf
	h.writes++
}

func (h *recordingHandle) SetVisible(v bool) { h.visible = v }
func (h *recordingHandle) Detach()           { h.detached = true }

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg
}

func newTestField(t *testing.T, cfg *config.Config, seed int64) (*Field, *recordingDisplay) {
	t.Helper()
	display := newRecordingDisplay()
	f, err := NewField(cfg, rand.New(rand.NewSource(seed)), display, 1280, 800)
	require.NoError(t, err)
	return f, display
}

func newTestGame(t *testing.T, mutate func(*Options)) *Game {
	t.Helper()
	opts := Options{
		Config: testConfig(t),
		Seed:   1,
		Width:  1280,
		Height: 800,
	}
	if mutate != nil {
		mutate(&opts)
	}
	g, err := NewGame(opts)
	require.NoError(t, err)
	t.Cleanup(func() { g.Close() })
	return g
}

// runFrames advances g by n frames of length step, starting after start.
// Returns the time of the last frame.
func runFrames(g *Game, start time.Duration, n int, step time.Duration) time.Duration {
	now := start
	for i := 0; i < n; i++ {
		now += step
		g.Frame(now)
	}
	return now
}
