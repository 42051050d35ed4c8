package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/pthm-cable/leaves/config"
	"github.com/pthm-cable/leaves/game"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestOrbit_LeavesAndReturns(t *testing.T) {
	o := newOrbit(1280, 800)

	evs := o.events(headlessFrame)
	require.Len(t, evs, 2)
	assert.Equal(t, game.EventTouchStart, evs[0].Kind)
	assert.Equal(t, game.EventPointerMove, evs[1].Kind)
	assert.Zero(t, evs[1].DX)

	evs = o.events(2 * headlessFrame)
	require.Len(t, evs, 1)
	assert.NotZero(t, evs[0].DX)

	evs = o.events(16 * time.Second)
	assert.Equal(t, []game.Event{{Kind: game.EventPointerLeave}}, evs)
	assert.Empty(t, o.events(17*time.Second))

	evs = o.events(20 * time.Second)
	assert.Equal(t, game.EventTouchStart, evs[0].Kind)
}

func TestRunHeadless(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	dir := t.TempDir()

	summary, err := runHeadless(game.Options{
		Config:         cfg,
		Seed:           7,
		Width:          1280,
		Height:         800,
		StatsWindowSec: 5,
		OutputDir:      dir,
	}, 60*30)
	require.NoError(t, err)

	assert.Equal(t, uint64(60*30), summary.Frames)
	assert.LessOrEqual(t, summary.Leaves, summary.Capacity)
	assert.Equal(t, 20, summary.Capacity)
	assert.False(t, summary.Degraded, "virtual clock runs at a steady 60 fps")
	assert.GreaterOrEqual(t, summary.MaxID, uint64(len(cfg.Derived.StaticAnchors)), "dynamic leaves were spawned")

	stats, err := os.ReadFile(filepath.Join(dir, "stats.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(stats)), "\n")
	// Header plus one row per completed 5s window
	assert.GreaterOrEqual(t, len(lines), 1+5)
	assert.LessOrEqual(t, len(lines), 1+6)

	_, err = os.Stat(filepath.Join(dir, "config.yaml"))
	assert.NoError(t, err)
}

func TestRunHeadless_RejectsZeroFrames(t *testing.T) {
	_, err := runHeadless(game.Options{}, 0)
	assert.Error(t, err)
}

func TestHeadlessCommand_AppliesFlags(t *testing.T) {
	dir := t.TempDir()
	rootCmd.SetArgs([]string{"headless", "--frames", "120", "--seed", "3", "--width", "640", "--low-power", "--output-dir", dir})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		width, lowPower, outputDir, seed, headlessFrames = 0, false, "", 0, 3600
	})

	require.NoError(t, rootCmd.Execute())

	cfg := config.Cfg()
	assert.Equal(t, 640, cfg.Screen.Width)
	assert.Equal(t, 800, cfg.Screen.Height)
	assert.True(t, cfg.Screen.LowPower)

	loaded, err := config.Load(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 640, loaded.Screen.Width)
}
