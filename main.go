package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/leaves/config"
	"github.com/pthm-cable/leaves/game"
)

var (
	configPath    string
	seed          int64
	width         int
	height        int
	reducedMotion bool
	lowPower      bool
	logStats      bool
	statsWindow   float64
	outputDir     string
	debug         bool
)

var rootCmd = &cobra.Command{
	Use:          "leaves",
	Short:        "Autumn leaves that drift away from the pointer",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize config before anything else
		if err := config.Init(configPath); err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		applyOverrides(cmd, config.Cfg())
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		setupLogger(os.Stderr, false)
		return runWindow(gameOptions())
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to config.yaml (empty = use defaults)")
	flags.Int64Var(&seed, "seed", 0, "RNG seed (0 = time-based)")
	flags.IntVar(&width, "width", 0, "Field width in pixels (0 = use config)")
	flags.IntVar(&height, "height", 0, "Field height in pixels (0 = use config)")
	flags.BoolVar(&reducedMotion, "reduced-motion", false, "Start paused with the controls hidden")
	flags.BoolVar(&lowPower, "low-power", false, "Use the narrow-screen leaf capacity")
	flags.BoolVar(&logStats, "log-stats", false, "Output window stats via slog")
	flags.Float64Var(&statsWindow, "stats-window", 0, "Stats window size in seconds (0 = use config)")
	flags.StringVar(&outputDir, "output-dir", "", "Output directory for CSV logs and config snapshot")
	flags.BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(termCmd, headlessCmd)
}

// applyOverrides copies explicitly set flags onto the loaded config.
func applyOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if width > 0 {
		cfg.Screen.Width = width
	}
	if height > 0 {
		cfg.Screen.Height = height
	}
	if flags.Changed("reduced-motion") {
		cfg.Screen.ReducedMotion = reducedMotion
	}
	if flags.Changed("low-power") {
		cfg.Screen.LowPower = lowPower
	}
}

// gameOptions builds controller options from the flags and global config.
func gameOptions() game.Options {
	cfg := config.Cfg()
	rngSeed := seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	return game.Options{
		Config:         cfg,
		Seed:           rngSeed,
		Width:          float64(cfg.Screen.Width),
		Height:         float64(cfg.Screen.Height),
		LogStats:       logStats,
		StatsWindowSec: statsWindow,
		OutputDir:      outputDir,
	}
}

// setupLogger installs the default slog logger.
func setupLogger(w io.Writer, json bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(w, opts)
	if json {
		handler = slog.NewJSONHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
