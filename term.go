package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/pthm-cable/leaves/game"
	"github.com/pthm-cable/leaves/terminal"
)

var logFile string

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Run the field in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		// The screen owns stdout and stderr while running
		var w io.Writer = io.Discard
		if logFile != "" {
			f, err := os.Create(logFile)
			if err != nil {
				return fmt.Errorf("creating log file: %w", err)
			}
			defer f.Close()
			w = f
		}
		setupLogger(w, false)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return runTerminal(ctx, gameOptions())
	},
}

func init() {
	termCmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file")
}

// runTerminal runs the field on the controlling terminal until the user quits.
func runTerminal(ctx context.Context, opts game.Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}

	display := terminal.NewDisplay()
	opts.Display = display
	opts.Width, opts.Height = terminal.Size(screen)
	g, err := game.NewGame(opts)
	if err != nil {
		screen.Fini()
		return fmt.Errorf("creating game: %w", err)
	}
	defer g.Close()

	err = terminal.NewApp(screen, g, display).Run(ctx)
	g.LogState()
	return err
}
