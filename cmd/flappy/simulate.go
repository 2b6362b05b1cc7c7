package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/game"
	"github.com/vovakirdan/tui-flappy/internal/highscore"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
)

var (
	flagRounds   int
	flagRealtime bool
	flagGiveUp   int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Let the autopilot play without a display",
	Long: `Run rounds with an autopilot at full speed and print the results.
The same seed always produces the same rounds. The stored high score is
never touched: simulated rounds keep their own in-memory high score.

Examples:
  flappy simulate
  flappy simulate --rounds 20 --seed 42
  flappy simulate --realtime --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagRounds, "rounds", 5, "Rounds to play")
	simulateCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Tick at the configured rate instead of full speed")
	simulateCmd.Flags().IntVar(&flagGiveUp, "give-up", 36_000, "Ticks into a round after which the autopilot stops flapping (0 = never)")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	if flagRounds <= 0 {
		return fmt.Errorf("--rounds must be positive, got %d", flagRounds)
	}
	logger, err := newLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	s, err := newSession(logger)
	if err != nil {
		return err
	}

	ctrl := game.NewController(s.cfg, s.lib, s.rng, game.Deps{
		Scores: &highscore.MemoryStore{},
		Logger: logger,
	})
	pilot := game.NewAutopilot(ctrl, flagRounds)
	pilot.GiveUpAfter(flagGiveUp)

	if flagRealtime {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		if err := ctrl.Run(ctx, pilot); err != nil && err != context.Canceled {
			return err
		}
	} else {
		for ctrl.Running() {
			ctrl.Step(pilot.Poll())
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), tui.RenderResults(ctrl.Results()))
	return nil
}
