package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/highscore"
)

var flagReset bool

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Show the high score",
	Long: `Print the stored high score, or reset it to zero.

Examples:
  flappy score
  flappy score --reset
  flappy score --backend sqlite --high-score ~/.flappy/scores.db`,
	Args: cobra.NoArgs,
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().BoolVar(&flagReset, "reset", false, "Reset the high score to 0")
}

func runScore(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := highscore.Open(cfg.HighScore.Backend, cfg.HighScore.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	return printScore(cmd.OutOrStdout(), store, flagReset)
}

func printScore(w io.Writer, store highscore.Store, reset bool) error {
	if reset {
		if err := store.Save(0); err != nil {
			return err
		}
		fmt.Fprintln(w, "High score reset.")
		return nil
	}
	n, err := store.Load()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "High score: %d\n", n)
	return nil
}
