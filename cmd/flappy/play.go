package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/game"
	"github.com/vovakirdan/tui-flappy/internal/highscore"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/platform/window"
)

// Frontends accepted by --frontend.
const (
	frontendWindow = "window"
	frontendTUI    = "tui"
)

var flagFrontend string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Start the game on the title screen.

Controls:
  Space/Up/Click  - Flap
  Any key         - Start a round from the title or game-over screen
  Q/Esc/Ctrl+C    - Quit (terminal); close the window to quit

Examples:
  flappy play
  flappy play --frontend tui
  flappy play --fps 120 --seed 7
  flappy play --backend sqlite --high-score ~/.flappy/scores.db`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagFrontend, "frontend", frontendWindow, "Where to play: window or tui")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	if flagFrontend != frontendWindow && flagFrontend != frontendTUI {
		return fmt.Errorf("unknown frontend %q, expected %s or %s", flagFrontend, frontendWindow, frontendTUI)
	}

	// The terminal frontend owns the screen, so logs go to a file
	logOut := os.Stderr
	if flagFrontend == frontendTUI {
		f, err := openLogFile()
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}
	logger, err := newLogger(logOut)
	if err != nil {
		return err
	}

	s, err := newSession(logger)
	if err != nil {
		return err
	}

	scores, err := highscore.Open(s.cfg.HighScore.Backend, s.cfg.HighScore.Path)
	if err != nil {
		return err
	}
	defer scores.Close()

	sound, closeAudio, err := openAudio(s)
	if err != nil {
		return err
	}
	defer closeAudio()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	deps := game.Deps{Audio: sound, Scores: scores, Logger: logger}
	logger.Info("starting", "frontend", flagFrontend, "tps", s.cfg.TickRate)

	if flagFrontend == frontendWindow {
		r, err := window.NewRenderer()
		if err != nil {
			return err
		}
		deps.Renderer = r
		ctrl := game.NewController(s.cfg, s.lib, s.rng, deps)
		ctrl.OnRound(logRound(logger))
		return window.Run(ctx, s.cfg, ctrl, r)
	}

	cols, rows := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cols, rows = w, h
	}
	canvas := tui.NewCanvas(s.cfg.Window.Width, s.cfg.Window.Height, cols, rows-2)
	deps.Renderer = canvas
	ctrl := game.NewController(s.cfg, s.lib, s.rng, deps)
	ctrl.OnRound(logRound(logger))

	shots, err := config.ExpandHome(filepath.Join("~", ".flappy", "screenshots"))
	if err != nil {
		shots = "."
	}
	return tui.Run(ctx, ctrl, canvas, tui.Options{
		TickInterval:  s.cfg.TickInterval(),
		ScreenshotDir: shots,
		Logger:        logger,
	})
}

// openAudio returns the sound backend. A missing audio device is not fatal:
// the game runs muted. Undecodable sound files are.
func openAudio(s *session) (game.Audio, func(), error) {
	if !s.cfg.Audio.Enabled {
		return game.NopAudio{}, func() {}, nil
	}
	p, err := audio.New(s.cfg, s.lib, s.logger)
	if err != nil {
		return nil, nil, err
	}
	if err := p.Start(); err != nil {
		s.logger.Warn("audio unavailable, playing muted", "err", err)
		return game.NopAudio{}, func() {}, nil
	}
	return p, func() { p.Close() }, nil
}

func logRound(logger *log.Logger) func(game.RoundResult) {
	return func(r game.RoundResult) {
		if r.NewHigh {
			logger.Info("new high score", "score", r.Score)
		}
	}
}
