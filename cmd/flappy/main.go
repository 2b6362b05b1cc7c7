// flappy is a side-scrolling reflex game: keep the bird in the air and fly it
// through the gaps between pipes.
//
// Usage:
//
//	flappy play              - Play in a window (or --frontend tui for the terminal)
//	flappy score             - Show the stored high score
//	flappy config            - Print the effective configuration
//	flappy simulate          - Let the autopilot play headless rounds
//
// Global flags:
//
//	--config <path>      - Config file (default search: ~/.flappy, ./configs, built-in)
//	--fps <rate>         - Tick rate (default: from config, 60)
//	--seed <value>       - RNG seed for reproducible rounds
//	--backend <name>     - High score backend: file, sqlite, gdata
//	--high-score <path>  - High score file, database or gdata app name
package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/highscore"
)

var (
	// Global flags
	flagConfig    string
	flagLogLevel  string
	flagFPS       int
	flagSeed      int64
	flagBackend   string
	flagHighScore string
	flagAssets    string
	flagMute      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy - fly a bird through the pipes",
	Long: `Flappy is a side-scrolling reflex game. Flap to stay in the air, pass
through the gaps between pipes and beat your high score.

Available commands:
  play      - Play the game
  score     - Show or reset the high score
  config    - Print the effective configuration
  simulate  - Run autopilot rounds without a display

Examples:
  flappy play
  flappy play --frontend tui
  flappy score --reset
  flappy simulate --rounds 10 --seed 42`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = from config, then time based)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "High score backend: file, sqlite, gdata")
	rootCmd.PersistentFlags().StringVar(&flagHighScore, "high-score", "", "High score path (file, database or gdata app name)")
	rootCmd.PersistentFlags().StringVar(&flagAssets, "assets", "", "Asset directory (empty = built-in assets)")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable audio")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(simulateCmd)
}

// gdataAppName is used when the gdata backend is picked without an explicit app name.
const gdataAppName = "flappy"

// loadConfig loads the configuration and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	o := config.Overrides{
		TickRate:  flagFPS,
		Seed:      flagSeed,
		AssetsDir: flagAssets,
		Backend:   flagBackend,
		ScorePath: flagHighScore,
		Mute:      flagMute,
	}
	if o.Backend == highscore.BackendGdata && o.ScorePath == "" {
		o.ScorePath = gdataAppName
	}
	if err := o.Apply(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// newLogger creates the process logger writing to w.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappy",
		Level:           level,
	}), nil
}

// openLogFile opens ~/.flappy/flappy.log for appending.
func openLogFile() (*os.File, error) {
	path, err := config.ExpandHome(filepath.Join("~", ".flappy", "flappy.log"))
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// session bundles what every command that runs the game needs.
type session struct {
	cfg    *config.Config
	lib    *assets.Library
	rng    *rand.Rand
	logger *log.Logger
}

// newSession loads the config and assets and seeds the RNG.
func newSession(logger *log.Logger) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	lib, err := assets.Load(cfg)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Debug("session ready", "seed", seed, "assets", cfg.Assets.Dir, "backend", cfg.HighScore.Backend)
	return &session{cfg: cfg, lib: lib, rng: rand.New(rand.NewSource(seed)), logger: logger}, nil
}
