// Package config provides YAML-based game configuration loading.
// A Config is built once at startup and passed by pointer to every component;
// nothing mutates it afterwards.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"
)

// Config contains all configuration for the game.
type Config struct {
	Window    Window    `yaml:"window"`
	TickRate  int       `yaml:"tick_rate"` // Simulation ticks per second
	Seed      int64     `yaml:"seed"`      // RNG seed, 0 = time based
	Player    Player    `yaml:"player"`
	Pipes     Pipes     `yaml:"pipes"`
	Colors    Palette   `yaml:"colors"`
	Assets    Assets    `yaml:"assets"`
	Audio     Audio     `yaml:"audio"`
	HighScore HighScore `yaml:"high_score"`
}

// Window defines the logical screen.
type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Player defines avatar physics and size.
type Player struct {
	Gravity     float64 `yaml:"gravity"`      // Velocity added every tick
	JumpImpulse float64 `yaml:"jump_impulse"` // Magnitude of the upward velocity set by a jump
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
}

// Pipes defines obstacle parameters.
type Pipes struct {
	SpawnIntervalMS int     `yaml:"spawn_interval_ms"`
	SegmentWidth    int     `yaml:"segment_width"`
	SegmentHeight   int     `yaml:"segment_height"`
	Margin          int     `yaml:"margin"` // Three margins are kept free of body segments
	Speed           float64 `yaml:"speed"`  // Pixels per second
	ScoreIncrement  int     `yaml:"score_increment"`
}

// Palette holds the "#rrggbb" colors used for text and wait screens.
type Palette struct {
	Text       Hex `yaml:"text"`
	Background Hex `yaml:"background"`
}

// Assets points at image and sound files. An empty Dir selects the built-in set.
type Assets struct {
	Dir       string            `yaml:"dir"`
	ImagesDir string            `yaml:"images_dir"`
	SoundsDir string            `yaml:"sounds_dir"`
	Images    map[string]string `yaml:"images"`
	Sounds    map[string]string `yaml:"sounds"`
}

// Audio configures the sound backend.
type Audio struct {
	Enabled    bool `yaml:"enabled"`
	SampleRate int  `yaml:"sample_rate"`
	FadeOutMS  int  `yaml:"fade_out_ms"`
}

// HighScore selects where the single high score value lives.
type HighScore struct {
	Backend string `yaml:"backend"` // "file", "sqlite" or "gdata"
	Path    string `yaml:"path"`    // File path, database path or gdata app name
}

// Hex is a "#rrggbb" color string.
type Hex string

// RGBA parses the hex string into an opaque color.
func (h Hex) RGBA() (color.RGBA, error) {
	s := strings.TrimPrefix(string(h), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("config: invalid color %q", string(h))
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("config: invalid color %q: %w", string(h), err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// Color returns the parsed color, or white if the value is malformed.
// Validate reports malformed colors, so callers holding a validated Config never see the fallback.
func (h Hex) Color() color.RGBA {
	c, err := h.RGBA()
	if err != nil {
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return c
}

// TickInterval returns the duration of one simulation tick.
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// SpawnInterval returns the obstacle spawn cadence.
func (c *Config) SpawnInterval() time.Duration {
	return time.Duration(c.Pipes.SpawnIntervalMS) * time.Millisecond
}

// FadeOut returns how long music takes to fade when a wait screen is left.
func (c *Config) FadeOut() time.Duration {
	return time.Duration(c.Audio.FadeOutMS) * time.Millisecond
}

// PipeStep returns how far obstacles move per tick.
func (c *Config) PipeStep() float64 {
	return c.Pipes.Speed / float64(c.TickRate)
}

// TotalSegments returns how many body segments one obstacle distributes
// between its bottom and top runs.
func (c *Config) TotalSegments() int {
	p := c.Pipes
	return (c.Window.Height - 3*p.Margin - 2*p.SegmentHeight) / p.SegmentHeight
}

// Validate checks the configuration for values the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate must be positive, got %d", c.TickRate))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, fmt.Errorf("player size must be positive, got %dx%d", c.Player.Width, c.Player.Height))
	}
	if c.Pipes.SpawnIntervalMS <= 0 {
		errs = append(errs, fmt.Errorf("pipes.spawn_interval_ms must be positive, got %d", c.Pipes.SpawnIntervalMS))
	}
	if c.Pipes.SegmentWidth <= 0 || c.Pipes.SegmentHeight <= 0 {
		errs = append(errs, fmt.Errorf("pipe segment size must be positive, got %dx%d", c.Pipes.SegmentWidth, c.Pipes.SegmentHeight))
	} else if c.TotalSegments() < 1 {
		errs = append(errs, fmt.Errorf("window height %d leaves no room for pipe segments", c.Window.Height))
	}
	if c.Pipes.Speed <= 0 {
		errs = append(errs, fmt.Errorf("pipes.speed must be positive, got %g", c.Pipes.Speed))
	}
	if c.Pipes.ScoreIncrement <= 0 {
		errs = append(errs, fmt.Errorf("pipes.score_increment must be positive, got %d", c.Pipes.ScoreIncrement))
	}
	for name, h := range map[string]Hex{"colors.text": c.Colors.Text, "colors.background": c.Colors.Background} {
		if _, err := h.RGBA(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	switch c.HighScore.Backend {
	case "file", "sqlite", "gdata":
	default:
		errs = append(errs, fmt.Errorf("high_score.backend must be file, sqlite or gdata, got %q", c.HighScore.Backend))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid configuration: %w", err)
	}
	return nil
}
