package game

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/highscore"
)

// Text sizes and offsets for the HUD and wait screens.
const (
	TitleSize   = 48
	TextSize    = 22
	HUDTop      = 15
	NoticeShift = 40 // Below the vertical center on the game-over screen
)

// Screen identifies which part of the cycle the controller is in.
type Screen int

const (
	ScreenStart Screen = iota
	ScreenPlaying
	ScreenGameOver
)

func (s Screen) String() string {
	switch s {
	case ScreenStart:
		return "start"
	case ScreenPlaying:
		return "playing"
	case ScreenGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Deps are the collaborators a controller talks to. Nil fields get silent defaults.
type Deps struct {
	Renderer Renderer
	Audio    Audio
	Scores   HighScores
	Logger   *log.Logger
}

// RoundResult is reported once per finished round.
type RoundResult struct {
	Score     int
	HighScore int
	NewHigh   bool
	Outcome   Outcome
	Ticks     int
}

// Controller runs the start -> play -> game-over cycle one tick at a time.
// It is the only mutator of game state and is not safe for concurrent use.
type Controller struct {
	cfg  *config.Config
	lib  *assets.Library
	deps Deps
	rng  *rand.Rand

	screen  Screen
	world   *World
	running bool
	now     time.Duration // Session time, advanced by one tick interval per Step

	highScore int
	newHigh   bool
	results   []RoundResult
	onRound   func(RoundResult)
}

// NewController creates a controller showing the start screen.
func NewController(cfg *config.Config, lib *assets.Library, rng *rand.Rand, deps Deps) *Controller {
	if deps.Renderer == nil {
		deps.Renderer = NopRenderer{}
	}
	if deps.Audio == nil {
		deps.Audio = NopAudio{}
	}
	if deps.Scores == nil {
		deps.Scores = &highscore.MemoryStore{}
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}

	c := &Controller{
		cfg:     cfg,
		lib:     lib,
		deps:    deps,
		rng:     rng,
		running: true,
	}
	c.enterStart()
	return c
}

// OnRound registers a callback invoked after each round's high score handling.
func (c *Controller) OnRound(fn func(RoundResult)) {
	c.onRound = fn
}

// Step runs one tick with the events polled for it.
func (c *Controller) Step(events []core.Event) {
	if !c.running {
		return
	}
	in := core.FrameFromEvents(events)

	switch c.screen {
	case ScreenStart, ScreenGameOver:
		c.stepWaiting(in)
	case ScreenPlaying:
		c.stepPlaying(in)
	}

	c.now += c.cfg.TickInterval()
}

// Run steps the controller at the configured tick rate until it stops running
// or ctx is done.
func (c *Controller) Run(ctx context.Context, in Input) error {
	ticker := time.NewTicker(c.cfg.TickInterval())
	defer ticker.Stop()

	for c.running {
		select {
		case <-ctx.Done():
			c.Quit()
			return ctx.Err()
		case <-ticker.C:
			c.Step(in.Poll())
		}
	}
	return nil
}

// Quit stops the controller, ending an active round silently.
func (c *Controller) Quit() {
	if c.world != nil {
		c.world.Abort()
	}
	c.running = false
}

func (c *Controller) stepWaiting(in core.InputFrame) {
	if in.Has(core.ActionQuit) {
		c.running = false
		return
	}
	if in.Has(core.ActionDismiss) {
		c.deps.Audio.FadeOutMusic(c.cfg.FadeOut())
		c.startRound()
		return
	}
	c.renderWaiting()
}

func (c *Controller) stepPlaying(in core.InputFrame) {
	if in.Has(core.ActionQuit) {
		c.Quit()
		c.deps.Logger.Info("quit during round", "score", c.world.Score())
		return
	}
	if in.Has(core.ActionJump) {
		c.world.Jump()
	}

	c.world.Update(c.now)
	c.renderPlaying()

	if c.world.State() == StateRoundOver {
		c.enterGameOver()
	}
}

func (c *Controller) enterStart() {
	c.screen = ScreenStart
	c.deps.Audio.PlayMusic(assets.SoundIntro, -1)
	c.highScore = c.loadHighScore()
	c.newHigh = false
	c.renderWaiting()
}

func (c *Controller) startRound() {
	c.world = NewWorld(c.cfg, c.lib, c.deps.Audio, c.rng)
	c.world.Start(c.now)
	c.screen = ScreenPlaying
	c.deps.Logger.Debug("round started", "at", c.now)
}

func (c *Controller) enterGameOver() {
	score := c.world.Score()
	stored := c.loadHighScore()

	c.newHigh = score > stored
	c.highScore = stored
	if c.newHigh {
		c.highScore = score
		if err := c.deps.Scores.Save(score); err != nil {
			c.deps.Logger.Error("cannot save high score", "score", score, "err", err)
		}
	}

	res := RoundResult{
		Score:     score,
		HighScore: c.highScore,
		NewHigh:   c.newHigh,
		Outcome:   c.world.Outcome(),
		Ticks:     c.world.Ticks(),
	}
	c.results = append(c.results, res)
	c.deps.Logger.Info("round over", "score", score, "outcome", res.Outcome, "high", c.highScore, "new", c.newHigh)
	if c.onRound != nil {
		c.onRound(res)
	}

	c.screen = ScreenGameOver
	c.deps.Audio.PlayMusic(assets.SoundIntro, -1)
}

// loadHighScore reads the stored score; read failures count as zero.
func (c *Controller) loadHighScore() int {
	n, err := c.deps.Scores.Load()
	if err != nil {
		c.deps.Logger.Warn("cannot read high score, using 0", "err", err)
		return 0
	}
	return n
}

func (c *Controller) renderWaiting() {
	r := c.deps.Renderer
	w, h := c.cfg.Window.Width, c.cfg.Window.Height
	text := c.cfg.Colors.Text.Color()

	r.Fill(c.cfg.Colors.Background.Color())
	if c.screen == ScreenStart {
		r.DrawText(c.cfg.Window.Title, TitleSize, text, w/2, h/4)
		r.DrawText("Click, KeyUP or Space to jump", TextSize, text, w/2, h/2)
		r.DrawText("Press a key to play", TextSize, text, w/2, h*3/4)
		r.DrawText(fmt.Sprintf("High Score: %d", c.highScore), TextSize, text, w/2, HUDTop)
	} else {
		r.DrawText("GAME OVER", TitleSize, text, w/2, h/4)
		r.DrawText(fmt.Sprintf("Score: %d", c.world.Score()), TextSize, text, w/2, h/2)
		r.DrawText("Press a key to play again", TextSize, text, w/2, h*3/4)
		notice := fmt.Sprintf("High Score: %d", c.highScore)
		if c.newHigh {
			notice = "NEW HIGH SCORE!"
		}
		r.DrawText(notice, TextSize, text, w/2, h/2+NoticeShift)
	}
	r.Present()
}

func (c *Controller) renderPlaying() {
	r := c.deps.Renderer
	w := c.cfg.Window.Width

	bg := c.lib.Image(assets.ImageBackground)
	r.DrawImage(bg, 0, 0)
	r.DrawImage(bg, w/2, 0)

	if a := c.world.Avatar(); !a.Retired() {
		ar := a.Rect()
		r.DrawImage(a.Image(c.now), ar.X, ar.Y)
	}
	for _, o := range c.world.Obstacles() {
		or := o.Rect()
		r.DrawImage(o.Image(), or.X, or.Y)
	}

	r.DrawText(fmt.Sprintf("Score: %d", c.world.Score()), TextSize, c.cfg.Colors.Text.Color(), w/2, HUDTop)
	r.Present()
}

func (c *Controller) Running() bool          { return c.running }
func (c *Controller) Screen() Screen         { return c.screen }
func (c *Controller) World() *World          { return c.world }
func (c *Controller) Elapsed() time.Duration { return c.now }
func (c *Controller) HighScore() int         { return c.highScore }
func (c *Controller) Results() []RoundResult { return c.results }
