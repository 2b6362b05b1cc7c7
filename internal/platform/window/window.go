package window

import (
	"context"
	"errors"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/game"
)

// Game adapts a controller to ebiten.Game. Every Update is one controller tick.
type Game struct {
	ctx      context.Context
	ctrl     *game.Controller
	renderer *Renderer
	input    game.Input
	width    int
	height   int
}

// NewGame creates a game that steps ctrl with events from input and draws
// what ctrl records on renderer.
func NewGame(ctx context.Context, cfg *config.Config, ctrl *game.Controller, renderer *Renderer, input game.Input) *Game {
	return &Game{
		ctx:      ctx,
		ctrl:     ctrl,
		renderer: renderer,
		input:    input,
		width:    cfg.Window.Width,
		height:   cfg.Window.Height,
	}
}

// Update runs one tick and ends the loop once the controller stops.
func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		g.ctrl.Quit()
		return ebiten.Termination
	}
	g.ctrl.Step(g.input.Poll())
	if !g.ctrl.Running() {
		return ebiten.Termination
	}
	return nil
}

// Draw shows the last presented frame.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)
}

// Layout returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Run opens the window and blocks until the controller stops, the window is
// closed or ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config, ctrl *game.Controller, renderer *Renderer) error {
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.TickRate)
	// Closing becomes a Quit event so the controller ends the round itself
	ebiten.SetWindowClosingHandled(true)

	err := ebiten.RunGame(NewGame(ctx, cfg, ctrl, renderer, &Input{}))
	if errors.Is(err, ebiten.Termination) {
		err = nil
	}
	if err == nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
