package game

import (
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Autopilot plays the game by itself: it dismisses wait screens and jumps
// whenever the avatar sinks toward the bottom of the next gap.
// It implements Input for a controller it observes.
type Autopilot struct {
	ctrl   *Controller
	slack  int // Pixels kept between the avatar and the gap bottom
	rounds int // Rounds to play before quitting, 0 = forever
	giveUp int // Ticks into a round after which it stops flapping, 0 = never
}

// NewAutopilot returns an autopilot that quits after the given number of rounds.
func NewAutopilot(ctrl *Controller, rounds int) *Autopilot {
	return &Autopilot{ctrl: ctrl, slack: 8, rounds: rounds}
}

// GiveUpAfter makes the autopilot stop flapping once a round has lasted
// ticks, so every round ends with a fall.
func (p *Autopilot) GiveUpAfter(ticks int) {
	p.giveUp = ticks
}

// Poll returns the events the autopilot chooses for the next tick.
func (p *Autopilot) Poll() []core.Event {
	switch p.ctrl.Screen() {
	case ScreenStart:
		return []core.Event{core.KeyUp(core.KeySpace)}
	case ScreenGameOver:
		if p.rounds > 0 && len(p.ctrl.Results()) >= p.rounds {
			return []core.Event{core.Quit()}
		}
		return []core.Event{core.KeyUp(core.KeySpace)}
	}

	w := p.ctrl.World()
	if w == nil || w.State() != StatePlaying {
		return nil
	}
	if p.giveUp > 0 && w.Ticks() >= p.giveUp {
		return nil
	}
	if p.ShouldJump(w) {
		return []core.Event{core.KeyDown(core.KeySpace)}
	}
	return nil
}

// ShouldJump reports whether the avatar is falling below its target height.
func (p *Autopilot) ShouldJump(w *World) bool {
	a := w.Avatar()
	if a.Velocity().Y <= 0 {
		return false
	}
	return a.Rect().Bottom() >= p.target(w)-p.slack
}

// target is the bottom of the gap the avatar must pass next, or two thirds
// of the screen height when no obstacle is ahead.
func (p *Autopilot) target(w *World) int {
	left := w.Avatar().Rect().X
	for _, o := range w.Obstacles() {
		if o.Rect().Right() >= left {
			_, bottom := o.Gap()
			return bottom
		}
	}
	return p.ctrl.cfg.Window.Height * 2 / 3
}
