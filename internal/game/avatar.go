package game

import (
	"image"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/sprite"
)

// Animation timing: the wing flaps once per cycle, up during the second half.
const (
	FlapCycle = 500 * time.Millisecond
	FlapSplit = 250 * time.Millisecond
)

// Sprite is what the world advances and culls every tick.
type Sprite interface {
	Tick()
	Rect() core.Rect
	Retired() bool
}

// Avatar is the player-controlled bird.
type Avatar struct {
	pos     core.Vec2 // Bottom-center of the collision rect
	vel     core.Vec2
	rect    core.Rect
	gravity float64
	impulse float64
	retired bool

	lib   *assets.Library
	audio Audio
}

// NewAvatar places an avatar with its bottom-center at pos, at rest.
func NewAvatar(cfg *config.Config, lib *assets.Library, audio Audio, pos core.Vec2) *Avatar {
	a := &Avatar{
		pos:     pos,
		gravity: cfg.Player.Gravity,
		impulse: cfg.Player.JumpImpulse,
		lib:     lib,
		audio:   audio,
	}
	a.rect = core.RectAtMidBottom(pos, cfg.Player.Width, cfg.Player.Height)
	return a
}

// Jump sets the vertical velocity to the upward impulse, whatever it was.
func (a *Avatar) Jump() {
	a.vel.Y = -a.impulse
	a.audio.PlaySound(assets.SoundJump)
}

// Tick integrates one step: velocity first, then position using the new
// velocity plus half a gravity step.
func (a *Avatar) Tick() {
	g := core.Vec2{Y: a.gravity}
	a.vel = a.vel.Add(g)
	a.pos = a.pos.Add(a.vel).Add(g.Scale(0.5))
	a.rect = core.RectAtMidBottom(a.pos, a.rect.W, a.rect.H)
}

// Scroll moves the avatar up by dy pixels and retires it once it is fully
// above the top edge.
func (a *Avatar) Scroll(dy int) {
	a.pos.Y -= float64(dy)
	a.rect = a.rect.Translate(0, -dy)
	if a.rect.Bottom() < 0 {
		a.retired = true
	}
}

// Image returns the animation frame shown at the given session time.
func (a *Avatar) Image(elapsed time.Duration) image.Image {
	return a.lib.Image(frameKey(elapsed))
}

// Mask returns the collision mask of the frame shown at the given session time.
func (a *Avatar) Mask(elapsed time.Duration) *sprite.Mask {
	return a.lib.Mask(frameKey(elapsed))
}

func frameKey(elapsed time.Duration) string {
	if WingUp(elapsed) {
		return assets.ImageBirdWingUp
	}
	return assets.ImageBirdWingDown
}

// WingUp reports whether the wing-up frame is shown at the given session time.
func WingUp(elapsed time.Duration) bool {
	phase := elapsed % FlapCycle
	if phase < 0 {
		phase += FlapCycle
	}
	return phase >= FlapSplit
}

func (a *Avatar) Rect() core.Rect     { return a.rect }
func (a *Avatar) Position() core.Vec2 { return a.pos }
func (a *Avatar) Velocity() core.Vec2 { return a.vel }
func (a *Avatar) Retired() bool       { return a.retired }
