// Package game implements the flappy simulation: the avatar, the obstacle
// pairs, the round state machine and the screen cycle that drives it.
//
// Everything outside the simulation (drawing, sound, persistence, input
// polling) is reached through the small interfaces declared here, so the
// package stays free of any windowing or terminal library.
package game

import (
	"image"
	"image/color"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Renderer receives draw requests for one frame. Nothing is shown until Present.
type Renderer interface {
	// Fill paints the whole frame with c.
	Fill(c color.Color)
	// DrawImage blits img with its top-left corner at (x, y).
	DrawImage(img image.Image, x, y int)
	// DrawText draws text of the given point size with its top edge centered on (x, y).
	DrawText(text string, size int, c color.Color, x, y int)
	// Present flips the finished frame to the display.
	Present()
}

// Audio plays sounds by asset key. Calls never block and return nothing.
type Audio interface {
	PlaySound(key string)
	// PlayMusic starts a background track; loops < 0 repeats forever.
	PlayMusic(key string, loops int)
	FadeOutMusic(d time.Duration)
}

// HighScores persists the single best score.
type HighScores interface {
	Load() (int, error)
	Save(score int) error
}

// Input yields the events that arrived since the previous poll.
type Input interface {
	Poll() []core.Event
}

// NopRenderer discards every draw request.
type NopRenderer struct{}

func (NopRenderer) Fill(color.Color)                            {}
func (NopRenderer) DrawImage(image.Image, int, int)             {}
func (NopRenderer) DrawText(string, int, color.Color, int, int) {}
func (NopRenderer) Present()                                    {}

// NopAudio is silent.
type NopAudio struct{}

func (NopAudio) PlaySound(string)           {}
func (NopAudio) PlayMusic(string, int)      {}
func (NopAudio) FadeOutMusic(time.Duration) {}
