package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// mapKey converts an Ebitengine key to the keys the game distinguishes.
func mapKey(k ebiten.Key) core.Key {
	switch k {
	case ebiten.KeySpace:
		return core.KeySpace
	case ebiten.KeyArrowUp:
		return core.KeyArrowUp
	}
	return core.KeyOther
}

// Input collects the key and mouse edges of the current tick.
type Input struct {
	keys []ebiten.Key
}

// Poll returns this tick's events: window close, key presses and releases,
// then left button presses and releases.
func (in *Input) Poll() []core.Event {
	var events []core.Event
	if ebiten.IsWindowBeingClosed() {
		events = append(events, core.Quit())
	}

	in.keys = inpututil.AppendJustPressedKeys(in.keys[:0])
	for _, k := range in.keys {
		events = append(events, core.KeyDown(mapKey(k)))
	}
	in.keys = inpututil.AppendJustReleasedKeys(in.keys[:0])
	for _, k := range in.keys {
		events = append(events, core.KeyUp(mapKey(k)))
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		events = append(events, core.MouseDown())
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		events = append(events, core.MouseUp())
	}
	return events
}
