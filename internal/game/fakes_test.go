package game

import (
	"errors"
	"image"
	"image/color"
	"math/rand"
	"slices"
	"testing"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// fakeAudio records every request.
type fakeAudio struct {
	sounds []string
	music  []string
	fades  []time.Duration
}

func (f *fakeAudio) PlaySound(key string)            { f.sounds = append(f.sounds, key) }
func (f *fakeAudio) PlayMusic(key string, loops int) { f.music = append(f.music, key) }
func (f *fakeAudio) FadeOutMusic(d time.Duration)    { f.fades = append(f.fades, d) }

func (f *fakeAudio) played(key string) int {
	n := 0
	for _, s := range f.sounds {
		if s == key {
			n++
		}
	}
	return n
}

// fakeRenderer keeps the texts and image count of the last presented frame.
type fakeRenderer struct {
	texts    []string
	images   int
	fills    int
	presents int

	frameTexts  []string
	frameImages int
}

func (f *fakeRenderer) Fill(color.Color) { f.fills++ }
func (f *fakeRenderer) DrawImage(image.Image, int, int) {
	f.frameImages++
}
func (f *fakeRenderer) DrawText(text string, _ int, _ color.Color, _, _ int) {
	f.frameTexts = append(f.frameTexts, text)
}
func (f *fakeRenderer) Present() {
	f.presents++
	f.texts, f.images = f.frameTexts, f.frameImages
	f.frameTexts, f.frameImages = nil, 0
}

func (f *fakeRenderer) shows(text string) bool {
	return slices.Contains(f.texts, text)
}

// fakeScores is an in-memory store that counts calls.
type fakeScores struct {
	value   int
	loadErr error
	loads   int
	saves   []int
}

func (f *fakeScores) Load() (int, error) {
	f.loads++
	if f.loadErr != nil {
		return 0, f.loadErr
	}
	return f.value, nil
}

func (f *fakeScores) Save(n int) error {
	f.saves = append(f.saves, n)
	f.value = n
	return nil
}

var errCorrupt = errors.New("corrupt high score")

// scriptedInput returns one prepared batch per poll, then nothing.
type scriptedInput struct {
	batches [][]core.Event
	polls   int
}

func (s *scriptedInput) Poll() []core.Event {
	s.polls++
	if len(s.batches) == 0 {
		return nil
	}
	b := s.batches[0]
	s.batches = s.batches[1:]
	return b
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	return &cfg
}

func testLibrary(t *testing.T, cfg *config.Config) *assets.Library {
	t.Helper()
	lib, err := assets.Builtin(cfg)
	if err != nil {
		t.Fatalf("Builtin() failed: %v", err)
	}
	return lib
}

func newTestWorld(t *testing.T, seed int64) (*World, *fakeAudio) {
	t.Helper()
	cfg := testConfig()
	audio := &fakeAudio{}
	w := NewWorld(cfg, testLibrary(t, cfg), audio, rand.New(rand.NewSource(seed)))
	return w, audio
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
