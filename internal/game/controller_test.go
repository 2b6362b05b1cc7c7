package game

import (
	"context"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/highscore"
)

type controllerFixture struct {
	ctrl     *Controller
	audio    *fakeAudio
	renderer *fakeRenderer
	scores   *fakeScores
}

func newFixture(t *testing.T, stored int) *controllerFixture {
	t.Helper()
	cfg := testConfig()
	f := &controllerFixture{
		audio:    &fakeAudio{},
		renderer: &fakeRenderer{},
		scores:   &fakeScores{value: stored},
	}
	f.ctrl = NewController(cfg, testLibrary(t, cfg), rand.New(rand.NewSource(1)), Deps{
		Renderer: f.renderer,
		Audio:    f.audio,
		Scores:   f.scores,
	})
	return f
}

// playUntilOver steps without input until the current round ends.
func (f *controllerFixture) playUntilOver(t *testing.T) {
	t.Helper()
	for i := 0; f.ctrl.Screen() == ScreenPlaying; i++ {
		if i > 1000 {
			t.Fatal("round did not end")
		}
		f.ctrl.Step(nil)
	}
}

func TestControllerStartScreen(t *testing.T) {
	f := newFixture(t, 42)
	c := f.ctrl

	if c.Screen() != ScreenStart || !c.Running() {
		t.Fatalf("new controller: screen=%v running=%v", c.Screen(), c.Running())
	}
	if !reflect.DeepEqual(f.audio.music, []string{assets.SoundIntro}) {
		t.Errorf("intro music should start with the start screen, got %v", f.audio.music)
	}
	if f.scores.loads != 1 {
		t.Errorf("high score read %d times, expected once", f.scores.loads)
	}
	for _, text := range []string{"Flappy Bird", "Click, KeyUP or Space to jump", "Press a key to play", "High Score: 42"} {
		if !f.renderer.shows(text) {
			t.Errorf("start screen should show %q, got %v", text, f.renderer.texts)
		}
	}

	// Waiting keeps the screen and the clock running
	c.Step(nil)
	c.Step([]core.Event{core.KeyDown(core.KeySpace), core.MouseUp()})
	if c.Screen() != ScreenStart {
		t.Errorf("key-down and mouse-up should not leave the start screen")
	}
	if c.Elapsed() != 2*c.cfg.TickInterval() {
		t.Errorf("elapsed = %v, expected two ticks", c.Elapsed())
	}
	if f.scores.loads != 1 {
		t.Errorf("waiting should not re-read the high score, %d reads", f.scores.loads)
	}
}

func TestControllerDismiss(t *testing.T) {
	tests := []struct {
		name  string
		event core.Event
	}{
		{"key up", core.KeyUp(core.KeyOther)},
		{"mouse down", core.MouseDown()},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, 0)
			f.ctrl.Step([]core.Event{tc.event})

			if f.ctrl.Screen() != ScreenPlaying {
				t.Fatalf("screen = %v, expected playing", f.ctrl.Screen())
			}
			if !reflect.DeepEqual(f.audio.fades, []time.Duration{500 * time.Millisecond}) {
				t.Errorf("music should fade out over 500ms, got %v", f.audio.fades)
			}
			w := f.ctrl.World()
			if w.State() != StatePlaying || len(w.Obstacles()) != 1 {
				t.Errorf("round should start with one obstacle: state=%v obstacles=%d", w.State(), len(w.Obstacles()))
			}
		})
	}
}

func TestControllerQuitOnStartScreen(t *testing.T) {
	f := newFixture(t, 0)
	f.ctrl.Step([]core.Event{core.KeyUp(core.KeySpace), core.Quit()})

	if f.ctrl.Running() {
		t.Fatal("quit should stop the controller")
	}
	if f.ctrl.World() != nil {
		t.Error("quit takes priority over dismissing in the same tick")
	}

	elapsed := f.ctrl.Elapsed()
	f.ctrl.Step([]core.Event{core.KeyUp(core.KeySpace)})
	if f.ctrl.Elapsed() != elapsed || f.ctrl.Screen() != ScreenStart {
		t.Error("Step() after quitting should do nothing")
	}
}

func TestControllerJumpInputs(t *testing.T) {
	tests := []struct {
		name   string
		events []core.Event
		jumped bool
	}{
		{"space down", []core.Event{core.KeyDown(core.KeySpace)}, true},
		{"up down", []core.Event{core.KeyDown(core.KeyArrowUp)}, true},
		{"mouse up", []core.Event{core.MouseUp()}, true},
		{"other key down", []core.Event{core.KeyDown(core.KeyOther)}, false},
		{"mouse down", []core.Event{core.MouseDown()}, false},
		{"key up", []core.Event{core.KeyUp(core.KeySpace)}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, 0)
			f.ctrl.Step([]core.Event{core.MouseDown()})
			f.ctrl.Step(tc.events)

			vel := f.ctrl.World().Avatar().Velocity().Y
			if tc.jumped && vel != -7.5 {
				t.Errorf("velocity after jump tick = %v, expected -7.5", vel)
			}
			if !tc.jumped && vel != 0.5 {
				t.Errorf("velocity without jump = %v, expected 0.5", vel)
			}
			if got := f.audio.played(assets.SoundJump) == 1; got != tc.jumped {
				t.Errorf("jump sound played = %v, expected %v", got, tc.jumped)
			}
			if f.ctrl.Screen() != ScreenPlaying {
				t.Errorf("input during play should not leave the round")
			}
		})
	}
}

func TestControllerPlayingFrame(t *testing.T) {
	f := newFixture(t, 0)
	f.ctrl.Step([]core.Event{core.MouseDown()})
	f.ctrl.Step(nil)

	// Background twice, the avatar, one obstacle
	if f.renderer.images != 4 {
		t.Errorf("frame drew %d images, expected 4", f.renderer.images)
	}
	if !reflect.DeepEqual(f.renderer.texts, []string{"Score: 0"}) {
		t.Errorf("frame texts = %v, expected the score", f.renderer.texts)
	}
}

func TestControllerQuitDuringRound(t *testing.T) {
	f := newFixture(t, 0)
	f.ctrl.Step([]core.Event{core.MouseDown()})
	f.ctrl.Step(nil)
	f.ctrl.Step([]core.Event{core.KeyDown(core.KeySpace), core.Quit()})

	if f.ctrl.Running() {
		t.Fatal("quit should stop the controller")
	}
	if f.ctrl.World().Outcome() != OutcomeAborted {
		t.Errorf("outcome = %v, expected aborted", f.ctrl.World().Outcome())
	}
	if len(f.audio.sounds) != 0 {
		t.Errorf("quitting a round should be silent, sounds = %v", f.audio.sounds)
	}
	if f.ctrl.Screen() != ScreenPlaying || len(f.ctrl.Results()) != 0 {
		t.Error("quitting should not show the game-over screen")
	}
	if len(f.scores.saves) != 0 {
		t.Error("quitting should not save a score")
	}
}

func TestControllerHighScore(t *testing.T) {
	tests := []struct {
		name    string
		stored  int
		score   int
		saved   []int
		notice  string
		newHigh bool
	}{
		{"equal score keeps the stored value", 10, 10, nil, "High Score: 10", false},
		{"higher score is saved", 10, 15, []int{15}, "NEW HIGH SCORE!", true},
		{"lower score keeps the stored value", 10, 5, nil, "High Score: 10", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, tc.stored)
			f.ctrl.Step([]core.Event{core.KeyUp(core.KeySpace)})
			f.ctrl.World().score = tc.score
			f.playUntilOver(t)

			if f.ctrl.Screen() != ScreenGameOver {
				t.Fatalf("screen = %v, expected game over", f.ctrl.Screen())
			}
			if !reflect.DeepEqual(f.scores.saves, tc.saved) {
				t.Errorf("saves = %v, expected %v", f.scores.saves, tc.saved)
			}

			f.ctrl.Step(nil) // Draw the game-over screen
			for _, text := range []string{"GAME OVER", "Press a key to play again", tc.notice} {
				if !f.renderer.shows(text) {
					t.Errorf("game-over screen should show %q, got %v", text, f.renderer.texts)
				}
			}

			res := f.ctrl.Results()
			if len(res) != 1 || res[0].Score != tc.score || res[0].NewHigh != tc.newHigh {
				t.Errorf("results = %+v", res)
			}
		})
	}
}

func TestControllerUnreadableHighScore(t *testing.T) {
	f := newFixture(t, 0)
	f.scores.loadErr = errCorrupt
	f.ctrl.Step([]core.Event{core.KeyUp(core.KeySpace)})
	f.ctrl.World().score = 5
	f.playUntilOver(t)
	f.ctrl.Step(nil)

	if !reflect.DeepEqual(f.scores.saves, []int{5}) {
		t.Errorf("an unreadable score counts as 0, saves = %v", f.scores.saves)
	}
	if !f.renderer.shows("NEW HIGH SCORE!") {
		t.Errorf("texts = %v", f.renderer.texts)
	}
}

func TestControllerGameOverCycle(t *testing.T) {
	f := newFixture(t, 0)
	f.ctrl.Step([]core.Event{core.KeyUp(core.KeySpace)})
	first := f.ctrl.World()
	f.playUntilOver(t)

	if f.audio.played(assets.SoundDie) != 1 {
		t.Errorf("falling should play die, sounds = %v", f.audio.sounds)
	}
	if len(f.audio.music) != 2 {
		t.Errorf("intro music should restart on the game-over screen, got %v", f.audio.music)
	}
	if f.scores.loads != 2 {
		t.Errorf("high score should be read again at game over, %d reads", f.scores.loads)
	}

	// Jump keys do not leave the game-over screen, key-up does
	f.ctrl.Step([]core.Event{core.KeyDown(core.KeySpace)})
	if f.ctrl.Screen() != ScreenGameOver {
		t.Fatal("key-down should not dismiss the game-over screen")
	}
	f.ctrl.Step([]core.Event{core.KeyUp(core.KeySpace)})
	if f.ctrl.Screen() != ScreenPlaying {
		t.Fatalf("key-up should start a new round, screen = %v", f.ctrl.Screen())
	}
	if f.ctrl.World() == first {
		t.Error("a new round should get a fresh world")
	}
	if f.ctrl.World().Score() != 0 {
		t.Error("a new round starts at score 0")
	}
	if len(f.audio.fades) != 2 {
		t.Errorf("fades = %v, expected one per dismissed screen", f.audio.fades)
	}
}

func TestControllerOnRound(t *testing.T) {
	f := newFixture(t, 0)
	var got []RoundResult
	f.ctrl.OnRound(func(r RoundResult) { got = append(got, r) })

	f.ctrl.Step([]core.Event{core.KeyUp(core.KeySpace)})
	f.playUntilOver(t)

	if len(got) != 1 || got[0].Outcome != OutcomeFell || got[0].Ticks == 0 {
		t.Errorf("round callback got %+v", got)
	}
}

func TestControllerDefaults(t *testing.T) {
	cfg := testConfig()
	c := NewController(cfg, testLibrary(t, cfg), rand.New(rand.NewSource(1)), Deps{})
	if _, ok := c.deps.Scores.(*highscore.MemoryStore); !ok {
		t.Fatalf("default scores = %T, expected an in-memory store", c.deps.Scores)
	}
	c.Step([]core.Event{core.KeyUp(core.KeySpace)})
	for i := 0; i < 100 && c.Screen() == ScreenPlaying; i++ {
		c.Step(nil)
	}
	if c.Screen() != ScreenGameOver {
		t.Fatalf("screen = %v, expected game over", c.Screen())
	}
	if c.HighScore() != 0 {
		t.Errorf("high score = %d, expected 0", c.HighScore())
	}
}

func TestControllerRun(t *testing.T) {
	cfg := testConfig()
	cfg.TickRate = 1000
	c := NewController(cfg, testLibrary(t, cfg), rand.New(rand.NewSource(1)), Deps{})
	in := &scriptedInput{batches: [][]core.Event{
		{core.KeyUp(core.KeySpace)},
		nil,
		{core.Quit()},
	}}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Run(ctx, in); err != nil {
		t.Fatalf("Run() = %v, expected nil after quit", err)
	}
	if c.Running() || in.polls != 3 {
		t.Errorf("running=%v polls=%d, expected stop after 3 ticks", c.Running(), in.polls)
	}
}

func TestControllerRunCancelled(t *testing.T) {
	cfg := testConfig()
	cfg.TickRate = 1000
	c := NewController(cfg, testLibrary(t, cfg), rand.New(rand.NewSource(1)), Deps{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := c.Run(ctx, &scriptedInput{})
	if err != context.DeadlineExceeded {
		t.Errorf("Run() = %v, expected deadline exceeded", err)
	}
	if c.Running() {
		t.Error("cancelled controller should not be running")
	}
}

func TestAutopilot(t *testing.T) {
	cfg := testConfig()
	c := NewController(cfg, testLibrary(t, cfg), rand.New(rand.NewSource(1)), Deps{})
	p := NewAutopilot(c, 1)

	if ev := p.Poll(); len(ev) != 1 || ev[0].Kind != core.EventKeyUp {
		t.Fatalf("autopilot should dismiss the start screen, got %v", ev)
	}
	c.Step(p.Poll())
	w := c.World()

	// Rising: never jump
	w.avatar.vel.Y = -3
	if p.ShouldJump(w) {
		t.Error("should not jump while rising")
	}
	// Falling below the gap bottom: jump
	_, bottom := w.Obstacles()[0].Gap()
	w.avatar.vel.Y = 2
	w.avatar.rect.Y = bottom - w.avatar.rect.H
	if !p.ShouldJump(w) {
		t.Error("should jump when falling at the gap bottom")
	}
	// Falling well above it: wait
	w.avatar.rect.Y = bottom - 100
	if p.ShouldJump(w) {
		t.Error("should not jump high above the gap bottom")
	}
}

func TestAutopilotQuitsAfterRounds(t *testing.T) {
	cfg := testConfig()
	c := NewController(cfg, testLibrary(t, cfg), rand.New(rand.NewSource(1)), Deps{})
	p := NewAutopilot(c, 1)

	for i := 0; c.Running(); i++ {
		if i > 200_000 {
			t.Fatal("autopilot never finished its round")
		}
		if c.Screen() == ScreenPlaying && c.World().Ticks() > 3000 {
			c.World().Abort() // Long enough to show it can fly; stop here
			c.enterGameOver()
		}
		c.Step(p.Poll())
	}
	if len(c.Results()) != 1 {
		t.Errorf("autopilot played %d rounds, expected 1", len(c.Results()))
	}
}

func TestAutopilotGivesUp(t *testing.T) {
	cfg := testConfig()
	c := NewController(cfg, testLibrary(t, cfg), rand.New(rand.NewSource(1)), Deps{})
	p := NewAutopilot(c, 2)
	p.GiveUpAfter(120)

	for i := 0; c.Running(); i++ {
		if i > 10_000 {
			t.Fatal("autopilot kept flying after giving up")
		}
		c.Step(p.Poll())
	}
	res := c.Results()
	if len(res) != 2 {
		t.Fatalf("played %d rounds, expected 2", len(res))
	}
	for _, r := range res {
		if r.Outcome == OutcomeAborted || r.Ticks < 120 {
			t.Errorf("unexpected round %+v", r)
		}
	}
}
