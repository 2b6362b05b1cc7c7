package game

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

func TestWorldStart(t *testing.T) {
	w, _ := newTestWorld(t, 1)
	if w.State() != StateIdle {
		t.Fatalf("new world state = %v, expected idle", w.State())
	}

	// Idle worlds do not move
	w.Update(ms(16))
	if w.Avatar().Velocity().Y != 0 {
		t.Error("Update() before Start() should do nothing")
	}

	w.Start(0)
	if w.State() != StatePlaying {
		t.Errorf("state after Start() = %v, expected playing", w.State())
	}
	if len(w.Obstacles()) != 1 {
		t.Errorf("Start() should spawn the first obstacle, got %d", len(w.Obstacles()))
	}
}

func TestWorldSpawnInterval(t *testing.T) {
	tests := []struct {
		name     string
		at       int // Milliseconds after the round started
		expected int
	}{
		{"just before the interval", 4999, 1},
		{"exactly at the interval", 5000, 1},
		{"just after the interval", 5001, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, _ := newTestWorld(t, 1)
			w.Start(0)
			w.Update(ms(tc.at))
			if got := len(w.Obstacles()); got != tc.expected {
				t.Errorf("%d obstacles at %dms, expected %d", got, tc.at, tc.expected)
			}
		})
	}
}

func TestWorldSpawnMarkerResets(t *testing.T) {
	w, _ := newTestWorld(t, 1)
	w.Start(0)
	w.Avatar().Jump()

	w.Update(ms(5001))
	w.Update(ms(9000))
	if got := len(w.Obstacles()); got != 2 {
		t.Fatalf("%d obstacles, expected 2: the marker should move to the last spawn", got)
	}
	w.Update(ms(10_002))
	if got := len(w.Obstacles()); got != 3 {
		t.Errorf("%d obstacles, expected 3", got)
	}
	// Iteration order is spawn order
	obs := w.Obstacles()
	if !(obs[0].X() < obs[1].X() && obs[1].X() < obs[2].X()) {
		t.Error("obstacles should be kept in spawn order")
	}
}

func TestWorldGroundFall(t *testing.T) {
	w, audio := newTestWorld(t, 1)
	w.Start(0)

	now := ms(0)
	for i := 0; w.State() == StatePlaying; i++ {
		if i > 200 {
			t.Fatal("avatar never reached the ground")
		}
		now += ms(16)
		w.Update(now)
	}

	if w.Outcome() != OutcomeFell {
		t.Errorf("outcome = %v, expected fell", w.Outcome())
	}
	if audio.played(assets.SoundDie) != 1 || audio.played(assets.SoundHit) != 0 {
		t.Errorf("sounds = %v, expected a single die", audio.sounds)
	}
	// Scrolled up by at least the minimum so the avatar is back above the edge
	vel := w.Avatar().Velocity().Y
	if vel < MinFallScroll {
		t.Fatalf("test expects a fast fall, velocity %v", vel)
	}
	if b := w.Avatar().Rect().Bottom(); b > 512 || b < 512-int(vel) {
		t.Errorf("avatar bottom after scroll = %d", b)
	}
}

func TestFallScroll(t *testing.T) {
	tests := []struct {
		vel      float64
		expected int
	}{
		{-3, MinFallScroll},
		{0, MinFallScroll},
		{MinFallScroll, MinFallScroll},
		{10.25, 11},
		{12.5, 13},
		{14, 14},
	}
	for _, tc := range tests {
		if got := fallScroll(tc.vel); got != tc.expected {
			t.Errorf("fallScroll(%v) = %d, expected %d", tc.vel, got, tc.expected)
		}
	}
}

func TestWorldCeilingHit(t *testing.T) {
	w, audio := newTestWorld(t, 1)
	w.Start(0)

	now := ms(0)
	for w.State() == StatePlaying {
		if now > ms(10_000) {
			t.Fatal("avatar never reached the ceiling")
		}
		w.Jump()
		now += ms(16)
		w.Update(now)
	}

	if w.Outcome() != OutcomeHit {
		t.Errorf("outcome = %v, expected hit", w.Outcome())
	}
	if w.Avatar().Rect().Y > 0 {
		t.Errorf("avatar top = %d, expected <= 0", w.Avatar().Rect().Y)
	}
	if audio.played(assets.SoundHit) != 1 || audio.played(assets.SoundDie) != 0 {
		t.Errorf("sounds = %v, expected a single hit", audio.sounds)
	}
}

func TestWorldScoring(t *testing.T) {
	w, audio := newTestWorld(t, 1)
	w.Start(0)
	first := w.Obstacles()[0]
	first.x = -80 // One more tick puts it past the left edge

	w.Update(ms(16))
	if w.Score() != 5 {
		t.Errorf("score = %d, expected 5", w.Score())
	}
	if len(w.Obstacles()) != 0 {
		t.Errorf("scored obstacle should be removed, %d left", len(w.Obstacles()))
	}
	if !first.Retired() {
		t.Error("scored obstacle should be retired")
	}
	if audio.played(assets.SoundPoint) != 1 {
		t.Errorf("point sound played %d times, expected 1", audio.played(assets.SoundPoint))
	}

	// Nothing left to score
	w.Update(ms(32))
	if w.Score() != 5 {
		t.Errorf("score = %d after another tick, expected 5", w.Score())
	}
}

func TestWorldScoringStopsOnHit(t *testing.T) {
	w, audio := newTestWorld(t, 1)
	w.Start(0)
	w.Obstacles()[0].x = -80
	w.avatar.pos.Y = 10 // Top edge well above the screen after the next tick

	w.Update(ms(16))
	if w.State() != StateRoundOver || w.Outcome() != OutcomeHit {
		t.Fatalf("state=%v outcome=%v, expected round over by hit", w.State(), w.Outcome())
	}
	if w.Score() != 0 || audio.played(assets.SoundPoint) != 0 {
		t.Errorf("no scoring after a hit: score=%d sounds=%v", w.Score(), audio.sounds)
	}
}

func TestWorldHitAndFallSameTick(t *testing.T) {
	cfg := testConfig()
	cfg.Player.Height = 600 // Taller than the screen: top <= 0 and bottom > height at once
	audio := &fakeAudio{}
	w := NewWorld(cfg, testLibrary(t, cfg), audio, rand.New(rand.NewSource(1)))
	w.Start(0)
	w.avatar.pos.Y = 520

	w.Update(ms(16))
	if w.State() != StateRoundOver {
		t.Fatalf("state = %v, expected round over", w.State())
	}
	if !reflect.DeepEqual(audio.sounds, []string{assets.SoundHit, assets.SoundDie}) {
		t.Errorf("sounds = %v, expected hit then die", audio.sounds)
	}
	if w.Outcome() != OutcomeHit {
		t.Errorf("outcome = %v, expected the first cause", w.Outcome())
	}
}

func TestWorldFallDropsScrolledOffEntities(t *testing.T) {
	w, _ := newTestWorld(t, 1)
	w.Start(0)
	w.avatar.pos.Y = 600
	w.avatar.vel.Y = 700 // Scroll far enough to push everything off the top

	w.Update(ms(16))
	if w.Outcome() != OutcomeFell {
		t.Fatalf("outcome = %v, expected fell", w.Outcome())
	}
	if len(w.Obstacles()) != 0 {
		t.Errorf("%d obstacles left, expected all scrolled away", len(w.Obstacles()))
	}
}

func TestWorldFrozenAfterRoundOver(t *testing.T) {
	w, audio := newTestWorld(t, 1)
	w.Start(0)
	w.Obstacles()[0].x = -70
	w.Abort()

	if w.State() != StateRoundOver || w.Outcome() != OutcomeAborted {
		t.Fatalf("state=%v outcome=%v after Abort()", w.State(), w.Outcome())
	}
	if len(audio.sounds) != 0 {
		t.Errorf("Abort() should be silent, sounds = %v", audio.sounds)
	}

	before := w.Snapshot()
	for i := 1; i <= 60; i++ {
		w.Jump()
		w.Update(ms(i * 1000))
	}
	if !reflect.DeepEqual(before, w.Snapshot()) {
		t.Error("round over: Update() and Jump() must not change anything")
	}
}

func TestWorldScoreOnlyInIncrements(t *testing.T) {
	w, _ := newTestWorld(t, 9)
	w.Start(0)
	now := ms(0)
	for i := 0; i < 2000 && w.State() == StatePlaying; i++ {
		a := w.Avatar()
		// Hover around the middle of the screen
		if a.Velocity().Y > 0 && a.Rect().Bottom() > 300 {
			w.Jump()
		}
		before := w.Score()
		now += ms(16)
		w.Update(now)
		if d := w.Score() - before; d != 0 && d%5 != 0 {
			t.Fatalf("score moved by %d", d)
		}
	}
}

func TestWorldDeterminism(t *testing.T) {
	run := func() Snapshot {
		w, _ := newTestWorld(t, 12345)
		w.Start(0)
		now := ms(0)
		for i := 0; i < 600 && w.State() == StatePlaying; i++ {
			if i%15 == 0 {
				w.Jump()
			}
			now += ms(16)
			w.Update(now)
		}
		return w.Snapshot()
	}

	s1, s2 := run(), run()
	if !reflect.DeepEqual(s1, s2) {
		t.Errorf("same seed and inputs diverged:\n%+v\n%+v", s1, s2)
	}
}

func TestWorldSnapshot(t *testing.T) {
	w, _ := newTestWorld(t, 4)
	w.Start(0)
	s := w.Snapshot()

	if s.State != StatePlaying || s.Score != 0 || s.Ticks != 0 {
		t.Errorf("unexpected snapshot header: %+v", s)
	}
	if s.Position != (core.Vec2{X: 240, Y: 256}) {
		t.Errorf("snapshot position = %+v", s.Position)
	}
	if len(s.Obstacles) != 1 {
		t.Fatalf("snapshot has %d obstacles, expected 1", len(s.Obstacles))
	}
	o := s.Obstacles[0]
	if o.BottomCount+o.TopCount != 12 || o.GapBottom-o.GapTop != 128 || o.Width != 80 {
		t.Errorf("unexpected obstacle info: %+v", o)
	}
}

func TestStateStrings(t *testing.T) {
	if StatePlaying.String() != "playing" || StateRoundOver.String() != "round-over" {
		t.Error("unexpected state names")
	}
	if OutcomeFell.String() != "fell" || Outcome(42).String() != "unknown" {
		t.Error("unexpected outcome names")
	}
}
