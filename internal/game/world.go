package game

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// MinFallScroll is the smallest upward scroll applied when the avatar hits the ground.
const MinFallScroll = 10

// State is the round state.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StateRoundOver
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StateRoundOver:
		return "round-over"
	default:
		return "unknown"
	}
}

// Outcome records why a round ended.
type Outcome int

const (
	OutcomeNone    Outcome = iota
	OutcomeHit             // Touched a pipe or the top edge
	OutcomeFell            // Dropped below the bottom edge
	OutcomeAborted         // Quit while playing
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeHit:
		return "hit"
	case OutcomeFell:
		return "fell"
	case OutcomeAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// World is one round: the avatar, the live obstacles in spawn order, and the score.
type World struct {
	cfg   *config.Config
	lib   *assets.Library
	audio Audio
	rng   *rand.Rand

	avatar    *Avatar
	obstacles []*Obstacle
	state     State
	outcome   Outcome
	score     int
	lastSpawn time.Duration
	ticks     int
}

// NewWorld creates an idle round with the avatar at the center of the screen.
func NewWorld(cfg *config.Config, lib *assets.Library, audio Audio, rng *rand.Rand) *World {
	center := core.Vec2{X: float64(cfg.Window.Width) / 2, Y: float64(cfg.Window.Height) / 2}
	return &World{
		cfg:       cfg,
		lib:       lib,
		audio:     audio,
		rng:       rng,
		avatar:    NewAvatar(cfg, lib, audio, center),
		obstacles: make([]*Obstacle, 0, 4),
	}
}

// Start spawns the first obstacle and begins play at session time now.
func (w *World) Start(now time.Duration) {
	if w.state != StateIdle {
		return
	}
	w.spawn(now)
	w.state = StatePlaying
}

// Jump forwards a jump to the avatar while playing.
func (w *World) Jump() {
	if w.state == StatePlaying {
		w.avatar.Jump()
	}
}

// Update advances the round by one tick at session time now.
// It does nothing unless the round is playing.
func (w *World) Update(now time.Duration) {
	if w.state != StatePlaying {
		return
	}
	w.ticks++

	w.avatar.Tick()
	for _, o := range w.obstacles {
		o.Tick()
	}

	if now-w.lastSpawn > w.cfg.SpawnInterval() {
		w.spawn(now)
	}

	if w.collided(now) || w.avatar.Rect().Y <= 0 {
		w.audio.PlaySound(assets.SoundHit)
		w.end(OutcomeHit)
	}

	if w.state == StatePlaying {
		w.collectPassed()
	}

	// Checked even if the round just ended on a hit
	if w.avatar.Rect().Bottom() > w.cfg.Window.Height {
		w.fall()
		w.audio.PlaySound(assets.SoundDie)
		w.end(OutcomeFell)
	}
}

// Abort ends a running round without any sound.
func (w *World) Abort() {
	if w.state == StatePlaying {
		w.end(OutcomeAborted)
	}
}

func (w *World) end(o Outcome) {
	w.state = StateRoundOver
	if w.outcome == OutcomeNone {
		w.outcome = o
	}
}

func (w *World) spawn(now time.Duration) {
	w.obstacles = append(w.obstacles, NewObstacle(w.cfg, w.lib, w.rng))
	w.lastSpawn = now
}

func (w *World) collided(now time.Duration) bool {
	for _, o := range w.obstacles {
		if o.CollidesWith(w.avatar, now) {
			return true
		}
	}
	return false
}

// collectPassed scores and removes every obstacle past the left edge.
func (w *World) collectPassed() {
	live := w.obstacles[:0]
	for _, o := range w.obstacles {
		if o.Passed() && o.Retire() {
			w.audio.PlaySound(assets.SoundPoint)
			w.score += w.cfg.Pipes.ScoreIncrement
			continue
		}
		live = append(live, o)
	}
	clear(w.obstacles[len(live):])
	w.obstacles = live
}

// fall scrolls every live entity up and drops those that leave the screen.
func (w *World) fall() {
	dy := fallScroll(w.avatar.Velocity().Y)

	w.avatar.Scroll(dy)
	live := w.obstacles[:0]
	for _, o := range w.obstacles {
		o.Scroll(dy)
		if !o.Retired() {
			live = append(live, o)
		}
	}
	clear(w.obstacles[len(live):])
	w.obstacles = live
}

// fallScroll is the whole-pixel upward scroll for a fall at speed vel.
// Fractions round up: an on-screen rect moved by a fractional amount lands
// on the pixel above.
func fallScroll(vel float64) int {
	return int(math.Ceil(math.Max(vel, MinFallScroll)))
}

func (w *World) State() State           { return w.state }
func (w *World) Outcome() Outcome       { return w.outcome }
func (w *World) Score() int             { return w.score }
func (w *World) Avatar() *Avatar        { return w.avatar }
func (w *World) Obstacles() []*Obstacle { return w.obstacles }
func (w *World) Ticks() int             { return w.ticks }

// Snapshot is a read-only summary of the round.
type Snapshot struct {
	State     State
	Outcome   Outcome
	Score     int
	Ticks     int
	Position  core.Vec2
	Velocity  core.Vec2
	Obstacles []ObstacleInfo
}

// ObstacleInfo describes one live obstacle.
type ObstacleInfo struct {
	X           float64
	Width       int
	BottomCount int
	TopCount    int
	GapTop      int
	GapBottom   int
}

// Snapshot captures the current round.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		State:     w.state,
		Outcome:   w.outcome,
		Score:     w.score,
		Ticks:     w.ticks,
		Position:  w.avatar.Position(),
		Velocity:  w.avatar.Velocity(),
		Obstacles: make([]ObstacleInfo, 0, len(w.obstacles)),
	}
	for _, o := range w.obstacles {
		top, bottom := o.Gap()
		s.Obstacles = append(s.Obstacles, ObstacleInfo{
			X:           o.X(),
			Width:       o.Width(),
			BottomCount: o.BottomCount(),
			TopCount:    o.TopCount(),
			GapTop:      top,
			GapBottom:   bottom,
		})
	}
	return s
}
