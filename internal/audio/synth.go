package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/vovakirdan/tui-flappy/internal/assets"
)

// Edge ramp applied to every synthesized note to avoid clicks.
const noteRamp = 5 * time.Millisecond

// note is one step of a synthesized sound. A zero Freq is white noise.
type note struct {
	Freq float64
	Dur  time.Duration
}

// Built-in sounds, played when the asset library has no file for a key.
var voices = map[string]struct {
	notes  []note
	volume float64
	chord  bool // Mix the notes instead of playing them in sequence
}{
	assets.SoundJump:  {notes: []note{{660, 40 * time.Millisecond}, {990, 60 * time.Millisecond}}, volume: 0.35},
	assets.SoundPoint: {notes: []note{{987.77, 80 * time.Millisecond}, {1318.51, 160 * time.Millisecond}}, volume: 0.35},
	assets.SoundHit:   {notes: []note{{110, 150 * time.Millisecond}, {0, 150 * time.Millisecond}}, volume: 0.5, chord: true},
	assets.SoundDie: {notes: []note{
		{440, 120 * time.Millisecond}, {330, 120 * time.Millisecond}, {220, 240 * time.Millisecond},
	}, volume: 0.4},
	assets.SoundIntro: {notes: []note{
		{523.25, 180 * time.Millisecond}, {659.25, 180 * time.Millisecond},
		{783.99, 180 * time.Millisecond}, {659.25, 180 * time.Millisecond},
		{587.33, 180 * time.Millisecond}, {698.46, 180 * time.Millisecond},
		{880.00, 180 * time.Millisecond}, {698.46, 180 * time.Millisecond},
	}, volume: 0.2},
}

// Synthesize returns a finite streamer for the built-in sound with the given key,
// or nil if there is none.
func Synthesize(key string, rate beep.SampleRate) beep.Streamer {
	v, ok := voices[key]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(v.notes))
	for i, n := range v.notes {
		parts = append(parts, tone(n, rate, int64(i+1)))
	}
	var s beep.Streamer
	if v.chord {
		s = beep.Mix(parts...)
	} else {
		s = beep.Seq(parts...)
	}
	return newVolume(s, v.volume)
}

func tone(n note, rate beep.SampleRate, seed int64) beep.Streamer {
	total := rate.N(n.Dur)
	var src beep.Streamer
	if n.Freq == 0 {
		src = noise(seed)
	} else {
		sine, err := generators.SineTone(rate, n.Freq)
		if err != nil {
			return beep.Silence(total)
		}
		src = sine
	}
	return &envelope{streamer: beep.Take(total, src), total: total, ramp: rate.N(noteRamp)}
}

// noise is an endless white noise source. The seed keeps built-in sounds identical between runs.
func noise(seed int64) beep.Streamer {
	rng := rand.New(rand.NewSource(seed))
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := rng.Float64()*2 - 1
			samples[i][0], samples[i][1] = v, v
		}
		return len(samples), true
	})
}

// envelope ramps the first and last samples of a finite stream.
type envelope struct {
	streamer beep.Streamer
	pos      int
	total    int
	ramp     int
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		if e.ramp > 0 {
			if e.pos < e.ramp {
				gain = float64(e.pos) / float64(e.ramp)
			} else if left := e.total - e.pos; left < e.ramp {
				gain = math.Max(0, float64(left)/float64(e.ramp))
			}
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a linear volume. Log2(0) is -Inf, so zero is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
