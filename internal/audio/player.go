// Package audio plays the game's sounds through a beep mixer.
//
// Every sound is decoded (or synthesized) into a buffer up front, so playing
// one never touches the disk. The speaker is optional: a Player that was never
// started still mixes streams, nothing just pulls them.
package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/config"
)

// ErrUnsupportedFormat is returned for sound files with an unknown extension.
var ErrUnsupportedFormat = errors.New("audio: unsupported sound format")

// speakerBuffer is the latency of the output device.
const speakerBuffer = 100 * time.Millisecond

// Player implements game.Audio on top of a beep mixer.
type Player struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	mixer   *beep.Mixer
	buffers map[string]*beep.Buffer
	music   *fader
	started bool
	logger  *log.Logger
}

// New decodes every sound of the library. Files are resampled to the configured
// rate; keys without a file use the built-in synthesized sound.
func New(cfg *config.Config, lib *assets.Library, logger *log.Logger) (*Player, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rate := beep.SampleRate(cfg.Audio.SampleRate)
	if rate <= 0 {
		rate = 44100
	}
	p := &Player{
		rate:    rate,
		mixer:   &beep.Mixer{},
		buffers: make(map[string]*beep.Buffer),
		logger:  logger,
	}
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}

	for _, key := range lib.Sounds() {
		buf := beep.NewBuffer(format)
		if path := lib.SoundPath(key); path != "" {
			if err := p.decodeInto(buf, path); err != nil {
				return nil, fmt.Errorf("audio: sound %q: %w", key, err)
			}
		} else if s := Synthesize(key, rate); s != nil {
			buf.Append(s)
		} else {
			return nil, fmt.Errorf("audio: sound %q: %w", key, assets.ErrMissingAsset)
		}
		p.buffers[key] = buf
	}
	return p, nil
}

func (p *Player) decodeInto(buf *beep.Buffer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".ogg":
		stream, format, err = vorbis.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return err
	}
	defer stream.Close()

	var s beep.Streamer = stream
	if format.SampleRate != p.rate {
		s = beep.Resample(4, format.SampleRate, p.rate, stream)
	}
	buf.Append(s)
	return stream.Err()
}

// Start opens the output device and attaches the mixer to it.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(speakerBuffer)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.started = true
	return nil
}

// lock guards the mixer against the speaker goroutine once it is running.
func (p *Player) lock() {
	p.mu.Lock()
	if p.started {
		speaker.Lock()
	}
}

func (p *Player) unlock() {
	if p.started {
		speaker.Unlock()
	}
	p.mu.Unlock()
}

// PlaySound starts a one-shot sound. Unknown keys are ignored.
func (p *Player) PlaySound(key string) {
	buf, ok := p.buffers[key]
	if !ok {
		p.logger.Debug("unknown sound", "key", key)
		return
	}
	p.lock()
	defer p.unlock()
	p.mixer.Add(buf.Streamer(0, buf.Len()))
}

// PlayMusic replaces the background track. loops < 0 repeats forever,
// otherwise the track plays loops+1 times.
func (p *Player) PlayMusic(key string, loops int) {
	buf, ok := p.buffers[key]
	if !ok {
		p.logger.Debug("unknown music", "key", key)
		return
	}
	count := loops + 1
	if loops < 0 {
		count = -1
	}
	p.lock()
	defer p.unlock()
	if p.music != nil {
		p.music.stop()
	}
	p.music = &fader{streamer: beep.Loop(count, buf.Streamer(0, buf.Len()))}
	p.mixer.Add(p.music)
}

// FadeOutMusic lowers the background track to silence over d and stops it.
func (p *Player) FadeOutMusic(d time.Duration) {
	p.lock()
	defer p.unlock()
	if p.music == nil {
		return
	}
	p.music.fadeOut(p.rate.N(d))
}

// Playing returns the number of streams still in the mixer.
func (p *Player) Playing() int {
	p.lock()
	defer p.unlock()
	return p.mixer.Len()
}

// Close silences everything and releases the output device.
func (p *Player) Close() error {
	p.lock()
	p.mixer.Clear()
	p.music = nil
	started := p.started
	p.unlock()

	if started {
		speaker.Close()
		p.mu.Lock()
		p.started = false
		p.mu.Unlock()
	}
	return nil
}
