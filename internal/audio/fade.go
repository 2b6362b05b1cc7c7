package audio

import "github.com/gopxl/beep"

// fader passes a stream through until it is stopped or faded out.
// A fade lowers the gain linearly to zero, after which the stream drains.
type fader struct {
	streamer beep.Streamer
	total    int // Fade length in samples, 0 while not fading
	left     int
	stopped  bool
}

func (f *fader) Stream(samples [][2]float64) (int, bool) {
	if f.stopped {
		return 0, false
	}
	n, ok := f.streamer.Stream(samples)
	if f.total == 0 {
		return n, ok
	}
	for i := 0; i < n; i++ {
		gain := float64(f.left) / float64(f.total)
		samples[i][0] *= gain
		samples[i][1] *= gain
		if f.left > 0 {
			f.left--
		}
	}
	if f.left == 0 {
		f.stopped = true
	}
	return n, ok
}

func (f *fader) Err() error { return f.streamer.Err() }

// fadeOut starts a fade over n samples. A running fade is only ever shortened.
func (f *fader) fadeOut(n int) {
	if n <= 0 {
		f.stop()
		return
	}
	if f.total > 0 && f.left <= n {
		return
	}
	f.total, f.left = n, n
}

func (f *fader) stop() { f.stopped = true }
