package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// tone is a sine oscillator with a linear fade-out over its last quarter.
type tone struct {
	freq  float64
	gain  float64
	rate  beep.SampleRate
	total int
	pos   int
	phase float64
}

func newTone(rate beep.SampleRate, freq float64, d time.Duration, gain float64) *tone {
	return &tone{freq: freq, gain: gain, rate: rate, total: rate.N(d)}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.total {
		return 0, false
	}
	fade := max(t.total/4, 1)
	for i := range samples {
		if t.pos >= t.total {
			return i, true
		}
		amp := t.gain
		if left := t.total - t.pos; left < fade {
			amp *= float64(left) / float64(fade)
		}
		v := amp * math.Sin(2*math.Pi*t.phase)
		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// note is one step of a cue: a frequency held for a duration. A zero
// frequency is a rest.
type note struct {
	freq float64
	dur  time.Duration
}

func sequence(rate beep.SampleRate, gain float64, notes ...note) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		if n.freq == 0 {
			parts = append(parts, beep.Silence(rate.N(n.dur)))
			continue
		}
		parts = append(parts, newTone(rate, n.freq, n.dur, gain))
	}
	return beep.Seq(parts...)
}
