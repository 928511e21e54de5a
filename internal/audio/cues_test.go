package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xpathfinder/savethedogs/internal/arena"
	"github.com/xpathfinder/savethedogs/internal/core/event"
)

const testRate = beep.SampleRate(8000)

type recorder struct{ streams []beep.Streamer }

func (r *recorder) Play(s beep.Streamer) { r.streams = append(r.streams, s) }

// drain reads s to the end and returns the sample count and peak amplitude.
func drain(s beep.Streamer) (int, float64) {
	buf := make([][2]float64, 256)
	total, peak := 0, 0.0
	for {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			peak = max(peak, smp[0], -smp[0])
		}
		total += n
		if !ok {
			return total, peak
		}
	}
}

func TestToneLengthAndFade(t *testing.T) {
	tn := newTone(testRate, 440, 100*time.Millisecond, 0.5)
	n, peak := drain(tn)
	assert.Equal(t, testRate.N(100*time.Millisecond), n)
	assert.LessOrEqual(t, peak, 0.5)
	assert.Greater(t, peak, 0.4)
	assert.NoError(t, tn.Err())

	buf := make([][2]float64, 4)
	n, ok := tn.Stream(buf)
	assert.Zero(t, n)
	assert.False(t, ok)
}

func TestSequenceIncludesRests(t *testing.T) {
	s := sequence(testRate, 0.2, note{440, 50 * time.Millisecond}, note{0, 50 * time.Millisecond})
	n, _ := drain(s)
	assert.Equal(t, testRate.N(50*time.Millisecond)*2, n)
}

func TestCuesFollowBus(t *testing.T) {
	rec := &recorder{}
	c := NewCues(testRate, rec, zaptest.NewLogger(t))
	bus := event.NewBus()
	c.Subscribe(bus)

	bus.EmitAny(arena.WaveStarted{Wave: 1, Total: 3})
	bus.EmitAny(arena.TargetStung{AggressorID: 4, Damage: 2, Health: 8})
	bus.EmitAny(arena.CountdownTick{Remaining: 3})
	bus.EmitAny(arena.SessionEnded{Outcome: arena.Outcome{Phase: arena.PhaseLost}})
	bus.SwapBuffers()
	bus.DispatchAll()

	require.Len(t, rec.streams, 3, "countdown ticks are silent")
	assert.Equal(t, 1, c.Played(CueWave))
	assert.Equal(t, 1, c.Played(CueSting))
	assert.Equal(t, 1, c.Played(CueLost))
	assert.Zero(t, c.Played(CueWon))

	for _, s := range rec.streams {
		n, peak := drain(s)
		assert.Positive(t, n)
		assert.Positive(t, peak)
	}
}

func TestEveryCueHasSound(t *testing.T) {
	c := NewCues(testRate, Discard{}, zaptest.NewLogger(t))
	for cue := CueWave; cue <= CueLost; cue++ {
		n, _ := drain(c.Streamer(cue))
		assert.Positive(t, n, cue.String())
	}
	assert.Equal(t, "unknown", Cue(99).String())
}
