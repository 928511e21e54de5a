// Package audio plays short synthesized cues for session events.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/xpathfinder/savethedogs/internal/arena"
	"github.com/xpathfinder/savethedogs/internal/core/event"
)

type Cue int

const (
	CueWave Cue = iota
	CueStun
	CueSting
	CueBarrierDown
	CueWon
	CueLost
)

func (c Cue) String() string {
	switch c {
	case CueWave:
		return "wave"
	case CueStun:
		return "stun"
	case CueSting:
		return "sting"
	case CueBarrierDown:
		return "barrier_down"
	case CueWon:
		return "won"
	case CueLost:
		return "lost"
	}
	return "unknown"
}

// Player receives finished cue streams.
type Player interface {
	Play(s beep.Streamer)
}

// Cues turns bus events into streams for a Player.
type Cues struct {
	rate   beep.SampleRate
	player Player
	log    *zap.Logger

	mu     sync.Mutex
	played map[Cue]int
}

func NewCues(rate beep.SampleRate, player Player, log *zap.Logger) *Cues {
	return &Cues{rate: rate, player: player, log: log, played: make(map[Cue]int)}
}

// Streamer builds a fresh stream for cue.
func (c *Cues) Streamer(cue Cue) beep.Streamer {
	ms := time.Millisecond
	switch cue {
	case CueWave:
		return sequence(c.rate, 0.25, note{523, 90 * ms}, note{659, 90 * ms})
	case CueStun:
		return sequence(c.rate, 0.15, note{880, 40 * ms})
	case CueSting:
		return sequence(c.rate, 0.3, note{196, 120 * ms})
	case CueBarrierDown:
		return sequence(c.rate, 0.2, note{330, 70 * ms}, note{0, 30 * ms}, note{247, 110 * ms})
	case CueWon:
		return sequence(c.rate, 0.3, note{523, 120 * ms}, note{659, 120 * ms}, note{784, 240 * ms})
	case CueLost:
		return sequence(c.rate, 0.3, note{392, 160 * ms}, note{311, 160 * ms}, note{262, 320 * ms})
	}
	return beep.Silence(0)
}

func (c *Cues) play(cue Cue) {
	c.mu.Lock()
	c.played[cue]++
	c.mu.Unlock()
	c.player.Play(c.Streamer(cue))
}

// Played reports how many times cue has been sent to the player.
func (c *Cues) Played(cue Cue) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.played[cue]
}

// Subscribe wires the cues to session events on bus.
func (c *Cues) Subscribe(bus *event.Bus) {
	event.Subscribe(bus, func(arena.WaveStarted) { c.play(CueWave) })
	event.Subscribe(bus, func(arena.AggressorStunned) { c.play(CueStun) })
	event.Subscribe(bus, func(arena.TargetStung) { c.play(CueSting) })
	event.Subscribe(bus, func(arena.BarrierDepleted) { c.play(CueBarrierDown) })
	event.Subscribe(bus, func(e arena.SessionEnded) {
		if e.Outcome.Phase == arena.PhaseWon {
			c.play(CueWon)
		} else {
			c.play(CueLost)
		}
		c.log.Debug("end cue queued", zap.Stringer("phase", e.Outcome.Phase))
	})
}

// Speaker mixes cues onto the system audio device.
type Speaker struct {
	mixer *beep.Mixer
}

// OpenSpeaker initializes the audio device at rate with a 100ms buffer.
func OpenSpeaker(rate beep.SampleRate) (*Speaker, error) {
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return nil, err
	}
	sp := &Speaker{mixer: &beep.Mixer{}}
	speaker.Play(sp.mixer)
	return sp, nil
}

func (sp *Speaker) Play(s beep.Streamer) {
	speaker.Lock()
	sp.mixer.Add(s)
	speaker.Unlock()
}

func (sp *Speaker) Close() {
	speaker.Clear()
	speaker.Close()
}

// Discard drops every stream. It stands in when audio is disabled or the
// device cannot be opened.
type Discard struct{}

func (Discard) Play(beep.Streamer) {}
