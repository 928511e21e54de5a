package arena

import "github.com/xpathfinder/savethedogs/internal/data"

// Director owns the countdown and the wave schedule. It decides when a
// spawn is due; the session decides where the aggressor goes.
type Director struct {
	rules data.SpawnRules

	countdown  int
	totalWaves int
	completed  int // waves whose last aggressor has spawned
	inWave     int // aggressors spawned in the open wave
	open       bool
	gap        int // main ticks left before the next wave opens
}

// Begin arms the countdown and samples the number of waves.
func (d *Director) Begin(rules data.SpawnRules, rng *RNG) {
	*d = Director{
		rules:      rules,
		countdown:  rules.CountdownTicks,
		totalWaves: rng.Roll(rules.Waves),
	}
}

func (d *Director) Countdown() int  { return d.countdown }
func (d *Director) TotalWaves() int { return d.totalWaves }

// WavesStarted counts the open wave as started.
func (d *Director) WavesStarted() int {
	if d.open {
		return d.completed + 1
	}
	return d.completed
}

// Complete reports whether every wave has finished spawning.
func (d *Director) Complete() bool { return d.completed >= d.totalWaves }

// tickCountdown decrements the countdown and reports whether it just
// reached zero.
func (d *Director) tickCountdown() bool {
	if d.countdown <= 0 {
		return false
	}
	d.countdown--
	return d.countdown == 0
}

// openWave starts the next wave. It returns the 1-based wave number, or 0
// when the schedule is exhausted or a wave is already open.
func (d *Director) openWave() int {
	if d.open || d.Complete() {
		return 0
	}
	d.open = true
	d.inWave = 0
	return d.completed + 1
}

func (d *Director) spawnDue() bool { return d.open }

// recordSpawn counts one spawned aggressor and reports whether it closed
// the open wave.
func (d *Director) recordSpawn() bool {
	d.inWave++
	if d.inWave < d.rules.PerWave {
		return false
	}
	d.open = false
	d.inWave = 0
	d.completed++
	d.gap = d.rules.GapTicks
	return true
}

// advance runs once per main tick after the countdown. It burns down the
// inter-wave gap and opens the next wave when the gap has elapsed,
// returning the wave number opened or 0.
func (d *Director) advance() int {
	if d.open || d.Complete() {
		return 0
	}
	if d.gap > 0 {
		d.gap--
		if d.gap > 0 {
			return 0
		}
	}
	return d.openWave()
}
