package system

import (
	"time"

	"github.com/xpathfinder/savethedogs/internal/arena"
	coresys "github.com/xpathfinder/savethedogs/internal/core/system"
)

// CountdownSystem advances the pre-wave countdown once per main tick.
// Phase 2 (Update), registered before CombatSystem.
type CountdownSystem struct {
	sess      *arena.Session
	every     int
	tickCount int
}

func NewCountdownSystem(sess *arena.Session, every int) *CountdownSystem {
	return &CountdownSystem{sess: sess, every: every}
}

func (s *CountdownSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *CountdownSystem) Update(_ time.Duration) {
	s.tickCount++
	if s.tickCount < s.every {
		return
	}
	s.tickCount = 0
	s.sess.TickCountdown()
}

// CombatSystem runs the main tick: state check, barrier wear, movement,
// contacts, wave advance and purge. Phase 2 (Update).
type CombatSystem struct {
	sess      *arena.Session
	every     int
	tickCount int
}

func NewCombatSystem(sess *arena.Session, every int) *CombatSystem {
	return &CombatSystem{sess: sess, every: every}
}

func (s *CombatSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *CombatSystem) Update(_ time.Duration) {
	s.tickCount++
	if s.tickCount < s.every {
		return
	}
	s.tickCount = 0
	s.sess.TickMain()
}

// SpawnSystem spawns at most one aggressor per base tick. Phase 3
// (PostUpdate).
type SpawnSystem struct {
	sess *arena.Session
}

func NewSpawnSystem(sess *arena.Session) *SpawnSystem {
	return &SpawnSystem{sess: sess}
}

func (s *SpawnSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *SpawnSystem) Update(_ time.Duration) {
	s.sess.TickSpawn()
}
