package system

import (
	"time"

	"github.com/xpathfinder/savethedogs/internal/arena"
	"github.com/xpathfinder/savethedogs/internal/core/event"
	coresys "github.com/xpathfinder/savethedogs/internal/core/system"
)

// CleanupSystem moves the events the session queued this tick onto the
// bus, where they are dispatched at the start of the next tick.
// Phase 6 (Cleanup).
type CleanupSystem struct {
	sess *arena.Session
	bus  *event.Bus
}

func NewCleanupSystem(sess *arena.Session, bus *event.Bus) *CleanupSystem {
	return &CleanupSystem{sess: sess, bus: bus}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	for _, ev := range s.sess.DrainEvents() {
		s.bus.EmitAny(ev)
	}
}
