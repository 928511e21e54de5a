package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/xpathfinder/savethedogs/internal/arena"
	coresys "github.com/xpathfinder/savethedogs/internal/core/system"
	"github.com/xpathfinder/savethedogs/internal/data"
)

// PlanSystem replays a scripted placement plan for headless sessions.
// Phase 0 (Input), registered after InputSystem.
type PlanSystem struct {
	sess *arena.Session
	plan []data.PlannedBarrier
	next int
	tick uint64
	log  *zap.Logger
}

func NewPlanSystem(sess *arena.Session, plan *data.Plan, log *zap.Logger) *PlanSystem {
	s := &PlanSystem{sess: sess, log: log}
	if plan != nil {
		s.plan = plan.Placements
	}
	return s
}

func (s *PlanSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *PlanSystem) Update(_ time.Duration) {
	for s.next < len(s.plan) && s.plan[s.next].Tick <= s.tick {
		p := s.plan[s.next]
		s.next++
		from := arena.GridPoint{Col: p.From[0], Row: p.From[1]}
		to := arena.GridPoint{Col: p.To[0], Row: p.To[1]}
		if err := s.sess.ProposeBarrier(from, to); err != nil {
			logRejected(s.log, from, to, err)
		}
	}
	s.tick++
}

// Remaining is the number of placements not yet applied.
func (s *PlanSystem) Remaining() int { return len(s.plan) - s.next }
