package system

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xpathfinder/savethedogs/internal/arena"
	coresys "github.com/xpathfinder/savethedogs/internal/core/system"
)

// Placement is a barrier request from the view or another goroutine.
// Reply, when set, receives the placement result without blocking.
type Placement struct {
	From, To arena.GridPoint
	Reply    chan<- error
}

// InputSystem drains queued placements into the session. Phase 0 (Input).
type InputSystem struct {
	sess       *arena.Session
	queue      <-chan Placement
	maxPerTick int
	log        *zap.Logger
}

func NewInputSystem(sess *arena.Session, queue <-chan Placement, maxPerTick int, log *zap.Logger) *InputSystem {
	return &InputSystem{sess: sess, queue: queue, maxPerTick: maxPerTick, log: log}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	for i := 0; s.maxPerTick <= 0 || i < s.maxPerTick; i++ {
		select {
		case p := <-s.queue:
			s.apply(p)
		default:
			return
		}
	}
}

func (s *InputSystem) apply(p Placement) {
	err := s.sess.ProposeBarrier(p.From, p.To)
	if err != nil {
		logRejected(s.log, p.From, p.To, err)
	}
	if p.Reply != nil {
		select {
		case p.Reply <- err:
		default:
		}
	}
}

func logRejected(log *zap.Logger, from, to arena.GridPoint, err error) {
	var rerr *arena.ResourceError
	if errors.As(err, &rerr) {
		log.Debug("barrier rejected",
			zap.Int("from_col", from.Col), zap.Int("from_row", from.Row),
			zap.Int("to_col", to.Col), zap.Int("to_row", to.Row),
			zap.Float64("length", rerr.Length), zap.Int64("limit", rerr.Limit))
		return
	}
	log.Debug("barrier rejected", zap.Error(err))
}
