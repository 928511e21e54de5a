package system

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xpathfinder/savethedogs/internal/arena"
	coresys "github.com/xpathfinder/savethedogs/internal/core/system"
	"github.com/xpathfinder/savethedogs/internal/persist"
)

const maxSaveAttempts = 3

// PersistenceSystem writes the profile back once the session has ended,
// together with a ledger entry for any reward. Phase 5 (Persist).
type PersistenceSystem struct {
	sess     *arena.Session
	store    persist.ProfileStore
	log      *zap.Logger
	timeout  time.Duration
	attempts int
	done     chan struct{}
	err      error
}

func NewPersistenceSystem(sess *arena.Session, store persist.ProfileStore, log *zap.Logger) *PersistenceSystem {
	return &PersistenceSystem{
		sess:    sess,
		store:   store,
		log:     log,
		timeout: 5 * time.Second,
		done:    make(chan struct{}),
	}
}

func (s *PersistenceSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *PersistenceSystem) Update(_ time.Duration) {
	if s.attempts >= maxSaveAttempts || !s.sess.Phase().Terminal() {
		return
	}
	s.attempts++

	out := s.sess.Outcome()
	p := s.sess.Profile()
	var entries []persist.LedgerEntry
	if out.Reward > 0 {
		entries = append(entries, persist.LedgerEntry{
			Kind:    persist.LedgerReward,
			Amount:  out.Reward,
			Balance: p.RewardCurrency,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	s.err = s.store.SaveProfile(ctx, p, entries...)
	if s.err != nil {
		s.log.Error("save profile failed", zap.Int("attempt", s.attempts), zap.Error(s.err))
		if s.attempts < maxSaveAttempts {
			return
		}
	} else {
		s.attempts = maxSaveAttempts
		s.log.Info("profile saved", zap.Int64("reward_currency", p.RewardCurrency))
	}
	close(s.done)
}

// Done is closed once the profile has been saved or saving was given up.
func (s *PersistenceSystem) Done() <-chan struct{} { return s.done }

// Err is the result of the last save attempt.
func (s *PersistenceSystem) Err() error { return s.err }
