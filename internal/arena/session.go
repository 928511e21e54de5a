// Package arena is the tick-driven simulation of one defense session: the
// countdown and wave schedule, aggressor movement, barrier and target
// collisions, and the win/lose state machine.
//
// A Session is not safe for concurrent use. It is advanced through three
// entry points, one per cadence: TickCountdown and TickMain on the main
// cadence, TickSpawn on the sub-tick cadence. After the session reaches Won
// or Lost all three are no-ops.
package arena

import (
	"errors"

	"github.com/xpathfinder/savethedogs/internal/data"
	"github.com/xpathfinder/savethedogs/internal/geom"
	"github.com/xpathfinder/savethedogs/internal/profile"
)

// Params configures a new session.
type Params struct {
	Rules    *data.Rules
	RNG      *RNG
	Profile  profile.Profile
	Formulas Formulas // BuiltinFormulas when nil

	// TargetPos pins the target's top-left corner. When nil the position is
	// drawn from the left half of the field.
	TargetPos *geom.Vec2
}

// Target is the defended entity.
type Target struct {
	Pos    geom.Vec2
	Health int64
}

type Session struct {
	rules    *data.Rules
	rng      *RNG
	formulas Formulas
	profile  profile.Profile

	director   Director
	phase      Phase
	target     Target
	aggressors []*Aggressor
	barriers   []*Barrier
	budget     int64
	survival   int
	nextID     uint64
	outcome    *Outcome

	events []Event
}

// NewSession reads the profile once, rolls the bootstrap bonuses, places the
// target and begins the countdown.
func NewSession(p Params) (*Session, error) {
	if p.Rules == nil || p.RNG == nil {
		return nil, errors.New("arena: rules and rng are required")
	}
	if err := p.Rules.Validate(); err != nil {
		return nil, err
	}
	f := p.Formulas
	if f == nil {
		f = BuiltinFormulas{}
	}
	s := &Session{
		rules:    p.Rules,
		rng:      p.RNG,
		formulas: f,
		profile:  p.Profile,
	}

	boot := f.Bootstrap(BootstrapContext{
		PurchasedBudget: p.Profile.PurchasedBarrierBudget,
		PurchasedHealth: p.Profile.PurchasedTargetHealth,
		Level:           p.Profile.Level,
		BudgetRoll:      s.rng.Roll(p.Rules.Session.BudgetBonus),
		HealthRoll:      s.rng.Roll(p.Rules.Session.HealthBonus),
	})
	s.budget = max(boot.Budget, 0)
	s.target.Health = boot.Health

	if p.TargetPos != nil {
		s.target.Pos = *p.TargetPos
	} else {
		s.target.Pos = s.randomTargetPos()
	}

	s.director.Begin(p.Rules.Spawn, s.rng)
	if s.director.Countdown() == 0 {
		s.startWaves()
	}
	return s, nil
}

func (s *Session) randomTargetPos() geom.Vec2 {
	m := s.rules.Grid.Margin
	size := s.rules.Target.Size
	maxX := int(s.rules.FieldWidth()/2) - size
	maxY := int(s.rules.FieldHeight()) - size - m
	return geom.Vec2{
		X: float64(s.rng.IntRange(m, max(maxX, m))),
		Y: float64(s.rng.IntRange(m, max(maxY, m))),
	}
}

func (s *Session) Phase() Phase { return s.phase }

// Profile returns the session's copy of the profile. Once the session has
// ended it includes any reward granted.
func (s *Session) Profile() profile.Profile { return s.profile }

// Outcome returns the final record, or nil while the session is running.
func (s *Session) Outcome() *Outcome {
	if s.outcome == nil {
		return nil
	}
	o := *s.outcome
	return &o
}

// DrainEvents returns the events queued since the last call.
func (s *Session) DrainEvents() []Event {
	ev := s.events
	s.events = nil
	return ev
}

func (s *Session) emit(e Event) { s.events = append(s.events, e) }

// TickCountdown advances the pre-wave countdown by one main tick. When it
// reaches zero the first wave opens.
func (s *Session) TickCountdown() {
	if s.phase != PhaseCountdown {
		return
	}
	done := s.director.tickCountdown()
	s.emit(CountdownTick{Remaining: s.director.Countdown()})
	if done {
		s.startWaves()
	}
}

func (s *Session) startWaves() {
	s.phase = PhaseWaveSpawning
	if n := s.director.openWave(); n > 0 {
		s.emit(WaveStarted{Wave: n, Total: s.director.TotalWaves()})
	}
}

// TickSpawn runs on the sub-tick cadence and spawns at most one aggressor.
func (s *Session) TickSpawn() {
	if s.phase != PhaseWaveSpawning || !s.director.spawnDue() {
		return
	}
	s.spawnAggressor()
	if s.director.recordSpawn() && s.director.Complete() {
		s.phase = PhaseActive
	}
}

func (s *Session) spawnAggressor() {
	r := s.rules
	s.nextID++
	hp := s.rng.Roll(r.Aggressor.Health)
	x := s.rules.FieldWidth() + float64(r.Spawn.OffsetX+s.rng.IntRange(0, r.Spawn.JitterX))
	y := float64(s.rng.IntRange(0, int(r.FieldHeight())-r.Aggressor.Size))
	a := &Aggressor{
		ID:        s.nextID,
		Pos:       geom.Vec2{X: x, Y: y},
		State:     Moving,
		Health:    hp,
		MaxHealth: hp,
	}
	s.aggressors = append(s.aggressors, a)
	s.emit(AggressorSpawned{ID: a.ID, Pos: a.Pos, Health: hp})
}

// TickMain runs one main-cadence step: state check, barrier wear, motion,
// contacts, wave advance, purge.
func (s *Session) TickMain() {
	if s.phase.Terminal() || s.phase == PhaseCountdown {
		return
	}
	s.survival++

	if s.checkTarget() {
		return
	}
	if s.survival >= s.rules.Session.SurvivalTicks {
		s.finish(PhaseWon, EndSurvived, nil)
		return
	}
	if len(s.aggressors) == 0 && s.director.Complete() {
		s.finish(PhaseWon, EndCleared, nil)
		return
	}

	s.wearBarriers()
	released := s.moveAggressors()
	if s.resolveContacts(released) {
		return
	}
	if n := s.director.advance(); n > 0 {
		s.emit(WaveStarted{Wave: n, Total: s.director.TotalWaves()})
	}
	s.purge()
}

// checkTarget applies the lose conditions and reports whether the session
// just ended.
func (s *Session) checkTarget() bool {
	h := s.target.Health
	if h > corruptionLimit {
		s.finish(PhaseLost, EndCorrupted, &CorruptionError{Health: h, Limit: corruptionLimit})
		return true
	}
	if h <= 0 {
		s.finish(PhaseLost, EndTargetDown, nil)
		return true
	}
	return false
}

// purge removes dead and escaped aggressors, keeping survivor order.
func (s *Session) purge() {
	offField := float64(s.rules.Aggressor.OffFieldX)
	kept := s.aggressors[:0]
	for _, a := range s.aggressors {
		switch {
		case a.Health <= 0:
			s.emit(AggressorRemoved{ID: a.ID})
		case a.Pos.X < offField:
			s.emit(AggressorRemoved{ID: a.ID, Escaped: true})
		default:
			kept = append(kept, a)
		}
	}
	for i := len(kept); i < len(s.aggressors); i++ {
		s.aggressors[i] = nil
	}
	s.aggressors = kept
}

// finish is the single path into a terminal phase. Later calls are ignored.
func (s *Session) finish(phase Phase, cond EndCondition, reason error) {
	if s.phase.Terminal() {
		return
	}
	s.phase = phase
	o := &Outcome{
		Phase:         phase,
		Condition:     cond,
		Reason:        reason,
		SurvivalTicks: s.survival,
		TargetHealth:  s.target.Health,
		WavesSpawned:  s.director.completed,
		TotalWaves:    s.director.TotalWaves(),
	}
	if phase == PhaseWon {
		rg := s.rules.Session.Reward
		reward := s.formulas.WinReward(RewardContext{
			Roll:          s.rng.Roll(rg),
			Condition:     cond,
			SurvivalTicks: s.survival,
			TargetHealth:  s.target.Health,
			WavesSpawned:  s.director.completed,
			Level:         s.profile.Level,
		})
		reward = min(max(reward, int64(rg.Min)), int64(rg.Max))
		o.Reward = reward
		s.profile.RewardCurrency = profile.AddSaturating(s.profile.RewardCurrency, reward)
	}
	s.outcome = o
	s.emit(SessionEnded{Outcome: *o})
}
