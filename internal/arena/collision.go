package arena

import "github.com/xpathfinder/savethedogs/internal/geom"

// wearBarriers damages every live barrier touched by an aggressor in
// contact. A barrier that runs out frees the stunned aggressors still
// crossing it.
func (s *Session) wearBarriers() {
	size := float64(s.rules.Aggressor.Size)
	for _, b := range s.barriers {
		if !b.Live() {
			continue
		}
		touched := false
		for _, a := range s.aggressors {
			if a.Contact && b.touches(a.box(size)) {
				touched = true
				break
			}
		}
		if !touched {
			continue
		}
		if b.wear(s.rng.Roll(s.rules.Barrier.Wear)) {
			s.emit(BarrierDepleted{ID: b.ID, Released: s.releaseFrom(b)})
		}
	}
}

// releaseFrom frees stunned aggressors whose box crosses b. Aggressors held
// by other barriers are left alone.
func (s *Session) releaseFrom(b *Barrier) int {
	size := float64(s.rules.Aggressor.Size)
	n := 0
	for _, a := range s.aggressors {
		if a.State == Stunned && b.touches(a.box(size)) {
			a.release()
			n++
		}
	}
	return n
}

// resolveContacts runs the target and barrier checks for every aggressor
// and reports whether the target went down.
func (s *Session) resolveContacts(skip map[uint64]bool) bool {
	size := float64(s.rules.Aggressor.Size)
	tsize := float64(s.rules.Target.Size)
	targetBox := geom.NewRect(s.target.Pos, tsize, tsize)

	for _, a := range s.aggressors {
		if skip[a.ID] {
			continue
		}
		if a.State == Moving && a.box(size).Overlaps(targetBox) {
			s.sting(a, targetBox)
			if s.checkTarget() {
				return true
			}
		}
		s.barrierContact(a)
	}
	return false
}

// sting damages the target and knocks the aggressor back horizontally,
// away from the target's center. The push stops at the left wall.
func (s *Session) sting(a *Aggressor, targetBox geom.Rect) {
	dmg := s.rng.Roll(s.rules.Target.StingDamage)
	s.target.Health -= int64(dmg)

	push := float64(s.rules.Grid.Spacing * s.rules.Target.KnockbackSteps)
	center := a.box(float64(s.rules.Aggressor.Size)).Center()
	if center.X < targetBox.Center().X {
		push = -push
	}
	a.Pos.X = max(a.Pos.X+push, 0)
	s.emit(TargetStung{AggressorID: a.ID, Damage: dmg, Health: s.target.Health})
}

// barrierContact stuns and damages an aggressor touching the first live
// barrier found. It takes damage at most once per tick.
func (s *Session) barrierContact(a *Aggressor) {
	box := a.box(float64(s.rules.Aggressor.Size))
	for _, b := range s.barriers {
		if !b.Live() || !b.touches(box) {
			continue
		}
		dmg := s.rng.Roll(s.rules.Aggressor.BarrierDamage)
		a.damage(dmg)
		a.Contact = true
		if a.State == Moving {
			a.State = Stunned
			s.emit(AggressorStunned{ID: a.ID, BarrierID: b.ID, Damage: dmg})
		}
		return
	}
	a.Contact = false
}
