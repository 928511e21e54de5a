package arena

import "github.com/xpathfinder/savethedogs/internal/geom"

// moveAggressors advances every aggressor by one main tick. Stunned
// aggressors count toward their release instead of moving. The returned
// set holds aggressors released this tick; they sit out the contact pass.
func (s *Session) moveAggressors() map[uint64]bool {
	var released map[uint64]bool
	step := float64(s.rules.Grid.Spacing)
	mid := s.rules.FieldWidth() / 2
	maxY := s.rules.FieldHeight() - float64(s.rules.Aggressor.Size)

	for _, a := range s.aggressors {
		if a.State == Stunned {
			a.StunTicks++
			if a.StunTicks >= s.rules.Aggressor.StunTicks {
				a.release()
				if released == nil {
					released = make(map[uint64]bool)
				}
				released[a.ID] = true
			}
			continue
		}

		if a.Pos.X <= mid {
			dir := s.target.Pos.Sub(a.Pos)
			if dir.Len() > 0 {
				a.Pos = a.Pos.Add(dir.Norm().Mul(step * float64(s.rules.Aggressor.PursuitSteps)))
			}
		} else {
			a.Pos.X -= step * float64(s.rules.Aggressor.ApproachSteps)
		}

		if a.Pos.X < 0 {
			a.Pos.X = 0
			a.Pos.Y += float64(s.rng.IntRange(-1, 1)) * step
		}
		a.Pos.Y = geom.Clamp(a.Pos.Y, 0, maxY)
	}
	return released
}
