package arena

import "github.com/xpathfinder/savethedogs/internal/geom"

// GridPoint is a lattice coordinate.
type GridPoint struct {
	Col, Row int
}

// Barrier is a player-drawn segment. Depleted barriers stay in the
// collection with zero health and take no further part in collisions.
type Barrier struct {
	ID       int
	From, To GridPoint
	Seg      geom.Segment
	Health   int
}

func (b *Barrier) Live() bool { return b.Health > 0 }

func (b *Barrier) touches(box geom.Rect) bool {
	return box.TouchesSegment(b.Seg)
}

// wear lowers health and reports whether the barrier just ran out.
func (b *Barrier) wear(n int) bool {
	b.Health -= n
	if b.Health <= 0 {
		b.Health = 0
		return true
	}
	return false
}
