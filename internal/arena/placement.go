package arena

import (
	"math"

	"github.com/xpathfinder/savethedogs/internal/geom"
)

// ProposeBarrier places a barrier between two lattice points. Its length in
// grid units may not exceed the remaining budget plus the fixed allowance;
// over-long proposals return a *ResourceError and change nothing. On
// success the floored length is charged to the budget.
func (s *Session) ProposeBarrier(from, to GridPoint) error {
	if s.phase.Terminal() {
		return ErrSessionOver
	}
	if !s.onGrid(from) || !s.onGrid(to) {
		return ErrOffGrid
	}
	if from == to {
		return ErrDegenerateBarrier
	}

	seg := geom.Segment{A: s.pixel(from), B: s.pixel(to)}
	length := seg.Len() / float64(s.rules.Grid.Spacing)
	limit := s.budget + int64(s.rules.Barrier.Allowance)
	if length > float64(limit) {
		return &ResourceError{Length: length, Limit: limit}
	}

	cost := int64(math.Floor(length))
	s.budget = max(s.budget-cost, 0)
	b := &Barrier{
		ID:     len(s.barriers) + 1,
		From:   from,
		To:     to,
		Seg:    seg,
		Health: s.rules.Barrier.Health,
	}
	s.barriers = append(s.barriers, b)
	s.emit(BarrierPlaced{ID: b.ID, From: from, To: to, Cost: cost, Budget: s.budget})
	return nil
}

// Budget is the remaining barrier length in grid units.
func (s *Session) Budget() int64 { return s.budget }

func (s *Session) onGrid(p GridPoint) bool {
	return p.Col >= 0 && p.Row >= 0 && p.Col < s.rules.Grid.Cols && p.Row < s.rules.Grid.Rows
}

func (s *Session) pixel(p GridPoint) geom.Vec2 {
	x, y := s.rules.GridPixel(p.Col, p.Row)
	return geom.Vec2{X: x, Y: y}
}
