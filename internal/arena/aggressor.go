package arena

import "github.com/xpathfinder/savethedogs/internal/geom"

// MotionState is whether an aggressor is free to move.
type MotionState uint8

const (
	Moving MotionState = iota
	Stunned
)

func (m MotionState) String() string {
	if m == Stunned {
		return "stunned"
	}
	return "moving"
}

// Aggressor is one bee. Pos is the top-left corner of its square box.
type Aggressor struct {
	ID        uint64
	Pos       geom.Vec2
	State     MotionState
	StunTicks int
	Health    int
	MaxHealth int
	Contact   bool // touched a live barrier on its last contact pass
}

func (a *Aggressor) box(size float64) geom.Rect {
	return geom.NewRect(a.Pos, size, size)
}

// damage lowers health, clamping at zero.
func (a *Aggressor) damage(n int) {
	a.Health -= n
	if a.Health < 0 {
		a.Health = 0
	}
}

func (a *Aggressor) release() {
	a.State = Moving
	a.StunTicks = 0
	a.Contact = false
}
