package arena

import "github.com/xpathfinder/savethedogs/internal/geom"

// Event is something a session reports to the outside world. Sessions queue
// events internally; callers collect them with DrainEvents after each tick.
type Event interface {
	arenaEvent()
}

type CountdownTick struct {
	Remaining int
}

type WaveStarted struct {
	Wave  int // 1-based
	Total int
}

type AggressorSpawned struct {
	ID     uint64
	Pos    geom.Vec2
	Health int
}

type AggressorStunned struct {
	ID        uint64
	BarrierID int
	Damage    int
}

// AggressorRemoved is queued by the purge pass. Escaped is true for
// aggressors that left the field rather than dying.
type AggressorRemoved struct {
	ID      uint64
	Escaped bool
}

type TargetStung struct {
	AggressorID uint64
	Damage      int
	Health      int64
}

type BarrierPlaced struct {
	ID       int
	From, To GridPoint
	Cost     int64
	Budget   int64
}

type BarrierDepleted struct {
	ID       int
	Released int
}

type SessionEnded struct {
	Outcome Outcome
}

func (CountdownTick) arenaEvent()    {}
func (WaveStarted) arenaEvent()      {}
func (AggressorSpawned) arenaEvent() {}
func (AggressorStunned) arenaEvent() {}
func (AggressorRemoved) arenaEvent() {}
func (TargetStung) arenaEvent()      {}
func (BarrierPlaced) arenaEvent()    {}
func (BarrierDepleted) arenaEvent()  {}
func (SessionEnded) arenaEvent()     {}
