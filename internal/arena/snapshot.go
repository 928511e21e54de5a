package arena

import "github.com/xpathfinder/savethedogs/internal/geom"

type AggressorView struct {
	ID        uint64
	Pos       geom.Vec2
	Health    int
	MaxHealth int
	State     MotionState
}

type BarrierView struct {
	ID        int
	From, To  geom.Vec2
	Health    int
	MaxHealth int
}

type TargetView struct {
	Pos    geom.Vec2
	Size   float64
	Health int64
}

// Snapshot is a copy of everything a renderer needs. It shares no memory
// with the session.
type Snapshot struct {
	Phase         Phase
	Countdown     int
	SurvivalTicks int
	WavesStarted  int
	TotalWaves    int
	Budget        int64
	FieldW        float64
	FieldH        float64
	AggressorSize float64
	Target        TargetView
	Aggressors    []AggressorView
	Barriers      []BarrierView
	Outcome       *Outcome
}

func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:         s.phase,
		Countdown:     s.director.Countdown(),
		SurvivalTicks: s.survival,
		WavesStarted:  s.director.WavesStarted(),
		TotalWaves:    s.director.TotalWaves(),
		Budget:        s.budget,
		FieldW:        s.rules.FieldWidth(),
		FieldH:        s.rules.FieldHeight(),
		AggressorSize: float64(s.rules.Aggressor.Size),
		Target: TargetView{
			Pos:    s.target.Pos,
			Size:   float64(s.rules.Target.Size),
			Health: s.target.Health,
		},
		Aggressors: make([]AggressorView, len(s.aggressors)),
		Barriers:   make([]BarrierView, len(s.barriers)),
		Outcome:    s.Outcome(),
	}
	for i, a := range s.aggressors {
		snap.Aggressors[i] = AggressorView{
			ID:        a.ID,
			Pos:       a.Pos,
			Health:    a.Health,
			MaxHealth: a.MaxHealth,
			State:     a.State,
		}
	}
	for i, b := range s.barriers {
		snap.Barriers[i] = BarrierView{
			ID:        b.ID,
			From:      b.Seg.A,
			To:        b.Seg.B,
			Health:    b.Health,
			MaxHealth: s.rules.Barrier.Health,
		}
	}
	return snap
}
