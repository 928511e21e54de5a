package system

import "time"

// Phase defines execution ordering within a single base tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: queued and scripted placements
	PhasePreUpdate               // 1: dispatch last tick's events
	PhaseUpdate                  // 2: countdown and combat
	PhasePostUpdate              // 3: spawning
	PhaseOutput                  // 4: render
	PhasePersist                 // 5: save profile on session end
	PhaseCleanup                 // 6: collect session events
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhasePreUpdate:
		return "pre_update"
	case PhaseUpdate:
		return "update"
	case PhasePostUpdate:
		return "post_update"
	case PhaseOutput:
		return "output"
	case PhasePersist:
		return "persist"
	case PhaseCleanup:
		return "cleanup"
	}
	return "unknown"
}

// System is one step of the tick pipeline.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
