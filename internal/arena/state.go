package arena

import (
	"math"

	"github.com/xpathfinder/savethedogs/internal/profile"
)

// Phase is the session's position in its lifecycle. Exactly one holds.
type Phase uint8

const (
	PhaseCountdown Phase = iota
	PhaseWaveSpawning
	PhaseActive
	PhaseWon
	PhaseLost
)

var phaseNames = [...]string{"countdown", "wave_spawning", "active", "won", "lost"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Terminal reports whether the session has ended.
func (p Phase) Terminal() bool { return p == PhaseWon || p == PhaseLost }

// EndCondition names what ended a session.
type EndCondition string

const (
	EndSurvived   EndCondition = "survived"
	EndCleared    EndCondition = "cleared"
	EndTargetDown EndCondition = "target_down"
	EndCorrupted  EndCondition = "corrupted"
)

// Outcome is the final record of a finished session.
type Outcome struct {
	Phase         Phase
	Condition     EndCondition
	Reason        error // *CorruptionError when Condition is EndCorrupted
	Reward        int64
	SurvivalTicks int
	TargetHealth  int64
	WavesSpawned  int
	TotalWaves    int
}

// corruptionLimit is three quarters of the representable health range.
const corruptionLimit = math.MaxInt64 / 4 * 3

// BootstrapContext carries the profile values and the bonus rolls the
// session drew for its starting budget and health.
type BootstrapContext struct {
	PurchasedBudget int64
	PurchasedHealth int64
	Level           int64
	BudgetRoll      int
	HealthRoll      int
}

// Bootstrap is the starting budget and target health of a session.
type Bootstrap struct {
	Budget int64
	Health int64
}

// RewardContext describes a won session to the reward formula.
type RewardContext struct {
	Roll          int
	Condition     EndCondition
	SurvivalTicks int
	TargetHealth  int64
	WavesSpawned  int
	Level         int64
}

// Formulas turns pre-rolled random values into session numbers. The arena
// never hands a formula its RNG, so any implementation stays deterministic.
type Formulas interface {
	Bootstrap(ctx BootstrapContext) Bootstrap
	WinReward(ctx RewardContext) int64
}

// BuiltinFormulas adds the rolls to the purchased amounts and grants the
// reward roll unchanged.
type BuiltinFormulas struct{}

func (BuiltinFormulas) Bootstrap(ctx BootstrapContext) Bootstrap {
	return Bootstrap{
		Budget: profile.AddSaturating(ctx.PurchasedBudget, int64(ctx.BudgetRoll)),
		Health: profile.AddSaturating(ctx.PurchasedHealth, int64(ctx.HealthRoll)),
	}
}

func (BuiltinFormulas) WinReward(ctx RewardContext) int64 {
	return int64(ctx.Roll)
}
