package data

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Range is an inclusive integer interval sampled uniformly by the arena.
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

func (r Range) valid() bool { return r.Min <= r.Max }

// GridRules describes the placement lattice and, through it, the field size.
type GridRules struct {
	Cols    int `yaml:"cols"`
	Rows    int `yaml:"rows"`
	Margin  int `yaml:"margin"`
	Spacing int `yaml:"spacing"` // pixels per grid unit; also the movement step
}

type AggressorRules struct {
	Size          int   `yaml:"size"`
	Health        Range `yaml:"health"`
	StunTicks     int   `yaml:"stun_ticks"`
	BarrierDamage Range `yaml:"barrier_damage"` // taken while touching a live barrier
	OffFieldX     int   `yaml:"off_field_x"`
	PursuitSteps  int   `yaml:"pursuit_steps"`  // step multiple once past the midpoint
	ApproachSteps int   `yaml:"approach_steps"` // step multiple while right of the midpoint
}

type TargetRules struct {
	Size           int   `yaml:"size"`
	StingDamage    Range `yaml:"sting_damage"`
	KnockbackSteps int   `yaml:"knockback_steps"`
}

type BarrierRules struct {
	Health    int   `yaml:"health"`
	Allowance int   `yaml:"allowance"` // grid units allowed beyond the budget
	Wear      Range `yaml:"wear"`
}

type SpawnRules struct {
	CountdownTicks int   `yaml:"countdown_ticks"`
	Waves          Range `yaml:"waves"`
	PerWave        int   `yaml:"per_wave"`
	GapTicks       int   `yaml:"gap_ticks"` // main ticks between waves
	OffsetX        int   `yaml:"offset_x"`
	JitterX        int   `yaml:"jitter_x"`
}

type SessionRules struct {
	SurvivalTicks int   `yaml:"survival_ticks"`
	Reward        Range `yaml:"reward"`
	BudgetBonus   Range `yaml:"budget_bonus"`
	HealthBonus   Range `yaml:"health_bonus"`
}

// Rules is the full tuning table for one arena session.
type Rules struct {
	Grid      GridRules      `yaml:"grid"`
	Aggressor AggressorRules `yaml:"aggressor"`
	Target    TargetRules    `yaml:"target"`
	Barrier   BarrierRules   `yaml:"barrier"`
	Spawn     SpawnRules     `yaml:"spawn"`
	Session   SessionRules   `yaml:"session"`
}

// DefaultRules returns the stock tuning: a 48x24 lattice, 5 bees per wave,
// 4-5 waves, 600 survival ticks.
func DefaultRules() *Rules {
	return &Rules{
		Grid: GridRules{Cols: 48, Rows: 24, Margin: 20, Spacing: 33},
		Aggressor: AggressorRules{
			Size:          64,
			Health:        Range{15, 25},
			StunTicks:     60,
			BarrierDamage: Range{6, 16},
			OffFieldX:     -100,
			PursuitSteps:  1,
			ApproachSteps: 2,
		},
		Target: TargetRules{
			Size:           128,
			StingDamage:    Range{2, 3},
			KnockbackSteps: 5,
		},
		Barrier: BarrierRules{Health: 20, Allowance: 3, Wear: Range{3, 5}},
		Spawn: SpawnRules{
			CountdownTicks: 10,
			Waves:          Range{4, 5},
			PerWave:        5,
			GapTicks:       1,
			OffsetX:        100,
		},
		Session: SessionRules{
			SurvivalTicks: 600,
			Reward:        Range{30, 400},
			BudgetBonus:   Range{20, 80},
			HealthBonus:   Range{10, 20},
		},
	}
}

// FieldWidth is the play-field width in pixels.
func (r *Rules) FieldWidth() float64 {
	return float64(2*r.Grid.Margin + (r.Grid.Cols-1)*r.Grid.Spacing)
}

// FieldHeight is the play-field height in pixels.
func (r *Rules) FieldHeight() float64 {
	return float64(2*r.Grid.Margin + (r.Grid.Rows-1)*r.Grid.Spacing)
}

// GridPixel converts a lattice coordinate to field pixels.
func (r *Rules) GridPixel(col, row int) (x, y float64) {
	return float64(r.Grid.Margin + col*r.Grid.Spacing), float64(r.Grid.Margin + row*r.Grid.Spacing)
}

// SnapToGrid maps a field pixel to the nearest lattice point. ok is false
// when the pixel lies outside the lattice rectangle.
func (r *Rules) SnapToGrid(x, y float64) (col, row int, ok bool) {
	ox := x - float64(r.Grid.Margin)
	oy := y - float64(r.Grid.Margin)
	maxX := float64((r.Grid.Cols - 1) * r.Grid.Spacing)
	maxY := float64((r.Grid.Rows - 1) * r.Grid.Spacing)
	if ox < 0 || oy < 0 || ox > maxX || oy > maxY {
		return 0, 0, false
	}
	sp := float64(r.Grid.Spacing)
	return int(math.Round(ox / sp)), int(math.Round(oy / sp)), true
}

// Validate rejects tables the arena cannot run with.
func (r *Rules) Validate() error {
	if r.Grid.Cols < 2 || r.Grid.Rows < 2 || r.Grid.Spacing <= 0 {
		return fmt.Errorf("grid %dx%d spacing %d is too small", r.Grid.Cols, r.Grid.Rows, r.Grid.Spacing)
	}
	if r.Aggressor.Size <= 0 || r.Target.Size <= 0 {
		return fmt.Errorf("entity sizes must be positive")
	}
	if float64(r.Target.Size) >= r.FieldWidth()/2 || float64(r.Target.Size) >= r.FieldHeight() {
		return fmt.Errorf("target size %d does not fit the field", r.Target.Size)
	}
	if float64(r.Aggressor.Size) >= r.FieldHeight() {
		return fmt.Errorf("aggressor size %d does not fit the field", r.Aggressor.Size)
	}
	ranges := []struct {
		name string
		rg   Range
	}{
		{"aggressor.health", r.Aggressor.Health},
		{"aggressor.barrier_damage", r.Aggressor.BarrierDamage},
		{"target.sting_damage", r.Target.StingDamage},
		{"barrier.wear", r.Barrier.Wear},
		{"spawn.waves", r.Spawn.Waves},
		{"session.reward", r.Session.Reward},
		{"session.budget_bonus", r.Session.BudgetBonus},
		{"session.health_bonus", r.Session.HealthBonus},
	}
	for _, v := range ranges {
		if !v.rg.valid() {
			return fmt.Errorf("%s: min %d exceeds max %d", v.name, v.rg.Min, v.rg.Max)
		}
	}
	if r.Spawn.PerWave <= 0 || r.Spawn.Waves.Min <= 0 {
		return fmt.Errorf("spawn schedule must produce at least one aggressor")
	}
	if r.Spawn.JitterX < 0 || r.Spawn.GapTicks < 0 || r.Spawn.CountdownTicks < 0 {
		return fmt.Errorf("spawn timings must not be negative")
	}
	if r.Barrier.Health <= 0 || r.Barrier.Allowance < 0 {
		return fmt.Errorf("barrier health must be positive and allowance non-negative")
	}
	if r.Session.SurvivalTicks <= 0 {
		return fmt.Errorf("survival ticks must be positive")
	}
	return nil
}

// LoadRules reads a rules table. Keys missing from the file keep their
// default values.
func LoadRules(path string) (*Rules, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	r := DefaultRules()
	if err := yaml.Unmarshal(raw, r); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("validate rules: %w", err)
	}
	return r, nil
}
