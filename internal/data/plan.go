package data

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// PlannedBarrier is one scripted placement, applied at base tick Tick.
type PlannedBarrier struct {
	Tick uint64 `yaml:"tick"`
	From [2]int `yaml:"from"` // col, row
	To   [2]int `yaml:"to"`
}

// Plan is an ordered list of placements replayed by headless sessions.
type Plan struct {
	Seed       int64            `yaml:"seed"`
	Placements []PlannedBarrier `yaml:"placements"`
}

// LoadPlan reads a placement plan and sorts it by tick. Placements sharing a
// tick keep their file order.
func LoadPlan(path string) (*Plan, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}
	var p Plan
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}
	sort.SliceStable(p.Placements, func(i, j int) bool {
		return p.Placements[i].Tick < p.Placements[j].Tick
	})
	return &p, nil
}
