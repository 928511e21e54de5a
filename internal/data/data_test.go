package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultRulesValid(t *testing.T) {
	r := DefaultRules()
	require.NoError(t, r.Validate())
	assert.Equal(t, 1591.0, r.FieldWidth())
	assert.Equal(t, 799.0, r.FieldHeight())
}

func TestLoadRulesPartialOverride(t *testing.T) {
	path := writeFile(t, "rules.yaml", `
spawn:
  per_wave: 3
session:
  reward: { min: 50, max: 60 }
`)
	r, err := LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, 3, r.Spawn.PerWave)
	assert.Equal(t, Range{50, 60}, r.Session.Reward)
	assert.Equal(t, 10, r.Spawn.CountdownTicks, "untouched keys keep defaults")
	assert.Equal(t, 33, r.Grid.Spacing)
}

func TestLoadRulesShippedTable(t *testing.T) {
	r, err := LoadRules(filepath.Join("..", "..", "data", "yaml", "rules.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultRules(), r)
}

func TestLoadRulesRejectsInvertedRange(t *testing.T) {
	path := writeFile(t, "rules.yaml", "barrier:\n  wear: { min: 9, max: 2 }\n")
	_, err := LoadRules(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "barrier.wear")
}

func TestValidateReportsFirstBadRange(t *testing.T) {
	r := DefaultRules()
	r.Barrier.Wear = Range{Min: 9, Max: 2}
	r.Aggressor.Health = Range{Min: 30, Max: 10}
	r.Session.Reward = Range{Min: 500, Max: 1}
	for i := 0; i < 20; i++ {
		assert.EqualError(t, r.Validate(), "aggressor.health: min 30 exceeds max 10")
	}
}

func TestLoadRulesMissingFile(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSnapToGrid(t *testing.T) {
	r := DefaultRules()

	col, row, ok := r.SnapToGrid(20, 20)
	require.True(t, ok)
	assert.Equal(t, 0, col)
	assert.Equal(t, 0, row)

	col, row, ok = r.SnapToGrid(20+33*3+10, 20+33*2-10)
	require.True(t, ok)
	assert.Equal(t, 3, col)
	assert.Equal(t, 2, row)

	_, _, ok = r.SnapToGrid(5, 40)
	assert.False(t, ok, "left of the margin")

	_, _, ok = r.SnapToGrid(40, r.FieldHeight())
	assert.False(t, ok, "below the last row")

	x, y := r.GridPixel(col, row)
	assert.Equal(t, 20.0+99, x)
	assert.Equal(t, 20.0+66, y)
}

func TestLoadShopTable(t *testing.T) {
	tbl, err := LoadShopTable(filepath.Join("..", "..", "data", "yaml", "shop_list.yaml"))
	require.NoError(t, err)
	require.Equal(t, 3, tbl.Count())

	blocks := tbl.Get("barrier_blocks")
	require.NotNil(t, blocks)
	assert.EqualValues(t, 1000, blocks.Price)
	assert.EqualValues(t, 4, blocks.Grant.BarrierBudget)

	ids := make([]string, 0, 3)
	for _, it := range tbl.Items() {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"barrier_blocks", "dog_health", "level"}, ids)
	assert.Nil(t, tbl.Get("missing"))
}

func TestLoadShopTableDuplicate(t *testing.T) {
	path := writeFile(t, "shop.yaml", `
items:
  - { id: a, price: 1 }
  - { id: a, price: 2 }
`)
	_, err := LoadShopTable(path)
	assert.ErrorContains(t, err, "duplicate")
}

func TestLoadPlanSortsStable(t *testing.T) {
	path := writeFile(t, "plan.yaml", `
seed: 7
placements:
  - { tick: 30, from: [1, 1], to: [1, 5] }
  - { tick: 10, from: [2, 2], to: [2, 6] }
  - { tick: 30, from: [3, 3], to: [3, 7] }
`)
	p, err := LoadPlan(path)
	require.NoError(t, err)
	assert.EqualValues(t, 7, p.Seed)
	require.Len(t, p.Placements, 3)
	assert.EqualValues(t, 10, p.Placements[0].Tick)
	assert.Equal(t, [2]int{1, 1}, p.Placements[1].From)
	assert.Equal(t, [2]int{3, 3}, p.Placements[2].From)
}
