package scripting

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xpathfinder/savethedogs/internal/arena"
)

func newEngine(t *testing.T, dir string) *Engine {
	t.Helper()
	e, err := NewEngine(dir, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "rules"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rules", "session.lua"), []byte(body), 0o644))
	return dir
}

func TestShippedScripts(t *testing.T) {
	e := newEngine(t, filepath.Join("..", "..", "scripts"))

	boot := e.Bootstrap(arena.BootstrapContext{PurchasedBudget: 8, PurchasedHealth: 4, BudgetRoll: 30, HealthRoll: 12})
	assert.Equal(t, arena.Bootstrap{Budget: 38, Health: 16}, boot)

	assert.EqualValues(t, 120, e.WinReward(arena.RewardContext{Roll: 120, Condition: arena.EndSurvived}))
	assert.EqualValues(t, 120, e.WinReward(arena.RewardContext{Roll: 120, Condition: arena.EndCleared, WavesSpawned: 5}))
	for _, roll := range []int{30, 380, 400} {
		for _, cond := range []arena.EndCondition{arena.EndSurvived, arena.EndCleared} {
			got := e.WinReward(arena.RewardContext{Roll: roll, Condition: cond, WavesSpawned: 5, Level: 3})
			assert.EqualValues(t, roll, got, "%s roll %d", cond, roll)
		}
	}
}

func TestMissingFunctionsFallBack(t *testing.T) {
	e := newEngine(t, t.TempDir())

	ctx := arena.BootstrapContext{PurchasedBudget: 1, PurchasedHealth: 2, BudgetRoll: 3, HealthRoll: 4}
	assert.Equal(t, arena.BuiltinFormulas{}.Bootstrap(ctx), e.Bootstrap(ctx))
	assert.EqualValues(t, 77, e.WinReward(arena.RewardContext{Roll: 77}))
}

func TestScriptErrorsFallBack(t *testing.T) {
	e := newEngine(t, writeScript(t, `
function calc_session_bootstrap(ctx) error("boom") end
function calc_win_reward(ctx) return "lots" end
`))

	ctx := arena.BootstrapContext{BudgetRoll: 20, HealthRoll: 10}
	assert.Equal(t, arena.Bootstrap{Budget: 20, Health: 10}, e.Bootstrap(ctx))
	assert.EqualValues(t, 50, e.WinReward(arena.RewardContext{Roll: 50}))
}

func TestBootstrapRejectsNonFinite(t *testing.T) {
	e := newEngine(t, writeScript(t, `
function calc_session_bootstrap(ctx) return { budget = 1/0, health = 5 } end
`))
	assert.Equal(t, arena.Bootstrap{Budget: 1, Health: 1},
		e.Bootstrap(arena.BootstrapContext{BudgetRoll: 1, HealthRoll: 1}))
}

func TestHugeProfileSkipsLua(t *testing.T) {
	e := newEngine(t, writeScript(t, `
function calc_session_bootstrap(ctx) return { budget = 0, health = 0 } end
`))
	boot := e.Bootstrap(arena.BootstrapContext{PurchasedHealth: math.MaxInt64, HealthRoll: 10})
	assert.EqualValues(t, int64(math.MaxInt64), boot.Health)
}

func TestBadScriptFailsLoad(t *testing.T) {
	_, err := NewEngine(writeScript(t, "function ("), zap.NewNop())
	assert.Error(t, err)
}
