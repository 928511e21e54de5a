package scripting

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/xpathfinder/savethedogs/internal/arena"
)

// maxExactLua is the largest integer a Lua number carries without loss.
const maxExactLua = 1 << 53

// Engine wraps a single gopher-lua VM holding the session formulas.
// Single-goroutine access only (game loop). It implements arena.Formulas;
// any script failure falls back to arena.BuiltinFormulas.
type Engine struct {
	vm       *lua.LState
	log      *zap.Logger
	fallback arena.BuiltinFormulas
}

var _ arena.Formulas = (*Engine)(nil)

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	for _, sub := range []string{"core", "rules"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// Bootstrap calls the Lua calc_session_bootstrap function.
func (e *Engine) Bootstrap(ctx arena.BootstrapContext) arena.Bootstrap {
	if ctx.PurchasedBudget > maxExactLua || ctx.PurchasedHealth > maxExactLua || ctx.Level > maxExactLua {
		return e.fallback.Bootstrap(ctx)
	}

	t := e.vm.NewTable()
	t.RawSetString("purchased_budget", lua.LNumber(ctx.PurchasedBudget))
	t.RawSetString("purchased_health", lua.LNumber(ctx.PurchasedHealth))
	t.RawSetString("level", lua.LNumber(ctx.Level))
	t.RawSetString("budget_roll", lua.LNumber(ctx.BudgetRoll))
	t.RawSetString("health_roll", lua.LNumber(ctx.HealthRoll))

	rt, ok := e.callTable("calc_session_bootstrap", t)
	if !ok {
		return e.fallback.Bootstrap(ctx)
	}
	budget, okB := lInt64(rt, "budget")
	health, okH := lInt64(rt, "health")
	if !okB || !okH {
		e.log.Error("lua calc_session_bootstrap returned bad numbers")
		return e.fallback.Bootstrap(ctx)
	}
	return arena.Bootstrap{Budget: budget, Health: health}
}

// WinReward calls the Lua calc_win_reward function. The arena clamps the
// result to the configured reward range.
func (e *Engine) WinReward(ctx arena.RewardContext) int64 {
	if ctx.TargetHealth > maxExactLua {
		return e.fallback.WinReward(ctx)
	}

	t := e.vm.NewTable()
	t.RawSetString("roll", lua.LNumber(ctx.Roll))
	t.RawSetString("condition", lua.LString(ctx.Condition))
	t.RawSetString("survival_ticks", lua.LNumber(ctx.SurvivalTicks))
	t.RawSetString("target_health", lua.LNumber(ctx.TargetHealth))
	t.RawSetString("waves", lua.LNumber(ctx.WavesSpawned))
	t.RawSetString("level", lua.LNumber(ctx.Level))

	fn := e.vm.GetGlobal("calc_win_reward")
	if fn == lua.LNil {
		e.log.Error("lua function calc_win_reward not found")
		return e.fallback.WinReward(ctx)
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua calc_win_reward error", zap.Error(err))
		return e.fallback.WinReward(ctx)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	n, ok := result.(lua.LNumber)
	if !ok || !finite(float64(n)) {
		e.log.Error("lua calc_win_reward returned non-number")
		return e.fallback.WinReward(ctx)
	}
	return int64(n)
}

func (e *Engine) callTable(name string, arg *lua.LTable) (*lua.LTable, bool) {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		e.log.Error("lua function not found", zap.String("name", name))
		return nil, false
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, arg); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return nil, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua function returned non-table", zap.String("func", name))
		return nil, false
	}
	return rt, true
}

func lInt64(t *lua.LTable, key string) (int64, bool) {
	n, ok := t.RawGetString(key).(lua.LNumber)
	if !ok || !finite(float64(n)) || math.Abs(float64(n)) > maxExactLua {
		return 0, false
	}
	return int64(n), true
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
