// Package scripting wraps a single gopher-lua VM exposing the two rules
// spec.md calls out as script-tunable: AC damage mitigation and a
// monster's per-species action-cascade weights. Go computes every input
// (attacker power, defender AC, the candidate action and its tags); Lua
// only returns the curve/override, so operators can retune either
// without a rebuild.
package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/vindeiatrix/mutantsgo/internal/combat"
)

// Engine wraps a single gopher-lua VM. Single-goroutine access only —
// every call here happens from the game-loop goroutine.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every script under
// scriptsDir/combat and scriptsDir/ai. A missing category directory is
// not an error — the engine falls back to the Go default for whatever
// function that category would have supplied.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	e := &Engine{vm: vm, log: log}

	for _, sub := range []string{"combat", "ai"} {
		if err := e.loadDir(filepath.Join(scriptsDir, sub)); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

// loadDir loads every .lua file directly under dir, skipping a
// directory that doesn't exist.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
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

// Mitigate implements combat.Mitigator by calling the Lua
// mitigate_damage(raw, ac) global when scripts/combat/mitigation.lua
// defined one, falling back to combat.GoMitigator otherwise.
func (e *Engine) Mitigate(rawPower, totalAC int) int {
	fn := e.vm.GetGlobal("mitigate_damage")
	if fn == lua.LNil {
		return combat.GoMitigator{}.Mitigate(rawPower, totalAC)
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(rawPower), lua.LNumber(totalAC)); err != nil {
		e.log.Error("lua mitigate_damage error", zap.Error(err))
		return combat.GoMitigator{}.Mitigate(rawPower, totalAC)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua mitigate_damage returned a non-number")
		return combat.GoMitigator{}.Mitigate(rawPower, totalAC)
	}
	return int(n)
}

var _ combat.Mitigator = (*Engine)(nil)

// CascadeWeight calls scripts/ai/cascade_weights.lua's
// cascade_weight(action, monster_tags) global, returning its weight and
// true. If no such global is loaded, it returns (0, false) so the
// caller keeps its own default for action.
func (e *Engine) CascadeWeight(action string, monsterTags []string) (float64, bool) {
	fn := e.vm.GetGlobal("cascade_weight")
	if fn == lua.LNil {
		return 0, false
	}

	tags := e.vm.NewTable()
	for i, tag := range monsterTags {
		tags.RawSetInt(i+1, lua.LString(tag))
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(action), tags); err != nil {
		e.log.Error("lua cascade_weight error", zap.Error(err), zap.String("action", action))
		return 0, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	if result == lua.LNil {
		return 0, false
	}
	n, ok := result.(lua.LNumber)
	if !ok {
		return 0, false
	}
	return float64(n), true
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
