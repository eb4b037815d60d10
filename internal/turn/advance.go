package turn

import (
	"github.com/vindeiatrix/mutantsgo/internal/player"
	"go.uber.org/zap"
)

// Advance runs one command inside a full turn: BeginTurn, fn, then —
// whether fn returned an error or not — the turn RNG tick, the status
// decrement, the monster AI sweep, and FinishTurn all still run, in that
// order. This is dispatch.py's Dispatch.call try/finally turn-advance
// guarantee, ported directly: a command that errors mid-handler still
// advances the turn clock, decays statuses, ticks monsters, and still
// closes out the turn log.
func Advance(obs *Observer, log *zap.Logger, hpBefore player.HP, token, resolved string, fn func() error, rngTick func(), statusTick func(), monsterSweep func(), hpAfter func() player.HP) error {
	obs.BeginTurn(token, resolved, hpBefore)
	defer func() {
		runStepSafely(log, "turn RNG tick", rngTick)
		runStepSafely(log, "status tick", statusTick)
		runStepSafely(log, "monster AI turn sweep", monsterSweep)
		if summary := obs.FinishTurn(hpAfter()); summary != "" && log != nil {
			log.Debug(summary)
		}
	}()
	return fn()
}

// runStepSafely mirrors _post_command's defensive try/except around each
// end-of-turn step: a panic in one step is logged, not allowed to skip
// the steps after it or FinishTurn.
func runStepSafely(log *zap.Logger, label string, step func()) {
	if step == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil && log != nil {
			log.Error(label+" failed", zap.Any("panic", r))
		}
	}()
	step()
}
