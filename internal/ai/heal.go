package ai

import (
	"github.com/vindeiatrix/mutantsgo/internal/config"
	"github.com/vindeiatrix/mutantsgo/internal/monster"
)

// HealResult is what a HEAL cascade action did.
type HealResult struct {
	Healed   bool
	Amount   int
	Cost     int
	Remaining int
}

// monsterLevel floors a monster's level at 1, the original's
// monster_level guard against malformed catalog rows.
func monsterLevel(inst *monster.Instance) int {
	if inst.Level < 1 {
		return 1
	}
	return inst.Level
}

// HealAmount is the HP a single heal action restores: level+5, at least 1.
func HealAmount(inst *monster.Instance) int {
	amount := monsterLevel(inst) + 5
	if amount < 1 {
		amount = 1
	}
	return amount
}

// HealCost is the ion price of a monster heal action, grounded on
// heal.py's heal_cost: monster_level * the "default" multiplier from
// cfg.HealCostMultiplier (1 when that entry is missing or non-positive).
func HealCost(inst *monster.Instance, cfg config.CombatConfig) int {
	multiplier := cfg.HealCostMultiplier["default"]
	if multiplier <= 0 {
		multiplier = 1
	}
	return monsterLevel(inst) * multiplier
}

// TryHeal spends ions and restores HP if inst can afford cost and isn't
// already at full HP. Returns false (no-op) otherwise so the cascade
// falls through to the next action.
func TryHeal(inst *monster.Instance, cfg config.CombatConfig) HealResult {
	if inst.HP.Current >= inst.HP.Max {
		return HealResult{Healed: false}
	}
	cost := HealCost(inst, cfg)
	if inst.AIState.Ledger.Ions < cost {
		return HealResult{Healed: false, Cost: cost, Remaining: inst.AIState.Ledger.Ions}
	}
	inst.AIState.Ledger.Ions -= cost

	amount := HealAmount(inst)
	inst.HP.Current += amount
	if inst.HP.Current > inst.HP.Max {
		inst.HP.Current = inst.HP.Max
	}
	return HealResult{Healed: true, Amount: amount, Cost: cost, Remaining: inst.AIState.Ledger.Ions}
}
