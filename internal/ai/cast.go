package ai

import (
	"math/rand"

	"github.com/vindeiatrix/mutantsgo/internal/config"
	"github.com/vindeiatrix/mutantsgo/internal/monster"
)

// CastResult is the outcome of a monster's CAST cascade action, ported
// from casting.py's CastResult/try_cast.
type CastResult struct {
	Success        bool
	Cost           int
	RemainingIons  int
	Roll           int
	HasRoll        bool
	Effect         string
}

// TryCast spends ions attempting a spell: full cost on success (roll <
// spell_success_pct), half cost (rounded down) on failure, including
// when the configured success chance is 0. A monster without enough
// ions for the full cost never attempts the roll.
func TryCast(inst *monster.Instance, cfg config.CombatConfig, rng *rand.Rand) CastResult {
	spellCost := cfg.SpellCost
	if spellCost < 0 {
		spellCost = 0
	}
	successPct := cfg.SpellSuccessPct
	if successPct < 0 {
		successPct = 0
	}
	if successPct > 100 {
		successPct = 100
	}

	available := inst.AIState.Ledger.Ions
	if available < spellCost {
		return CastResult{Success: false, RemainingIons: available}
	}

	var roll int
	hasRoll := successPct > 0
	success := false
	if hasRoll {
		roll = rng.Intn(100)
		success = roll < successPct
	} else {
		success = successPct >= 100 && spellCost == 0
	}

	costPaid := spellCost / 2
	effect := ""
	if success {
		costPaid = spellCost
		effect = "arcane-burst"
	}
	if costPaid > available {
		costPaid = available
	}

	inst.AIState.Ledger.Ions = available - costPaid
	return CastResult{
		Success:       success,
		Cost:          costPaid,
		RemainingIons: inst.AIState.Ledger.Ions,
		Roll:          roll,
		HasRoll:       hasRoll,
		Effect:        effect,
	}
}
