// Package economy implements the ion-cost bookkeeping for the player
// commands that spend currency: heal and travel.
package economy

import (
	"strings"

	"github.com/vindeiatrix/mutantsgo/internal/config"
	"github.com/vindeiatrix/mutantsgo/internal/player"
)

// classMultiplier looks up class's heal-cost multiplier in the table,
// falling back to "default" for any class missing from it — ported
// from commands/heal.py's _class_multiplier.
func classMultiplier(class player.Class, table map[string]int) int {
	key := strings.ToLower(string(class))
	if v, ok := table[key]; ok {
		return v
	}
	return table["default"]
}

// HealCost is multiplier(class) * max(1, level), per spec.md §3.1.
func HealCost(class player.Class, level int, cfg config.CombatConfig) int {
	if level < 1 {
		level = 1
	}
	return classMultiplier(class, cfg.HealCostMultiplier) * level
}

// HealAmount is the flat level+5 heal a player command restores — the
// same formula monster AI's heal.go uses, with the level likewise
// floored at 1.
func HealAmount(level int) int {
	if level < 1 {
		level = 1
	}
	return level + 5
}

// HealOutcome is what TryHeal did.
type HealOutcome struct {
	Healed    int
	Cost      int
	Reason    string // "" on success; "no_max_hp" | "full_health" | "insufficient_ions"
	Remaining int
}

// TryHeal applies heal.py's heal_cmd sequence against p: full-health and
// insufficient-ion checks first, then the mutation.
func TryHeal(p *player.Profile, cfg config.CombatConfig) HealOutcome {
	if p.HP.Max <= 0 {
		return HealOutcome{Reason: "no_max_hp"}
	}
	missing := p.HP.Max - p.HP.Current
	if missing <= 0 {
		return HealOutcome{Reason: "full_health"}
	}

	cost := HealCost(p.Class, p.Currencies.Level, cfg)
	if p.Currencies.Ions < cost {
		return HealOutcome{Reason: "insufficient_ions", Cost: cost, Remaining: p.Currencies.Ions}
	}

	amount := HealAmount(p.Currencies.Level)
	healed := amount
	if healed > missing {
		healed = missing
	}
	p.HP.Current += healed
	p.HP.Clamp()
	p.Currencies.Ions -= cost

	return HealOutcome{Healed: healed, Cost: cost, Remaining: p.Currencies.Ions}
}
