package ai

import (
	"math/rand"

	"github.com/vindeiatrix/mutantsgo/internal/combat"
	"github.com/vindeiatrix/mutantsgo/internal/items"
	"github.com/vindeiatrix/mutantsgo/internal/monster"
)

// AttackPlan names the weapon (if any) and damage source an ATTACK
// cascade action resolved to.
type AttackPlan struct {
	Source combat.Source
	ItemIID string
}

// weaponWeight is the melee/bolt weight candidate, used for the
// weighted draw in SelectAttack.
type weaponWeight struct {
	iid    string
	source combat.Source
	weight float64
}

// SelectAttack implements spec.md §4.3.1: every weapon-capable item in
// the monster's bag competes by weight proportional to its base power
// (cracked/broken items count at half weight), a ranged weapon's chance
// is biased up or down by prefersRanged, and the innate attack always
// carries at least weight 1 so an unarmed monster can still act. Ties
// within the same weight fall back to bag order.
func SelectAttack(inst *monster.Instance, catalog *items.Catalog, registry *items.Registry, prefersRanged bool, rng *rand.Rand) AttackPlan {
	lookup := lookupFunc(registry)
	var candidates []weaponWeight

	for _, iid := range inst.Bag {
		row, ok := lookup(iid)
		if !ok {
			continue
		}
		tpl := catalog.Get(row.ItemID)
		if tpl == nil {
			continue
		}
		broken := row.ItemID == items.BrokenWeaponID
		switch {
		case tpl.BasePowerM > 0 && !tpl.Ranged:
			w := float64(tpl.BasePowerM)
			if broken {
				w /= 2
			}
			candidates = append(candidates, weaponWeight{iid, combat.SourceMelee, w})
		case tpl.BasePowerB > 0 || tpl.Ranged:
			w := float64(tpl.BasePowerB)
			if w <= 0 {
				w = float64(tpl.BasePowerM)
			}
			if broken {
				w /= 2
			}
			if prefersRanged {
				w *= 2
			} else {
				w /= 2
			}
			candidates = append(candidates, weaponWeight{iid, combat.SourceBolt, w})
		}
	}

	innateWeight := 1.0
	if len(candidates) == 0 {
		innateWeight = 1
	}

	total := innateWeight
	for _, c := range candidates {
		total += c.weight
	}

	roll := rng.Float64() * total
	var cumulative float64
	for _, c := range candidates {
		cumulative += c.weight
		if roll < cumulative {
			return AttackPlan{Source: c.source, ItemIID: c.iid}
		}
	}
	return AttackPlan{Source: combat.SourceInnate}
}
