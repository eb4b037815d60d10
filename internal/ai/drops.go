package ai

import (
	"math/rand"

	"github.com/vindeiatrix/mutantsgo/internal/feedback"
	"github.com/vindeiatrix/mutantsgo/internal/items"
	"github.com/vindeiatrix/mutantsgo/internal/monster"
)

// pendingDropChance is the per-turn roll a monster makes to finally let
// go of a broken weapon it's been carrying — attempts accumulate (the
// monster keeps rolling every turn) until one succeeds.
const pendingDropChance = 25

// ProcessPendingDrops implements spec.md §4.3 step 3: a broken weapon in
// the monster's bag is dropped stochastically (re-rolled every turn
// until it succeeds), while broken armour drops immediately, the turn it
// cracks. Both go to pos through registry.Drop, which itself enforces
// ground capacity.
func ProcessPendingDrops(inst *monster.Instance, pos items.Position, catalog *items.Catalog, registry *items.Registry, rng *rand.Rand, bus *feedback.Bus) {
	if inst.ArmourSlot != "" && isBroken(inst.ArmourSlot, registry) {
		if _, _, err := registry.Drop(inst.ArmourSlot, pos, bus); err == nil {
			inst.ArmourSlot = ""
		}
	}

	broken := firstBrokenWeapon(inst.Bag, registry)
	if broken == "" {
		return
	}
	if rng.Intn(100) >= pendingDropChance {
		return
	}
	if _, _, err := registry.Drop(broken, pos, bus); err != nil {
		return
	}
	inst.Bag = removeIID(inst.Bag, broken)
}

// firstBrokenWeapon returns the bag's first item already cracked to
// BrokenWeaponID — ApplyWear rewrites an item's template id in place, so
// the cracked weapon keeps its original bag slot instead of moving to
// the end.
func firstBrokenWeapon(bag []string, registry *items.Registry) string {
	for _, iid := range bag {
		if isBroken(iid, registry) {
			return iid
		}
	}
	return ""
}

// lookupFunc adapts Registry.Resolve into the (iid) -> (Instance, bool)
// shape monster.Instance.ResolveWielded and Derived expect.
func lookupFunc(registry *items.Registry) func(string) (items.Instance, bool) {
	return func(iid string) (items.Instance, bool) {
		outcome, err := registry.Resolve(iid)
		if err != nil || outcome.Instance == nil {
			return items.Instance{}, false
		}
		return *outcome.Instance, true
	}
}

func isBroken(iid string, registry *items.Registry) bool {
	outcome, err := registry.Resolve(iid)
	if err != nil || outcome.Template == nil {
		return false
	}
	return outcome.Template.ID == items.BrokenWeaponID
}

func removeIID(bag []string, target string) []string {
	out := bag[:0:0]
	for _, iid := range bag {
		if iid == target {
			continue
		}
		out = append(out, iid)
	}
	return out
}
