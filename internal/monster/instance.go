package monster

import (
	"github.com/vindeiatrix/mutantsgo/internal/items"
	"github.com/vindeiatrix/mutantsgo/internal/player"
)

// TargetSnapshot is one player's last-known position as seen by a
// monster's AI, keyed by player id in AIState.Targets.
type TargetSnapshot struct {
	Pos          player.Position `json:"pos"`
	CoLocated    bool            `json:"co_located"`
	LastSeenTick int64           `json:"last_seen_tick"`
}

// PendingDrop records loot a kill hasn't yet materialized onto the
// ground (e.g. awaiting the next tick's ground-capacity check).
type PendingDrop struct {
	IIDs   []string `json:"iids"`
	Reason string   `json:"reason"`
}

// Ledger is a monster's accumulated ions/riblets, paid out on death.
type Ledger struct {
	Ions    int `json:"ions"`
	Riblets int `json:"riblets"`
}

// AIState is a monster instance's mutable AI bookkeeping.
type AIState struct {
	Targets     map[string]TargetSnapshot `json:"targets"`
	PendingDrop *PendingDrop              `json:"pending_drop,omitempty"`
	Ledger      Ledger                    `json:"ledger"`
}

// Timers is a monster instance's per-tick cooldown bookkeeping.
type Timers struct {
	AttackCooldown int `json:"attack_cooldown"`
	MoveCooldown   int `json:"move_cooldown"`
}

// Instance is a live monster in the world.
type Instance struct {
	InstanceID     string
	MonsterID      string
	Name           string
	Pos            player.Position
	HP             player.HP
	Stats          player.Stats
	Level          int
	Bag            []string // item instance ids, origin="native"
	ArmourSlot     string   // item instance id, or ""
	TargetPlayerID string
	AIState        AIState
	Timers         Timers
	InnateAttack   AttackLine
}

// ResolveWielded returns the instance id the monster is currently
// wielding: the first weapon template found in its bag, else "" — spec
// .md §3's "wielded: instance-id in bag, else first weapon, else none."
func (inst *Instance) ResolveWielded(catalog *items.Catalog, lookup func(iid string) (items.Instance, bool)) string {
	for _, iid := range inst.Bag {
		row, ok := lookup(iid)
		if !ok {
			continue
		}
		tpl := catalog.Get(row.ItemID)
		if tpl != nil && tpl.IsWeapon() {
			return iid
		}
	}
	return ""
}

// DerivedStats is a monster's combat stats recomputed from its current
// bag/armour/stats, per spec.md §3: armour_class = dex_bonus +
// armour_class_of_equipped; weapon_damage = base + 4*enchant + str_bonus.
type DerivedStats struct {
	ArmourClass  int
	WeaponDamage int
}

// Derived recomputes the instance's combat stats. lookup resolves an
// item instance id to its row; catalog resolves a row's item_id to its
// template for base power/armour class.
func (inst *Instance) Derived(catalog *items.Catalog, lookup func(iid string) (items.Instance, bool)) DerivedStats {
	strBonus := inst.Stats.Str / 10
	dexBonus := inst.Stats.Dex / 10

	armourAC := 0
	if inst.ArmourSlot != "" {
		if row, ok := lookup(inst.ArmourSlot); ok {
			if tpl := catalog.Get(row.ItemID); tpl != nil {
				armourAC = tpl.ArmourClass
			}
		}
	}

	weaponBase := inst.InnateAttack.PowerBase + inst.InnateAttack.PowerPerLevel*inst.Level
	weaponEnchant := 0
	if wielded := inst.ResolveWielded(catalog, lookup); wielded != "" {
		if row, ok := lookup(wielded); ok {
			if tpl := catalog.Get(row.ItemID); tpl != nil {
				weaponBase = tpl.BasePowerM
				weaponEnchant = row.Enchant
			}
		}
	}

	return DerivedStats{
		ArmourClass:  dexBonus + armourAC,
		WeaponDamage: weaponBase + 4*weaponEnchant + strBonus,
	}
}
