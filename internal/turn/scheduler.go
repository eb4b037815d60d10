package turn

import (
	"fmt"
	"math/rand"

	"github.com/vindeiatrix/mutantsgo/internal/ai"
	"github.com/vindeiatrix/mutantsgo/internal/combat"
	"github.com/vindeiatrix/mutantsgo/internal/feedback"
	"github.com/vindeiatrix/mutantsgo/internal/items"
	"github.com/vindeiatrix/mutantsgo/internal/monster"
	"github.com/vindeiatrix/mutantsgo/internal/player"
	"github.com/vindeiatrix/mutantsgo/internal/world"
)

// MonsterExternal implements ai.External against the live player and
// item world: it's the collaborator ai.Tick delegates ATTACK, PICKUP,
// CONVERT, and MOVE to, since internal/ai by itself only ever touches a
// monster's own ions/HP/RNG.
type MonsterExternal struct {
	Defender  *player.Profile
	Items     *items.Registry
	Catalog   *items.Catalog
	Bus       *feedback.Bus
	Mitigator combat.Mitigator
	Grid      *world.Grid
	Dynamics  *world.Dynamics
	RNG       *rand.Rand
}

func (e *MonsterExternal) lookup(iid string) (items.Instance, bool) {
	outcome, err := e.Items.Resolve(iid)
	if err != nil || outcome.Instance == nil {
		return items.Instance{}, false
	}
	return *outcome.Instance, true
}

// Attack resolves one monster strike against the defending player,
// mirroring the same AttackInput/ResolveAttack pipeline a player-vs-
// monster strike uses (spec.md §4.3.2), just with the attacker/defender
// roles swapped.
func (e *MonsterExternal) Attack(inst *monster.Instance, plan ai.AttackPlan) bool {
	if e.Defender == nil {
		return false
	}
	basePower, enchant := e.resolvePower(inst, plan)
	strBonus := inst.Stats.Str / 10
	dexBonus := e.Defender.Stats.Dex / 10

	result := combat.ResolveAttack(combat.AttackInput{
		Source:           plan.Source,
		BasePower:        basePower,
		EnchantLevel:     enchant,
		AttackerStrBonus: strBonus,
		DefenderDexBonus: dexBonus,
		DefenderArmourAC: e.defenderArmourAC(),
	}, e.Mitigator)

	e.Defender.HP.Current -= result.Damage
	e.Defender.HP.Clamp()
	killed := e.Defender.HP.Current <= 0

	if e.Bus != nil {
		e.Bus.Push(feedback.CombatStrike, fmt.Sprintf("%s strikes you for %d damage.", monsterName(inst), result.Damage), feedback.Meta{
			"monster": inst.MonsterID,
			"damage":  result.Damage,
			"source":  string(plan.Source),
			"killed":  killed,
		})
		if killed {
			e.Bus.Push(feedback.CombatDeath, "You have died.", feedback.Meta{"source": inst.MonsterID})
		}
	}

	if plan.Source != combat.SourceInnate && plan.ItemIID != "" && result.Damage > 0 {
		_, _ = combat.ApplyStrikeWear(e.Items, plan.ItemIID)
	}
	return true
}

func (e *MonsterExternal) resolvePower(inst *monster.Instance, plan ai.AttackPlan) (base, enchant int) {
	innateBase := inst.InnateAttack.PowerBase + inst.InnateAttack.PowerPerLevel*inst.Level
	if plan.Source == combat.SourceInnate || plan.ItemIID == "" {
		return innateBase, 0
	}
	row, ok := e.lookup(plan.ItemIID)
	if !ok {
		return innateBase, 0
	}
	tpl := e.Catalog.Get(row.ItemID)
	if tpl == nil {
		return 0, row.Enchant
	}
	if plan.Source == combat.SourceBolt {
		return tpl.BasePowerB, row.Enchant
	}
	return tpl.BasePowerM, row.Enchant
}

func (e *MonsterExternal) defenderArmourAC() int {
	if e.Defender.Equipment.Armour == "" {
		return 0
	}
	row, ok := e.lookup(e.Defender.Equipment.Armour)
	if !ok {
		return 0
	}
	if tpl := e.Catalog.Get(row.ItemID); tpl != nil {
		return tpl.ArmourClass
	}
	return 0
}

// Pickup has inst take the first item resting on its own tile into its
// bag.
func (e *MonsterExternal) Pickup(inst *monster.Instance) bool {
	ground, err := e.Items.ListAt(items.Position{Year: inst.Pos.Year, X: inst.Pos.X, Y: inst.Pos.Y})
	if err != nil || len(ground) == 0 {
		return false
	}
	target := ground[0]
	picked, err := e.Items.PickUp(target.IID, inst.InstanceID)
	if err != nil {
		return false
	}
	inst.Bag = append(inst.Bag, picked.IID)
	if e.Bus != nil {
		e.Bus.Push(feedback.CombatInfo, fmt.Sprintf("%s picks up %s.", monsterName(inst), displayItemName(e.Catalog, picked.ItemID)), nil)
	}
	return true
}

// Convert has inst spend the first bag item with a nonzero ion value,
// crediting its ions to the monster's ledger.
func (e *MonsterExternal) Convert(inst *monster.Instance) bool {
	for i, iid := range inst.Bag {
		row, ok := e.lookup(iid)
		if !ok {
			continue
		}
		tpl := e.Catalog.Get(row.ItemID)
		if tpl == nil || tpl.ConvertIons <= 0 {
			continue
		}
		if err := e.Items.Consume(iid); err != nil {
			continue
		}
		inst.Bag = append(append([]string{}, inst.Bag[:i]...), inst.Bag[i+1:]...)
		inst.AIState.Ledger.Ions += tpl.ConvertIons
		if e.Bus != nil {
			e.Bus.Push(feedback.CombatInfo, fmt.Sprintf("%s converts %s for %d ions.", monsterName(inst), displayItemName(e.Catalog, row.ItemID), tpl.ConvertIons), nil)
		}
		return true
	}
	return false
}

// Move steps inst one tile in a random passable cardinal direction.
func (e *MonsterExternal) Move(inst *monster.Instance) bool {
	dirs := []world.Direction{world.North, world.South, world.East, world.West}
	for _, i := range e.RNG.Perm(len(dirs)) {
		dir := dirs[i]
		decision := world.Resolve(e.Grid, e.Dynamics, inst.Pos.Year, inst.Pos.X, inst.Pos.Y, dir)
		if !decision.Passable {
			continue
		}
		dx, dy := world.Offset(dir)
		inst.Pos.X += dx
		inst.Pos.Y += dy
		return true
	}
	return false
}

func monsterName(inst *monster.Instance) string {
	if inst.Name != "" {
		return inst.Name
	}
	return inst.MonsterID
}

func displayItemName(catalog *items.Catalog, itemID string) string {
	if tpl := catalog.Get(itemID); tpl != nil && tpl.Name != "" {
		return tpl.Name
	}
	return itemID
}

var _ ai.External = (*MonsterExternal)(nil)

// TickMonstersAt runs ai.Tick for every monster in monsters against the
// player described by in, persisting each monster's mutated state back
// through registry.
func TickMonstersAt(monsters []*monster.Instance, catalog *monster.Catalog, deps ai.Deps, in ai.Input, ext ai.External, registry *monster.Registry) []ai.Result {
	results := make([]ai.Result, 0, len(monsters))
	for _, inst := range monsters {
		tpl := catalog.Get(inst.MonsterID)
		result := ai.Tick(inst, tpl, deps, in, ext)
		results = append(results, result)
		_ = registry.Save(inst)
	}
	return results
}
