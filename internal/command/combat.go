package command

import (
	"fmt"
	"strings"

	"github.com/vindeiatrix/mutantsgo/internal/combat"
	"github.com/vindeiatrix/mutantsgo/internal/economy"
	"github.com/vindeiatrix/mutantsgo/internal/feedback"
	"github.com/vindeiatrix/mutantsgo/internal/items"
	"github.com/vindeiatrix/mutantsgo/internal/monster"
	"github.com/vindeiatrix/mutantsgo/internal/player"
)

// clearTokens are the argument spellings combat_cmd treats as "stand
// down" rather than a monster name to match.
var clearTokens = map[string]bool{"none": true, "clear": true, "cancel": true}

// HandleCombat sets or clears the active profile's ready-target —
// ported from commands/combat.py's combat_cmd: a clear token stands the
// player down, otherwise the first living monster on the player's own
// tile whose name or id starts with the token becomes the ready target.
func HandleCombat(ctx *Context, arg string) error {
	p := ctx.State.ActiveProfile()
	if p == nil {
		return fmt.Errorf("command: no active class set")
	}
	token := strings.TrimSpace(arg)
	if token == "" {
		ctx.Bus.Push(feedback.SystemWarn, "Usage: combat <monster>", nil)
		return nil
	}
	if clearTokens[strings.ToLower(token)] {
		cleared := p.ReadyTarget != ""
		p.ReadyTarget = ""
		if cleared {
			ctx.Bus.Push(feedback.SystemOK, "You lower your guard.", nil)
		} else {
			ctx.Bus.Push(feedback.SystemOK, "You are not ready to fight anyone.", nil)
		}
		return nil
	}

	monsters, err := ctx.Monsters.ListAt(p.Pos.Year, p.Pos.X, p.Pos.Y)
	if err != nil {
		return err
	}
	living := make([]*monster.Instance, 0, len(monsters))
	for _, m := range monsters {
		if m.HP.Current > 0 {
			living = append(living, m)
		}
	}
	if len(living) == 0 {
		p.ReadyTarget = ""
		ctx.Bus.Push(feedback.SystemWarn, "No living monsters here to fight.", nil)
		return nil
	}
	target := matchMonster(living, token)
	if target == nil {
		ctx.Bus.Push(feedback.SystemWarn, fmt.Sprintf("No monster here matches %q.", token), nil)
		return nil
	}
	p.ReadyTarget = target.InstanceID
	ctx.Bus.Push(feedback.CombatReady, fmt.Sprintf("You ready yourself against %s.", monsterDisplayName(target)), nil)
	return nil
}

func matchMonster(monsters []*monster.Instance, token string) *monster.Instance {
	norm := strings.ToLower(token)
	for _, m := range monsters {
		if strings.HasPrefix(strings.ToLower(m.InstanceID), norm) ||
			strings.HasPrefix(strings.ToLower(monsterDisplayName(m)), norm) {
			return m
		}
	}
	return nil
}

func monsterDisplayName(m *monster.Instance) string {
	if m.Name != "" {
		return m.Name
	}
	return m.MonsterID
}

// HandleStrike resolves one attack from the active profile against its
// ready target, mirroring turn.MonsterExternal.Attack's pipeline with
// attacker/defender roles reversed.
func HandleStrike(ctx *Context, arg string) error {
	p := ctx.State.ActiveProfile()
	if p == nil {
		return fmt.Errorf("command: no active class set")
	}
	if p.ReadyTarget == "" {
		ctx.Bus.Push(feedback.SystemWarn, "You aren't ready to attack anyone.", nil)
		return nil
	}
	target, err := ctx.Monsters.Get(p.ReadyTarget)
	if err != nil {
		p.ReadyTarget = ""
		ctx.Bus.Push(feedback.SystemWarn, "Your target is gone.", nil)
		return nil
	}
	if target.Pos.Year != p.Pos.Year || target.Pos.X != p.Pos.X || target.Pos.Y != p.Pos.Y {
		ctx.Bus.Push(feedback.SystemWarn, fmt.Sprintf("%s isn't here.", monsterDisplayName(target)), nil)
		return nil
	}

	source, basePower, enchant := resolveAttackerWeapon(ctx, p)
	strBonus := p.Stats.Str / 10
	dexBonus := target.Stats.Dex / 10
	armourAC := monsterArmourAC(ctx, target)

	result := combat.ResolveAttack(combat.AttackInput{
		Source:           source,
		BasePower:        basePower,
		EnchantLevel:     enchant,
		AttackerStrBonus: strBonus,
		DefenderDexBonus: dexBonus,
		DefenderArmourAC: armourAC,
	}, combat.GoMitigator{})

	target.HP.Current -= result.Damage
	target.HP.Clamp()
	killed := target.HP.Current <= 0

	ctx.Bus.Push(feedback.CombatStrike, fmt.Sprintf("You strike %s for %d damage.", monsterDisplayName(target), result.Damage), feedback.Meta{
		"monster": target.MonsterID,
		"damage":  result.Damage,
		"killed":  killed,
	})

	if source != combat.SourceInnate && p.Equipment.Wielded != "" && result.Damage > 0 {
		_, _ = combat.ApplyStrikeWear(ctx.Items, p.Equipment.Wielded)
	}

	if killed {
		bag, armour := bagLootEntries(ctx, target)
		for _, iid := range target.Bag {
			_ = ctx.Items.Consume(iid)
		}
		if target.ArmourSlot != "" {
			_ = ctx.Items.Consume(target.ArmourSlot)
		}
		combat.DropMonsterLoot(ctx.Items, ctx.ItemCatalog, items.Position{Year: target.Pos.Year, X: target.Pos.X, Y: target.Pos.Y}, bag, armour, ctx.Bus)
		if err := ctx.Monsters.Kill(target.InstanceID); err != nil {
			return err
		}
		p.ReadyTarget = ""
		creditKillRewards(ctx, p, target)
		ctx.Bus.Push(feedback.CombatKill, fmt.Sprintf("You have killed %s!", monsterDisplayName(target)), nil)
		return nil
	}
	return ctx.Monsters.Save(target)
}

// creditKillRewards credits the killer's active class only (never a
// party or other class's wallet) with the dead monster's accumulated
// ledger and a level-scaled exp award, per spec.md §8's "rewards credit
// only the active class".
func creditKillRewards(ctx *Context, p *player.Profile, target *monster.Instance) {
	p.Currencies.Ions += target.AIState.Ledger.Ions
	p.Currencies.Riblets += target.AIState.Ledger.Riblets
	exp := target.Level * 10
	if ctx.Cfg != nil && ctx.Cfg.Rates.ExpRate > 0 {
		exp = int(float64(exp) * ctx.Cfg.Rates.ExpRate)
	}
	p.Currencies.Exp += exp
}

// resolveAttackerWeapon looks up the active profile's wielded item and
// returns its attack source/base power/enchant level, falling back to an
// unarmed SourceInnate strike (base power 0, floored by ApplyFloor) when
// nothing is wielded or the iid can't be resolved.
func resolveAttackerWeapon(ctx *Context, p *player.Profile) (combat.Source, int, int) {
	if p.Equipment.Wielded == "" {
		return combat.SourceInnate, 0, 0
	}
	outcome, err := ctx.Items.Resolve(p.Equipment.Wielded)
	if err != nil || outcome.Template == nil {
		return combat.SourceInnate, 0, 0
	}
	tpl := outcome.Template
	enchant := 0
	if outcome.Instance != nil {
		enchant = outcome.Instance.Enchant
	}
	if tpl.Ranged {
		return combat.SourceBolt, tpl.BasePowerB, enchant
	}
	return combat.SourceMelee, tpl.BasePowerM, enchant
}

// bagLootEntries converts a killed monster's held instances into the
// LootEntry shape DropMonsterLoot mints fresh, preserving each item's
// template and enchant level.
func bagLootEntries(ctx *Context, m *monster.Instance) ([]combat.LootEntry, *combat.LootEntry) {
	bag := make([]combat.LootEntry, 0, len(m.Bag))
	for _, iid := range m.Bag {
		outcome, err := ctx.Items.Resolve(iid)
		if err != nil || outcome.Instance == nil {
			continue
		}
		bag = append(bag, combat.LootEntry{TemplateID: outcome.Instance.ItemID, Enchant: outcome.Instance.Enchant})
	}
	var armour *combat.LootEntry
	if m.ArmourSlot != "" {
		if outcome, err := ctx.Items.Resolve(m.ArmourSlot); err == nil && outcome.Instance != nil {
			armour = &combat.LootEntry{TemplateID: outcome.Instance.ItemID, Enchant: outcome.Instance.Enchant}
		}
	}
	return bag, armour
}

func monsterArmourAC(ctx *Context, m *monster.Instance) int {
	if m.ArmourSlot == "" {
		return 0
	}
	outcome, err := ctx.Items.Resolve(m.ArmourSlot)
	if err != nil || outcome.Template == nil {
		return 0
	}
	return outcome.Template.ArmourClass
}

// HandleHeal spends ions to restore HP on the active profile, per
// economy.TryHeal.
func HandleHeal(ctx *Context, arg string) error {
	p := ctx.State.ActiveProfile()
	if p == nil {
		return fmt.Errorf("command: no active class set")
	}
	outcome := economy.TryHeal(p, ctx.Cfg.Combat)
	switch outcome.Reason {
	case "no_max_hp":
		ctx.Bus.Push(feedback.SystemWarn, "You have no health to heal.", nil)
	case "full_health":
		ctx.Bus.Push(feedback.SystemWarn, "You are already at full health.", nil)
	case "insufficient_ions":
		ctx.Bus.Push(feedback.SystemWarn, fmt.Sprintf("Healing costs %d ions; you have %d.", outcome.Cost, outcome.Remaining), nil)
	default:
		ctx.Bus.Push(feedback.ItemOK, fmt.Sprintf("You heal %d HP for %d ions.", outcome.Healed, outcome.Cost), nil)
	}
	return nil
}

// HandleConvert spends the first held item with a nonzero ion value,
// crediting the active profile's ledger — the player-side mirror of
// turn.MonsterExternal.Convert.
func HandleConvert(ctx *Context, arg string) error {
	p := ctx.State.ActiveProfile()
	if p == nil {
		return fmt.Errorf("command: no active class set")
	}
	for _, iid := range p.Inventory {
		outcome, err := ctx.Items.Resolve(iid)
		if err != nil || outcome.Template == nil || outcome.Template.ConvertIons <= 0 {
			continue
		}
		if err := ctx.Items.Consume(iid); err != nil {
			return err
		}
		p.Inventory = removeFromSlice(p.Inventory, iid)
		p.Currencies.Ions += outcome.Template.ConvertIons
		ctx.Bus.Push(feedback.ItemOK, fmt.Sprintf("You convert %s for %d ions.", outcome.Template.Name, outcome.Template.ConvertIons), nil)
		return nil
	}
	ctx.Bus.Push(feedback.SystemWarn, "You have nothing worth converting.", nil)
	return nil
}

// fixCostPerPoint is the ion cost to repair one point of a wielded
// weapon's condition — this command has no original-source counterpart,
// so the rate mirrors heal's "pay ions for a restored resource" shape
// rather than any ported constant.
const fixCostPerPoint = 10

// HandleFix restores the active profile's wielded weapon to full
// condition for an ion cost proportional to the damage repaired.
func HandleFix(ctx *Context, arg string) error {
	p := ctx.State.ActiveProfile()
	if p == nil {
		return fmt.Errorf("command: no active class set")
	}
	if p.Equipment.Wielded == "" {
		ctx.Bus.Push(feedback.SystemWarn, "You aren't wielding anything.", nil)
		return nil
	}
	outcome, err := ctx.Items.Resolve(p.Equipment.Wielded)
	if err != nil || outcome.Instance == nil {
		return err
	}
	missing := 100 - outcome.Instance.Condition
	if missing <= 0 {
		ctx.Bus.Push(feedback.SystemWarn, "It's already in perfect condition.", nil)
		return nil
	}
	cost := missing * fixCostPerPoint
	if p.Currencies.Ions < cost {
		ctx.Bus.Push(feedback.SystemWarn, fmt.Sprintf("Fixing it costs %d ions; you have %d.", cost, p.Currencies.Ions), nil)
		return nil
	}
	p.Currencies.Ions -= cost
	if err := ctx.Items.Repair(p.Equipment.Wielded); err != nil {
		return err
	}
	ctx.Bus.Push(feedback.ItemOK, fmt.Sprintf("You repair it for %d ions.", cost), nil)
	return nil
}
