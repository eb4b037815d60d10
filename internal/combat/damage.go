// Package combat implements the damage engine (attacker power, AC
// mitigation, damage floors), weapon wear on a successful strike, and
// monster loot drops subject to ground capacity.
package combat

// Source identifies which attack a strike came from — melee weapon,
// ranged bolt weapon, or a monster's innate (unarmed) attack.
type Source string

const (
	SourceMelee  Source = "melee"
	SourceBolt   Source = "bolt"
	SourceInnate Source = "innate"
)

// Minimum damage floors applied after AC mitigation, per spec.md §4.3.2.
// Melee has no floor — a heavily-mitigated melee strike can deal 0.
const (
	MinBoltDamage   = 6
	MinInnateDamage = 6
)

// AttackerPower is item.base_power + 4*enchant_level + str/10, floored
// at 0.
func AttackerPower(basePower, enchantLevel, strBonus int) int {
	power := basePower + 4*enchantLevel + strBonus
	if power < 0 {
		power = 0
	}
	return power
}

// TotalAC is dex/10 + armour_class_of_equipped_armour, floored at 0.
func TotalAC(dexBonus, armourClassOfEquipped int) int {
	ac := dexBonus + armourClassOfEquipped
	if ac < 0 {
		ac = 0
	}
	return ac
}

// Mitigator applies the AC mitigation curve to a raw attack power. The
// default implementation is the Go fallback formula; internal/scripting
// supplies a Lua-backed one that falls back to this when the script
// directory is absent (see scripts/combat/mitigation.lua).
type Mitigator interface {
	Mitigate(rawPower, totalAC int) int
}

// GoMitigator is the built-in sub-linear mitigation curve: mitigation =
// round(ac * 0.32), subtracted from rawPower and clamped to a minimum of
// 0. Verified against the table in spec.md §8.5.
type GoMitigator struct{}

func (GoMitigator) Mitigate(rawPower, totalAC int) int {
	mitigation := roundHalfAwayFromZero(float64(totalAC) * 0.32)
	mitigated := rawPower - mitigation
	if mitigated < 0 {
		mitigated = 0
	}
	return mitigated
}

func roundHalfAwayFromZero(v float64) int {
	if v >= 0 {
		return int(v + 0.5)
	}
	return -int(-v + 0.5)
}

// ApplyFloor enforces the post-mitigation damage floor for source, a
// no-op for melee.
func ApplyFloor(source Source, damage int) int {
	switch source {
	case SourceBolt:
		if damage < MinBoltDamage {
			return MinBoltDamage
		}
	case SourceInnate:
		if damage < MinInnateDamage {
			return MinInnateDamage
		}
	}
	return damage
}

// AttackInput is everything resolve_attack needs, already resolved from
// the attacker's wielded item (or innate attack) and the defender's
// derived stats.
type AttackInput struct {
	Source           Source
	BasePower        int
	EnchantLevel     int
	AttackerStrBonus int
	DefenderDexBonus int
	DefenderArmourAC int
}

// Result is what resolve_attack returns.
type Result struct {
	Damage int
	Source Source
}

// ResolveAttack computes attacker power, defender AC, applies the
// mitigation curve, then the post-mitigation floor for source.
func ResolveAttack(in AttackInput, mitigator Mitigator) Result {
	if mitigator == nil {
		mitigator = GoMitigator{}
	}
	power := AttackerPower(in.BasePower, in.EnchantLevel, in.AttackerStrBonus)
	ac := TotalAC(in.DefenderDexBonus, in.DefenderArmourAC)
	mitigated := mitigator.Mitigate(power, ac)
	return Result{Damage: ApplyFloor(in.Source, mitigated), Source: in.Source}
}
