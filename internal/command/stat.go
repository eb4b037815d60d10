package command

import (
	"fmt"

	"github.com/vindeiatrix/mutantsgo/internal/feedback"
)

// HandleStat reports the active profile's full status block — ported
// line-for-line from commands/statistics.py's statistics_cmd, including
// the trailing inv listing and the resolved ready-target's live name.
func HandleStat(ctx *Context, arg string) error {
	p := ctx.State.ActiveProfile()
	if p == nil {
		return fmt.Errorf("command: no active class set")
	}

	readyName := "NO ONE"
	if p.ReadyTarget != "" {
		target, err := ctx.Monsters.Get(p.ReadyTarget)
		if err != nil || target.HP.Current <= 0 {
			p.ReadyTarget = ""
		} else {
			readyName = monsterDisplayName(target)
		}
	}

	armourStatus := "None"
	ac := 0
	if p.Equipment.Armour != "" {
		armourStatus = displayHeldItem(ctx, p.Equipment.Armour)
		if outcome, err := ctx.Items.Resolve(p.Equipment.Armour); err == nil && outcome.Template != nil {
			ac = outcome.Template.ArmourClass
		}
	}

	lines := []string{
		fmt.Sprintf("Name: %s / Mutant %s", p.DisplayName, p.Class),
		fmt.Sprintf("Exhaustion : %d", p.Currencies.Exhaustion),
		fmt.Sprintf("Str: %3d    Int: %3d   Wis: %3d", p.Stats.Str, p.Stats.Int, p.Stats.Wis),
		fmt.Sprintf("Dex: %3d    Con: %3d   Cha: %3d", p.Stats.Dex, p.Stats.Con, p.Stats.Cha),
		fmt.Sprintf("Hit Points  : %d / %d", p.HP.Current, p.HP.Max),
		fmt.Sprintf("Exp. Points : %-6d Level: %d", p.Currencies.Exp, p.Currencies.Level),
		fmt.Sprintf("Riblets     : %d", p.Currencies.Riblets),
		fmt.Sprintf("Ions        : %d", p.Currencies.Ions),
		fmt.Sprintf("Wearing Armor : %s  Armour Class: %d", armourStatus, ac),
		fmt.Sprintf("Ready to Combat: %s", readyName),
		"Readied Spell  : No spell memorized.",
		fmt.Sprintf("Year A.D. : %d", p.Pos.Year),
		"",
	}
	for _, line := range lines {
		ctx.Bus.Push(feedback.SystemOK, line, nil)
	}

	return HandleInv(ctx, "")
}
