package command

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vindeiatrix/mutantsgo/internal/feedback"
	"github.com/vindeiatrix/mutantsgo/internal/monster"
)

// HandleMon prints a one-line debug summary of a monster instance, ported
// from commands/mon.py's mon_cmd: an exact instance-id match wins outright,
// otherwise every instance/name prefix match is collected and reported as
// ambiguous rather than picking one.
func HandleMon(ctx *Context, arg string) error {
	fields := strings.Fields(arg)
	if len(fields) > 0 {
		switch strings.ToLower(fields[0]) {
		case "debug", "info", "show":
			fields = fields[1:]
		}
	}
	if len(fields) == 0 {
		ctx.Bus.Push(feedback.SystemInfo, "Usage: mon debug <monster_id>", nil)
		return nil
	}
	token := fields[0]

	if exact, err := ctx.Monsters.Get(token); err == nil {
		ctx.Bus.Push(feedback.Debug, summarizeMonster(ctx, exact), nil)
		return nil
	}

	all, err := ctx.Monsters.All()
	if err != nil {
		return err
	}
	norm := strings.ToLower(token)
	var matches []*monster.Instance
	for _, inst := range all {
		if strings.HasPrefix(strings.ToLower(inst.InstanceID), norm) || strings.HasPrefix(strings.ToLower(monsterDisplayName(inst)), norm) {
			matches = append(matches, inst)
		}
	}
	switch len(matches) {
	case 0:
		ctx.Bus.Push(feedback.SystemWarn, fmt.Sprintf("Unknown monster '%s'.", token), nil)
	case 1:
		ctx.Bus.Push(feedback.Debug, summarizeMonster(ctx, matches[0]), nil)
	default:
		ids := make([]string, 0, len(matches))
		for _, m := range matches {
			ids = append(ids, m.InstanceID)
		}
		sort.Strings(ids)
		if len(ids) > 5 {
			ids = ids[:5]
		}
		ctx.Bus.Push(feedback.SystemWarn, fmt.Sprintf("Ambiguous monster %q (matches: %s)", token, strings.Join(ids, ", ")), nil)
	}
	return nil
}

func summarizeMonster(ctx *Context, m *monster.Instance) string {
	armour := "-"
	if m.ArmourSlot != "" {
		armour = m.ArmourSlot
	}
	wielded := "-"
	for _, iid := range m.Bag {
		outcome, err := ctx.Items.Resolve(iid)
		if err != nil || outcome.Template == nil {
			continue
		}
		if outcome.Template.IsWeapon() {
			wielded = iid
			break
		}
	}
	return fmt.Sprintf(
		"MON id=%s name=%s level=%d hp=%d/%d stats=str:%d,dex:%d,con:%d,int:%d,wis:%d,cha:%d wielded=%s armour=%s bag=%d",
		m.InstanceID, monsterDisplayName(m), m.Level, m.HP.Current, m.HP.Max,
		m.Stats.Str, m.Stats.Dex, m.Stats.Con, m.Stats.Int, m.Stats.Wis, m.Stats.Cha,
		wielded, armour, len(m.Bag),
	)
}
