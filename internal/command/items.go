package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vindeiatrix/mutantsgo/internal/feedback"
	"github.com/vindeiatrix/mutantsgo/internal/items"
	"github.com/vindeiatrix/mutantsgo/internal/world"
)

func removeFromSlice(list []string, iid string) []string {
	out := list[:0:0]
	for _, v := range list {
		if v == iid {
			continue
		}
		out = append(out, v)
	}
	return out
}

// HandleGet picks the named item up from the active profile's tile.
func HandleGet(ctx *Context, arg string) error {
	p := ctx.State.ActiveProfile()
	if p == nil {
		return fmt.Errorf("command: no active class set")
	}
	token := strings.TrimSpace(arg)
	if token == "" {
		ctx.Bus.Push(feedback.SystemWarn, "Get what?", nil)
		return nil
	}

	ground, err := ctx.Items.ListAt(items.Position{Year: p.Pos.Year, X: p.Pos.X, Y: p.Pos.Y})
	if err != nil {
		return err
	}
	match := matchGroundItem(ground, ctx.ItemCatalog, token)
	if match == "" {
		ctx.Bus.Push(feedback.SystemWarn, fmt.Sprintf("There is no %s here.", token), nil)
		return nil
	}

	picked, err := ctx.Items.PickUp(match, p.ID)
	if err != nil {
		return err
	}
	p.Inventory = append(p.Inventory, picked.IID)
	ctx.Bus.Push(feedback.ItemOK, fmt.Sprintf("You pick up %s.", displayItemName(ctx.ItemCatalog, picked.ItemID)), nil)
	return nil
}

func matchGroundItem(ground []items.Instance, catalog *items.Catalog, token string) string {
	norm := strings.ToLower(strings.TrimSpace(token))
	for _, inst := range ground {
		if strings.EqualFold(inst.IID, token) {
			return inst.IID
		}
	}
	for _, inst := range ground {
		if strings.Contains(strings.ToLower(displayItemName(catalog, inst.ItemID)), norm) {
			return inst.IID
		}
	}
	return ""
}

// HandleDrop releases the named held item onto the active profile's
// tile, subject to ground-capacity vaporization.
func HandleDrop(ctx *Context, arg string) error {
	p := ctx.State.ActiveProfile()
	if p == nil {
		return fmt.Errorf("command: no active class set")
	}
	iid, ok := matchHeldItem(p.Inventory, ctx.ItemCatalog, arg)
	if !ok {
		ctx.Bus.Push(feedback.SystemWarn, fmt.Sprintf("You don't have %q.", arg), nil)
		return nil
	}

	_, _, err := ctx.Items.Drop(iid, items.Position{Year: p.Pos.Year, X: p.Pos.X, Y: p.Pos.Y}, ctx.Bus)
	if err != nil {
		return err
	}
	p.Inventory = removeFromSlice(p.Inventory, iid)
	if p.Equipment.Wielded == iid {
		p.Equipment.Wielded = ""
	}
	if p.Equipment.Armour == iid {
		p.Equipment.Armour = ""
	}
	ctx.Bus.Push(feedback.ItemOK, "You drop it.", nil)
	return nil
}

func matchHeldItem(held []string, catalog *items.Catalog, token string) (string, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	for _, iid := range held {
		if strings.EqualFold(iid, token) {
			return iid, true
		}
	}
	norm := strings.ToLower(token)
	for _, iid := range held {
		if strings.Contains(strings.ToLower(displayItemName(catalog, iidTemplateID(iid))), norm) {
			return iid, true
		}
	}
	return "", false
}

// iidTemplateID strips the "#<hex>" minted suffix from an iid so a held
// item can be matched by its template name even though the bag only
// stores instance ids — the display lookup still needs the registry for
// an exact row, but the common "type part of the name" case works off
// the iid's own template prefix.
func iidTemplateID(iid string) string {
	if i := strings.LastIndex(iid, "#"); i >= 0 {
		return iid[:i]
	}
	return iid
}

// HandleWield equips the named held item as the active profile's weapon.
func HandleWield(ctx *Context, arg string) error {
	p := ctx.State.ActiveProfile()
	if p == nil {
		return fmt.Errorf("command: no active class set")
	}
	iid, ok := matchHeldItem(p.Inventory, ctx.ItemCatalog, arg)
	if !ok {
		ctx.Bus.Push(feedback.SystemWarn, fmt.Sprintf("You don't have %q.", arg), nil)
		return nil
	}
	outcome, err := ctx.Items.Resolve(iid)
	if err != nil {
		return err
	}
	if outcome.Template == nil || !outcome.Template.IsWeapon() {
		ctx.Bus.Push(feedback.SystemWarn, "You can't wield that.", nil)
		return nil
	}
	p.Equipment.Wielded = iid
	p.Inventory = removeFromSlice(p.Inventory, iid)
	ctx.Bus.Push(feedback.ItemOK, fmt.Sprintf("You wield %s.", displayItemName(ctx.ItemCatalog, outcome.Template.ID)), nil)
	return nil
}

// HandleWear equips the named held item as the active profile's armour.
func HandleWear(ctx *Context, arg string) error {
	p := ctx.State.ActiveProfile()
	if p == nil {
		return fmt.Errorf("command: no active class set")
	}
	iid, ok := matchHeldItem(p.Inventory, ctx.ItemCatalog, arg)
	if !ok {
		ctx.Bus.Push(feedback.SystemWarn, fmt.Sprintf("You don't have %q.", arg), nil)
		return nil
	}
	outcome, err := ctx.Items.Resolve(iid)
	if err != nil {
		return err
	}
	if outcome.Template == nil || outcome.Template.ArmourClass <= 0 {
		ctx.Bus.Push(feedback.SystemWarn, "You can't wear that.", nil)
		return nil
	}
	p.Equipment.Armour = iid
	p.Inventory = removeFromSlice(p.Inventory, iid)
	ctx.Bus.Push(feedback.ItemOK, fmt.Sprintf("You put on %s.", displayItemName(ctx.ItemCatalog, outcome.Template.ID)), nil)
	return nil
}

// HandleRemove unequips the named item, returning it to the bag.
func HandleRemove(ctx *Context, arg string) error {
	p := ctx.State.ActiveProfile()
	if p == nil {
		return fmt.Errorf("command: no active class set")
	}
	token := strings.TrimSpace(arg)
	var iid string
	switch {
	case p.Equipment.Wielded != "" && matchesEquipped(p.Equipment.Wielded, ctx.ItemCatalog, token):
		iid = p.Equipment.Wielded
		p.Equipment.Wielded = ""
	case p.Equipment.Armour != "" && matchesEquipped(p.Equipment.Armour, ctx.ItemCatalog, token):
		iid = p.Equipment.Armour
		p.Equipment.Armour = ""
	default:
		ctx.Bus.Push(feedback.SystemWarn, "You aren't using that.", nil)
		return nil
	}
	p.Inventory = append(p.Inventory, iid)
	ctx.Bus.Push(feedback.ItemOK, "You remove it.", nil)
	return nil
}

func matchesEquipped(iid string, catalog *items.Catalog, token string) bool {
	if token == "" {
		return true
	}
	if strings.EqualFold(iid, token) {
		return true
	}
	return strings.Contains(strings.ToLower(displayItemName(catalog, iidTemplateID(iid))), strings.ToLower(token))
}

// HandleThrow discards the named held item onto the tile in the given
// direction instead of the active profile's own tile.
func HandleThrow(ctx *Context, arg string) error {
	p := ctx.State.ActiveProfile()
	if p == nil {
		return fmt.Errorf("command: no active class set")
	}
	fields := strings.Fields(arg)
	if len(fields) < 2 {
		ctx.Bus.Push(feedback.SystemWarn, "Throw what, in which direction?", nil)
		return nil
	}
	dir, ok := resolveDirectionToken(fields[0])
	if !ok {
		ctx.Bus.Push(feedback.SystemWarn, fmt.Sprintf("%q isn't a direction.", fields[0]), nil)
		return nil
	}
	rest := strings.Join(fields[1:], " ")
	iid, ok := matchHeldItem(p.Inventory, ctx.ItemCatalog, rest)
	if !ok {
		ctx.Bus.Push(feedback.SystemWarn, fmt.Sprintf("You don't have %q.", rest), nil)
		return nil
	}

	decision := world.Resolve(ctx.Grid, ctx.Dynamics, p.Pos.Year, p.Pos.X, p.Pos.Y, dir)
	if !decision.Passable {
		ctx.Bus.Push(feedback.MoveBlocked, decision.Descriptor, nil)
		return nil
	}
	dx, dy := world.Offset(dir)
	target := items.Position{Year: p.Pos.Year, X: p.Pos.X + dx, Y: p.Pos.Y + dy}

	_, _, err := ctx.Items.Drop(iid, target, ctx.Bus)
	if err != nil {
		return err
	}
	p.Inventory = removeFromSlice(p.Inventory, iid)
	if p.Equipment.Wielded == iid {
		p.Equipment.Wielded = ""
	}
	ctx.Bus.Push(feedback.ItemOK, fmt.Sprintf("You throw it %s.", dir), nil)
	return nil
}

// HandlePoint reports what lies in the given direction without moving
// there — "point <dir> <item>" per the original's sighting command,
// narrowed here to announce whether the named item is visible on the
// neighboring tile.
func HandlePoint(ctx *Context, arg string) error {
	p := ctx.State.ActiveProfile()
	if p == nil {
		return fmt.Errorf("command: no active class set")
	}
	fields := strings.Fields(arg)
	if len(fields) == 0 {
		ctx.Bus.Push(feedback.SystemWarn, "Point which way?", nil)
		return nil
	}
	dir, ok := resolveDirectionToken(fields[0])
	if !ok {
		ctx.Bus.Push(feedback.SystemWarn, fmt.Sprintf("%q isn't a direction.", fields[0]), nil)
		return nil
	}
	decision := world.Resolve(ctx.Grid, ctx.Dynamics, p.Pos.Year, p.Pos.X, p.Pos.Y, dir)
	if !decision.Passable {
		ctx.Bus.Push(feedback.SystemOK, decision.Descriptor, nil)
		return nil
	}

	dx, dy := world.Offset(dir)
	ground, err := ctx.Items.ListAt(items.Position{Year: p.Pos.Year, X: p.Pos.X + dx, Y: p.Pos.Y + dy})
	if err != nil {
		return err
	}
	if len(fields) > 1 {
		token := strings.Join(fields[1:], " ")
		if matchGroundItem(ground, ctx.ItemCatalog, token) != "" {
			ctx.Bus.Push(feedback.SystemOK, fmt.Sprintf("Yes, %s is there.", token), nil)
		} else {
			ctx.Bus.Push(feedback.SystemOK, fmt.Sprintf("No %s there.", token), nil)
		}
		return nil
	}
	ctx.Bus.Push(feedback.SystemOK, fmt.Sprintf("%d item(s) lie to the %s.", len(ground), dir), nil)
	return nil
}

// HandleAdd mints n copies (default 1) of the named template onto the
// active profile's tile — the original's unprivileged "add" spawn
// command, bounded to Spawnable templates only.
func HandleAdd(ctx *Context, arg string) error {
	return mintOnto(ctx, arg, true)
}

// HandleDebugAdd mints n copies of any template, including
// non-Spawnable ones, straight into the active profile's bag.
func HandleDebugAdd(ctx *Context, arg string) error {
	fields := strings.Fields(arg)
	if len(fields) == 0 {
		ctx.Bus.Push(feedback.SystemWarn, "debug add <item> [n]", nil)
		return nil
	}
	p := ctx.State.ActiveProfile()
	if p == nil {
		return fmt.Errorf("command: no active class set")
	}
	res := ctx.ItemCatalog.Resolve(fields[0])
	if res.Template == nil {
		ctx.Bus.Push(feedback.SystemWarn, fmt.Sprintf("No such item %q.", fields[0]), nil)
		return nil
	}
	n := parseCount(fields)
	for i := 0; i < n; i++ {
		inst, err := ctx.Items.MintHeld(res.Template.ID, p.ID, "debug_add", 0)
		if err != nil {
			return err
		}
		p.Inventory = append(p.Inventory, inst.IID)
	}
	ctx.Bus.Push(feedback.ItemOK, fmt.Sprintf("Added %d x %s.", n, res.Template.Name), nil)
	return nil
}

func mintOnto(ctx *Context, arg string, spawnableOnly bool) error {
	fields := strings.Fields(arg)
	if len(fields) == 0 {
		ctx.Bus.Push(feedback.SystemWarn, "Add what?", nil)
		return nil
	}
	p := ctx.State.ActiveProfile()
	if p == nil {
		return fmt.Errorf("command: no active class set")
	}
	res := ctx.ItemCatalog.Resolve(fields[0])
	if res.Template == nil {
		ctx.Bus.Push(feedback.SystemWarn, fmt.Sprintf("No such item %q.", fields[0]), nil)
		return nil
	}
	if spawnableOnly && !res.Template.Spawnable {
		ctx.Bus.Push(feedback.SystemWarn, fmt.Sprintf("%s can't be spawned.", res.Template.Name), nil)
		return nil
	}
	n := parseCount(fields)
	pos := items.Position{Year: p.Pos.Year, X: p.Pos.X, Y: p.Pos.Y}
	for i := 0; i < n; i++ {
		if _, err := ctx.Items.Mint(res.Template.ID, pos, "debug_add", 0); err != nil {
			return err
		}
	}
	ctx.Bus.Push(feedback.ItemOK, fmt.Sprintf("%d x %s appears.", n, res.Template.Name), nil)
	return nil
}

func parseCount(fields []string) int {
	if len(fields) < 2 {
		return 1
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n < 1 {
		return 1
	}
	return n
}
