package command

import (
	"fmt"
	"strings"

	"github.com/vindeiatrix/mutantsgo/internal/feedback"
	"github.com/vindeiatrix/mutantsgo/internal/items"
	"github.com/vindeiatrix/mutantsgo/internal/world"
)

var canonicalDirNames = []string{"north", "south", "east", "west"}

var dirByName = map[string]world.Direction{
	"north": world.North,
	"south": world.South,
	"east":  world.East,
	"west":  world.West,
}

// resolveDirectionToken accepts any unique, case-insensitive prefix of
// north/south/east/west — directions.py's resolve_dir ported directly,
// which is also why "n"/"s"/"e"/"w" work despite being under the
// dispatcher's normal 3-letter floor: direction resolution runs before
// the dispatcher ever sees the token.
func resolveDirectionToken(token string) (world.Direction, bool) {
	t := strings.ToLower(strings.TrimSpace(token))
	if t == "" {
		return "", false
	}
	var match string
	count := 0
	for _, name := range canonicalDirNames {
		if strings.HasPrefix(name, t) {
			match = name
			count++
		}
	}
	if count != 1 {
		return "", false
	}
	return dirByName[match], true
}

// HandleMove steps the active profile one tile in the direction named by
// arg's first token, refusing the move (a MOVE/BLOCKED feedback line)
// when the resolved edge isn't passable.
func HandleMove(ctx *Context, arg string) error {
	fields := strings.Fields(arg)
	if len(fields) == 0 {
		ctx.Bus.Push(feedback.SystemWarn, "Go which way?", nil)
		return nil
	}
	dir, ok := resolveDirectionToken(fields[0])
	if !ok {
		ctx.Bus.Push(feedback.SystemWarn, fmt.Sprintf("%q isn't a direction.", fields[0]), nil)
		return nil
	}

	p := ctx.State.ActiveProfile()
	if p == nil {
		return fmt.Errorf("command: no active class set")
	}

	decision := world.Resolve(ctx.Grid, ctx.Dynamics, p.Pos.Year, p.Pos.X, p.Pos.Y, dir)
	if !decision.Passable {
		ctx.Bus.Push(feedback.MoveBlocked, decision.Descriptor, nil)
		return nil
	}

	dx, dy := world.Offset(dir)
	next := p.Pos
	next.X += dx
	next.Y += dy
	if err := ctx.State.MovePosition(next); err != nil {
		return err
	}
	ctx.Bus.Push(feedback.MoveOK, fmt.Sprintf("You head %s.", dir), nil)
	return nil
}

// HandleLook reports the tile's four edges and whatever monsters/items
// rest on it.
func HandleLook(ctx *Context, arg string) error {
	p := ctx.State.ActiveProfile()
	if p == nil {
		return fmt.Errorf("command: no active class set")
	}

	var lines []string
	for _, dir := range []world.Direction{world.North, world.South, world.East, world.West} {
		dec := world.Resolve(ctx.Grid, ctx.Dynamics, p.Pos.Year, p.Pos.X, p.Pos.Y, dir)
		lines = append(lines, fmt.Sprintf("%s: %s", dir, dec.Descriptor))
	}

	if ctx.Monsters != nil {
		monsters, err := ctx.Monsters.ListAt(p.Pos.Year, p.Pos.X, p.Pos.Y)
		if err == nil {
			for _, m := range monsters {
				lines = append(lines, fmt.Sprintf("A %s is here.", displayMonsterName(m.Name, m.MonsterID)))
			}
		}
	}
	if ctx.Items != nil {
		ground, err := ctx.Items.ListAt(items.Position{Year: p.Pos.Year, X: p.Pos.X, Y: p.Pos.Y})
		if err == nil {
			for _, it := range ground {
				lines = append(lines, fmt.Sprintf("There is %s here.", displayItemName(ctx.ItemCatalog, it.ItemID)))
			}
		}
	}

	ctx.Bus.Push(feedback.SystemOK, strings.Join(lines, " "), nil)
	return nil
}

func displayMonsterName(name, id string) string {
	if name != "" {
		return name
	}
	return id
}

func displayItemName(catalog *items.Catalog, itemID string) string {
	if catalog != nil {
		if tpl := catalog.Get(itemID); tpl != nil && tpl.Name != "" {
			return tpl.Name
		}
	}
	return itemID
}
