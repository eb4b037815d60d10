package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vindeiatrix/mutantsgo/internal/feedback"
	"github.com/vindeiatrix/mutantsgo/internal/player"
)

// HandleDebug is the general debug subcommand router named in spec.md's
// command list ("debug <...>"). "debug add <item> [n]" forwards to
// HandleDebugAdd's bypass-Spawnable mint; "debug spawn <monster_id>" and
// "debug tp <x> <y>" are the other two knobs a developer needs to set up
// a scenario by hand, grounded the same way additem.py's WORLD_DEBUG-gated
// helpers are: operator-only, no player-facing invariant attached.
func HandleDebug(ctx *Context, arg string) error {
	fields := strings.Fields(arg)
	if len(fields) == 0 {
		ctx.Bus.Push(feedback.SystemInfo, "Usage: debug <add|spawn|tp> ...", nil)
		return nil
	}
	sub, rest := strings.ToLower(fields[0]), strings.Join(fields[1:], " ")
	switch sub {
	case "add":
		return HandleDebugAdd(ctx, rest)
	case "spawn":
		return handleDebugSpawn(ctx, rest)
	case "tp", "teleport":
		return handleDebugTeleport(ctx, rest)
	default:
		ctx.Bus.Push(feedback.SystemWarn, fmt.Sprintf("Unknown debug subcommand %q.", sub), nil)
		return nil
	}
}

func handleDebugSpawn(ctx *Context, arg string) error {
	fields := strings.Fields(arg)
	if len(fields) == 0 {
		ctx.Bus.Push(feedback.SystemWarn, "debug spawn <monster_id>", nil)
		return nil
	}
	p := ctx.State.ActiveProfile()
	if p == nil {
		return fmt.Errorf("command: no active class set")
	}
	inst, err := ctx.Monsters.Spawn(fields[0], p.Pos)
	if err != nil {
		ctx.Bus.Push(feedback.SystemWarn, fmt.Sprintf("No such monster %q.", fields[0]), nil)
		return nil
	}
	ctx.Bus.Push(feedback.Debug, fmt.Sprintf("spawned %s (%s) at (%d,%d,%d).", inst.InstanceID, inst.MonsterID, p.Pos.Year, p.Pos.X, p.Pos.Y), nil)
	return nil
}

func handleDebugTeleport(ctx *Context, arg string) error {
	fields := strings.Fields(arg)
	if len(fields) < 2 {
		ctx.Bus.Push(feedback.SystemWarn, "debug tp <x> <y>", nil)
		return nil
	}
	x, errX := strconv.Atoi(fields[0])
	y, errY := strconv.Atoi(fields[1])
	if errX != nil || errY != nil {
		ctx.Bus.Push(feedback.SystemWarn, "Coordinates must be integers.", nil)
		return nil
	}
	p := ctx.State.ActiveProfile()
	if p == nil {
		return fmt.Errorf("command: no active class set")
	}
	if err := ctx.State.MovePosition(player.Position{Year: p.Pos.Year, X: x, Y: y}); err != nil {
		return err
	}
	ctx.Bus.Push(feedback.Debug, fmt.Sprintf("teleported to (%d,%d,%d).", p.Pos.Year, x, y), nil)
	return nil
}
