package command

import (
	"fmt"
	"strings"

	"github.com/vindeiatrix/mutantsgo/internal/feedback"
	"github.com/vindeiatrix/mutantsgo/internal/world"
)

func gateEdge(ctx *Context, p struct{ Year, X, Y int }, dir world.Direction) (world.Edge, world.BaseKind, world.GateState) {
	tile, _ := ctx.Grid.GetTile(p.Year, p.X, p.Y)
	edge := tile.EdgeAt(dir)
	return edge, world.NormalizeBaseKind(edge.Base), world.NormalizeGateState(edge.GateState)
}

// HandleOpen opens a closed (unlocked) gate in the given direction.
func HandleOpen(ctx *Context, arg string) error { return setGateState(ctx, arg, "open") }

// HandleClose closes an open gate in the given direction.
func HandleClose(ctx *Context, arg string) error { return setGateState(ctx, arg, "close") }

func setGateState(ctx *Context, arg, action string) error {
	pr := ctx.State.ActiveProfile()
	if pr == nil {
		return fmt.Errorf("command: no active class set")
	}
	fields := strings.Fields(arg)
	if len(fields) == 0 {
		ctx.Bus.Push(feedback.SystemWarn, "Which way?", nil)
		return nil
	}
	dir, ok := resolveDirectionToken(fields[0])
	if !ok {
		ctx.Bus.Push(feedback.SystemWarn, fmt.Sprintf("%q isn't a direction.", fields[0]), nil)
		return nil
	}

	edge, kind, gs := gateEdge(ctx, struct{ Year, X, Y int }{pr.Pos.Year, pr.Pos.X, pr.Pos.Y}, dir)
	if kind != world.BaseGate {
		ctx.Bus.Push(feedback.SystemWarn, "There is no gate that way.", nil)
		return nil
	}

	switch action {
	case "open":
		if gs == world.GateLocked {
			ctx.Bus.Push(feedback.SystemWarn, "The gate is locked.", nil)
			return nil
		}
		if gs == world.GateOpen {
			ctx.Bus.Push(feedback.SystemWarn, "The gate is already open.", nil)
			return nil
		}
		edge.GateState = "0"
		ctx.Grid.SetEdge(pr.Pos.Year, pr.Pos.X, pr.Pos.Y, dir, edge)
		ctx.Bus.Push(feedback.SystemOK, fmt.Sprintf("You open the gate %s.", dir), nil)
	case "close":
		if gs != world.GateOpen {
			ctx.Bus.Push(feedback.SystemWarn, "The gate is already closed.", nil)
			return nil
		}
		edge.GateState = "1"
		ctx.Grid.SetEdge(pr.Pos.Year, pr.Pos.X, pr.Pos.Y, dir, edge)
		ctx.Bus.Push(feedback.SystemOK, fmt.Sprintf("You close the gate %s.", dir), nil)
	}
	return nil
}

// HandleLock locks a closed gate in the given direction with a held key
// item, recording that key's KeyType as the gate's lock type.
func HandleLock(ctx *Context, arg string) error { return setLockState(ctx, arg, "lock") }

// HandleUnlock unlocks a locked gate in the given direction, using a
// held key item whose KeyType matches the lock the gate was set with.
func HandleUnlock(ctx *Context, arg string) error { return setLockState(ctx, arg, "unlock") }

func setLockState(ctx *Context, arg, action string) error {
	pr := ctx.State.ActiveProfile()
	if pr == nil {
		return fmt.Errorf("command: no active class set")
	}
	fields := strings.Fields(arg)
	if len(fields) < 2 {
		ctx.Bus.Push(feedback.SystemWarn, "Which way, with what key?", nil)
		return nil
	}
	dir, ok := resolveDirectionToken(fields[0])
	if !ok {
		ctx.Bus.Push(feedback.SystemWarn, fmt.Sprintf("%q isn't a direction.", fields[0]), nil)
		return nil
	}
	keyToken := strings.Join(fields[1:], " ")
	iid, ok := matchHeldItem(pr.Inventory, ctx.ItemCatalog, keyToken)
	if !ok {
		ctx.Bus.Push(feedback.SystemWarn, fmt.Sprintf("You don't have %q.", keyToken), nil)
		return nil
	}
	outcome, err := ctx.Items.Resolve(iid)
	if err != nil {
		return err
	}
	if outcome.Template == nil || !outcome.Template.Key {
		ctx.Bus.Push(feedback.SystemWarn, "That isn't a key.", nil)
		return nil
	}

	edge, kind, gs := gateEdge(ctx, struct{ Year, X, Y int }{pr.Pos.Year, pr.Pos.X, pr.Pos.Y}, dir)
	if kind != world.BaseGate {
		ctx.Bus.Push(feedback.SystemWarn, "There is no gate that way.", nil)
		return nil
	}

	switch action {
	case "lock":
		if gs != world.GateClosed {
			ctx.Bus.Push(feedback.SystemWarn, "You can only lock a closed gate.", nil)
			return nil
		}
		edge.GateState = "2"
		edge.LockType = outcome.Template.KeyType
		ctx.Grid.SetEdge(pr.Pos.Year, pr.Pos.X, pr.Pos.Y, dir, edge)
		ctx.Bus.Push(feedback.SystemOK, fmt.Sprintf("You lock the gate %s.", dir), nil)
	case "unlock":
		if gs != world.GateLocked {
			ctx.Bus.Push(feedback.SystemWarn, "The gate isn't locked.", nil)
			return nil
		}
		if edge.LockType != "" && edge.LockType != outcome.Template.KeyType {
			ctx.Bus.Push(feedback.SystemWarn, "That key doesn't fit this lock.", nil)
			return nil
		}
		edge.GateState = "1"
		edge.LockType = ""
		ctx.Grid.SetEdge(pr.Pos.Year, pr.Pos.X, pr.Pos.Y, dir, edge)
		ctx.Bus.Push(feedback.SystemOK, fmt.Sprintf("You unlock the gate %s.", dir), nil)
	}
	return nil
}
