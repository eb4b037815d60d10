package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vindeiatrix/mutantsgo/internal/feedback"
	"github.com/vindeiatrix/mutantsgo/internal/trace"
	"github.com/vindeiatrix/mutantsgo/internal/world"
)

// HandleLogs implements the "logs" family of debug subcommands, ported
// from commands/logs.py: trace flag toggling and an edge-resolver
// symmetry self-check. log_cmd's file-tailing subcommands have no
// counterpart here — this process has no append-only log sink to tail,
// only the structured zap logger — so "tail"/"clear" report that
// plainly instead of pretending to page a file that doesn't exist.
func HandleLogs(ctx *Context, arg string) error {
	parts := strings.Fields(arg)
	if len(parts) >= 3 && parts[0] == "trace" {
		name, onToken := parts[1], parts[2]
		if (name != "move" && name != "ui") || (onToken != "on" && onToken != "off") {
			ctx.Bus.Push(feedback.SystemOK, "Usage: logs trace <move|ui> <on|off>", nil)
			return nil
		}
		on := onToken == "on"
		trace.SetFlag(name, on)
		state := "disabled"
		if on {
			state = "enabled"
		}
		ctx.Bus.Push(feedback.SystemOK, fmt.Sprintf("Trace %s %s.", name, state), nil)
		return nil
	}
	if len(parts) >= 2 && parts[0] == "verify" && parts[1] == "edges" {
		count := 64
		if len(parts) >= 3 {
			if n, err := strconv.Atoi(parts[2]); err == nil && n > 0 {
				count = n
			}
		}
		return verifyEdges(ctx, count)
	}
	if len(parts) == 0 || parts[0] == "tail" || parts[0] == "clear" {
		ctx.Bus.Push(feedback.SystemWarn, "Log tailing isn't available in this build; check the configured log file directly.", nil)
		return nil
	}
	ctx.Bus.Push(feedback.SystemWarn, "Log tailing isn't available in this build; check the configured log file directly.", nil)
	return nil
}

// verifyEdges samples tiles around the active profile and confirms the
// edge resolver agrees with itself from both sides, ported from
// logs.py's _verify_edges.
func verifyEdges(ctx *Context, count int) error {
	p := ctx.State.ActiveProfile()
	if p == nil {
		return fmt.Errorf("command: no active class set")
	}
	year := p.Pos.Year
	dirs := []world.Direction{world.North, world.South, world.East, world.West}

	type coord struct{ x, y int }
	coords := []coord{{p.Pos.X, p.Pos.Y}}
	for dx := -count; dx <= count; dx++ {
		coords = append(coords, coord{p.Pos.X + dx, p.Pos.Y})
	}
	if len(coords) > count {
		coords = coords[:count]
	}

	total, bad := 0, 0
	for _, c := range coords {
		for _, d := range dirs {
			total++
			cur := world.Resolve(ctx.Grid, ctx.Dynamics, year, c.x, c.y, d)
			dx, dy := world.Offset(d)
			opp := oppositeDir(d)
			nbr := world.Resolve(ctx.Grid, ctx.Dynamics, year, c.x+dx, c.y+dy, opp)
			if cur.Passable != nbr.Passable {
				bad++
			}
		}
	}
	if bad == 0 {
		ctx.Bus.Push(feedback.SystemOK, fmt.Sprintf("Edge verify OK: %d checks, 0 mismatches.", total), nil)
	} else {
		ctx.Bus.Push(feedback.SystemWarn, fmt.Sprintf("Edge verify found %d/%d mismatches. See logs for details.", bad, total), nil)
	}
	return nil
}

func oppositeDir(d world.Direction) world.Direction {
	switch d {
	case world.North:
		return world.South
	case world.South:
		return world.North
	case world.East:
		return world.West
	default:
		return world.East
	}
}
