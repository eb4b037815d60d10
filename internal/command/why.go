package command

import (
	"fmt"
	"strings"

	"github.com/vindeiatrix/mutantsgo/internal/feedback"
	"github.com/vindeiatrix/mutantsgo/internal/world"
)

// HandleWhy explains the resolver's verdict for one direction out of the
// active profile's tile, ported from commands/why.py's why_cmd.
func HandleWhy(ctx *Context, arg string) error {
	p := ctx.State.ActiveProfile()
	if p == nil {
		return fmt.Errorf("command: no active class set")
	}
	fields := strings.Fields(arg)
	if len(fields) == 0 {
		ctx.Bus.Push(feedback.SystemOK, "Usage: why <n|s|e|w>", nil)
		return nil
	}
	dir, ok := resolveDirectionToken(fields[0])
	if !ok {
		ctx.Bus.Push(feedback.SystemWarn, "Usage: why <n|s|e|w>", nil)
		return nil
	}

	dec := world.Resolve(ctx.Grid, ctx.Dynamics, p.Pos.Year, p.Pos.X, p.Pos.Y, dir)
	parts := make([]string, 0, len(dec.Chain))
	for _, step := range dec.Chain {
		parts = append(parts, fmt.Sprintf("%s=%s", step.Key, step.Value))
	}
	ctx.Bus.Push(feedback.SystemOK, fmt.Sprintf("%s: %s | passable=%t | %s", dir, dec.Descriptor, dec.Passable, strings.Join(parts, "; ")), nil)
	return nil
}
