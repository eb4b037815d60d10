package command

import (
	"fmt"

	"github.com/vindeiatrix/mutantsgo/internal/feedback"
)

// HandleMenu returns to class selection, clearing the active profile's
// ready-target and every monster's target lock on that player — ported
// from commands/classmenu.py's open_menu, which calls pstate.clear_target
// before switching the UI mode.
func HandleMenu(ctx *Context, arg string) error {
	p := ctx.State.ActiveProfile()
	if p == nil {
		return fmt.Errorf("command: no active class set")
	}
	p.ReadyTarget = ""
	if err := ctx.Monsters.ClearTargetsFor(p.ID); err != nil {
		return err
	}
	ctx.Bus.Push(feedback.SystemOK, "Returned to class selection.", nil)
	return nil
}
