package command

import (
	"fmt"
	"strings"

	"github.com/vindeiatrix/mutantsgo/internal/feedback"
)

// HandleSwitch changes the active class, ported from commands/switch.py's
// do_switch — resolving the argument the same way the class menu's
// candidate picker does (id, display name, class name, or 1-based index).
func HandleSwitch(ctx *Context, arg string) error {
	q := strings.TrimSpace(arg)
	class, ok := ctx.State.ResolveCandidate(q)
	if !ok {
		ctx.Bus.Push(feedback.SystemErr, "Switch whom? Try: switch <id|name|class|index> or run `party`.", nil)
		return nil
	}
	if err := ctx.State.SetActive(class); err != nil {
		ctx.Bus.Push(feedback.SystemErr, err.Error(), nil)
		return nil
	}
	ctx.Bus.Push(feedback.SystemOK, fmt.Sprintf("Now controlling %s.", class), nil)
	return nil
}
