package command

import (
	"fmt"
	"strings"

	"github.com/vindeiatrix/mutantsgo/internal/feedback"
)

// HandleTheme forwards a theme name to the external Themer collaborator,
// ported from commands/theme.py's theme_cmd — this process carries no UI
// palette/colors logic of its own, so there's nothing to do here beyond
// delegating and reporting the result.
func HandleTheme(ctx *Context, arg string) error {
	name := strings.TrimSpace(arg)
	if name == "" {
		ctx.Bus.Push(feedback.SystemErr, "Usage: theme <name>", nil)
		return nil
	}
	if err := ctx.Theme.SetTheme(name); err != nil {
		ctx.Bus.Push(feedback.SystemErr, fmt.Sprintf("Theme not found: %s", name), nil)
		return nil
	}
	ctx.Bus.Push(feedback.SystemOK, fmt.Sprintf("Theme switched to %s.", name), nil)
	return nil
}
