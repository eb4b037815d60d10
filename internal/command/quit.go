package command

import "github.com/vindeiatrix/mutantsgo/internal/feedback"

// HandleQuit sets Quit so the REPL loop persists state and exits,
// ported from commands/quit.py's quit_cmd.
func HandleQuit(ctx *Context, arg string) error {
	ctx.Bus.Push(feedback.SystemOK, "Goodbye!", nil)
	ctx.Quit = true
	return nil
}
