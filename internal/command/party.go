package command

import (
	"fmt"
	"strings"

	"github.com/vindeiatrix/mutantsgo/internal/feedback"
	"github.com/vindeiatrix/mutantsgo/internal/player"
)

// HandleParty lists every canonical class's profile, marking the active
// one — ported from commands/party.py's party_list.
func HandleParty(ctx *Context, arg string) error {
	classes := player.CanonicalClasses()
	lines := make([]string, 0, len(classes))
	for i, c := range classes {
		p := ctx.State.Profiles[c]
		if p == nil {
			continue
		}
		marker := " "
		if c == ctx.State.Active {
			marker = "*"
		}
		lines = append(lines, fmt.Sprintf("%s %d. %s [%s]  id=%s", marker, i+1, p.DisplayName, p.Class, p.ID))
	}
	if len(lines) == 0 {
		ctx.Bus.Push(feedback.SystemInfo, "No players found.", nil)
		return nil
	}
	ctx.Bus.Push(feedback.SystemInfo, strings.Join(lines, " "), nil)
	return nil
}
