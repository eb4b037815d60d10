package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vindeiatrix/mutantsgo/internal/economy"
	"github.com/vindeiatrix/mutantsgo/internal/feedback"
)

// HandleTravel spends ions to shift the active profile to another
// installed century, ported from commands/travel.py's travel_cmd.
func HandleTravel(ctx *Context, arg string) error {
	p := ctx.State.ActiveProfile()
	if p == nil {
		return fmt.Errorf("command: no active class set")
	}
	token := strings.TrimSpace(arg)
	if token == "" {
		ctx.Bus.Push(feedback.SystemWarn, "Usage: travel <year>", nil)
		return nil
	}
	rawYear, err := strconv.Atoi(token)
	if err != nil {
		ctx.Bus.Push(feedback.SystemWarn, "Year must be an integer (e.g., 2100).", nil)
		return nil
	}

	installed := economy.InstalledCenturies(ctx.Grid)
	outcome := economy.Travel(p, rawYear, installed, ctx.Cfg.Combat.TravelCostPerCentury, ctx.RNG)
	switch outcome.Reason {
	case economy.TravelNotInstalled:
		ctx.Bus.Push(feedback.SystemWarn, "That year doesn't exist yet.", nil)
	case economy.TravelNoPortal:
		ctx.Bus.Push(feedback.SystemWarn, "You don't have enough ions to create a portal.", nil)
	case economy.TravelFree:
		ctx.Bus.Push(feedback.SystemOK, fmt.Sprintf("You're already in the %s", centuryLabel(outcome.FinalYear)), nil)
	case economy.TravelFull:
		ctx.Bus.Push(feedback.SystemOK, fmt.Sprintf("ZAAAPPPP!! You've been sent to the year %d A.D.", outcome.FinalYear), nil)
	case economy.TravelPartial:
		ctx.Bus.Push(feedback.SystemOK, "ZAAAPPPP!!!! You suddenly feel something has gone terribly wrong!", nil)
	}
	return nil
}

func centuryLabel(year int) string {
	return fmt.Sprintf("%dth Century!", year/100+1)
}
