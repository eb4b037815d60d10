package command

import (
	"fmt"
	"strings"

	"github.com/vindeiatrix/mutantsgo/internal/feedback"
)

// HandleInv lists the active profile's bag and equipped items.
func HandleInv(ctx *Context, arg string) error {
	p := ctx.State.ActiveProfile()
	if p == nil {
		return fmt.Errorf("command: no active class set")
	}

	var lines []string
	if len(p.Inventory) == 0 {
		lines = append(lines, "Your bag is empty.")
	} else {
		for _, iid := range p.Inventory {
			lines = append(lines, "- "+displayHeldItem(ctx, iid))
		}
	}
	if p.Equipment.Wielded != "" {
		lines = append(lines, "Wielding: "+displayHeldItem(ctx, p.Equipment.Wielded))
	}
	if p.Equipment.Armour != "" {
		lines = append(lines, "Wearing: "+displayHeldItem(ctx, p.Equipment.Armour))
	}

	ctx.Bus.Push(feedback.SystemOK, strings.Join(lines, " "), nil)
	return nil
}

func displayHeldItem(ctx *Context, iid string) string {
	outcome, err := ctx.Items.Resolve(iid)
	if err != nil || outcome.Template == nil {
		return iid
	}
	return outcome.Template.Name
}
