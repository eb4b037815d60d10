package command

import (
	"testing"

	"github.com/vindeiatrix/mutantsgo/internal/feedback"
	"github.com/vindeiatrix/mutantsgo/internal/player"
)

func TestHandleSwitchByClassName(t *testing.T) {
	ctx, state := testContext(t)
	if err := HandleSwitch(ctx, "thief"); err != nil {
		t.Fatal(err)
	}
	if state.Active != player.Thief {
		t.Fatalf("expected active class Thief, got %s", state.Active)
	}
}

func TestHandleSwitchUnknownTokenWarns(t *testing.T) {
	ctx, state := testContext(t)
	if err := HandleSwitch(ctx, "nonsense"); err != nil {
		t.Fatal(err)
	}
	if state.Active != player.Warrior {
		t.Fatal("expected the active class to stay put on an unresolved token")
	}
	lines := ctx.Bus.Drain()
	if len(lines) != 1 || lines[0].Kind != feedback.SystemErr {
		t.Fatalf("expected one SYSTEM/ERR line, got %v", lines)
	}
}
