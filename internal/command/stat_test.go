package command

import (
	"strings"
	"testing"

	"github.com/vindeiatrix/mutantsgo/internal/feedback"
)

func TestHandleStatClearsDeadReadyTarget(t *testing.T) {
	ctx, state := testContext(t)
	p := state.ActiveProfile()
	p.ReadyTarget = "ghost-instance"

	if err := HandleStat(ctx, ""); err != nil {
		t.Fatal(err)
	}
	if p.ReadyTarget != "" {
		t.Fatal("expected a missing ready target to be cleared")
	}

	var found bool
	for _, line := range ctx.Bus.Drain() {
		if line.Kind == feedback.SystemOK && strings.Contains(line.Text, "Ready to Combat: NO ONE") {
			found = true
		}
	}
	if !found {
		t.Fatal("expected the stat block to report \"Ready to Combat: NO ONE\"")
	}
}

func TestHandleInvReportsEmptyBag(t *testing.T) {
	ctx, _ := testContext(t)
	if err := HandleInv(ctx, ""); err != nil {
		t.Fatal(err)
	}
	lines := ctx.Bus.Drain()
	if len(lines) != 1 || !strings.Contains(lines[0].Text, "Your bag is empty.") {
		t.Fatalf("expected an empty-bag line, got %v", lines)
	}
}
