package command

import (
	"testing"

	"github.com/vindeiatrix/mutantsgo/internal/feedback"
	"github.com/vindeiatrix/mutantsgo/internal/trace"
)

func TestHandleLogsTraceTogglesFlag(t *testing.T) {
	ctx, _ := testContext(t)
	if err := HandleLogs(ctx, "trace move on"); err != nil {
		t.Fatal(err)
	}
	if !trace.GetFlag("move") {
		t.Fatal("expected the move trace flag enabled")
	}
	if err := HandleLogs(ctx, "trace move off"); err != nil {
		t.Fatal(err)
	}
	if trace.GetFlag("move") {
		t.Fatal("expected the move trace flag disabled")
	}
}

func TestHandleLogsVerifyEdgesReportsOK(t *testing.T) {
	ctx, _ := testContext(t)
	if err := HandleLogs(ctx, "verify edges 4"); err != nil {
		t.Fatal(err)
	}
	lines := ctx.Bus.Drain()
	if len(lines) != 1 || lines[0].Kind != feedback.SystemOK {
		t.Fatalf("expected one SYSTEM/OK line on an empty, symmetric grid, got %v", lines)
	}
}

func TestHandleLogsTailUnavailable(t *testing.T) {
	ctx, _ := testContext(t)
	if err := HandleLogs(ctx, "tail"); err != nil {
		t.Fatal(err)
	}
	lines := ctx.Bus.Drain()
	if len(lines) != 1 || lines[0].Kind != feedback.SystemWarn {
		t.Fatalf("expected one SYSTEM/WARN line, got %v", lines)
	}
}
