package command

import (
	"math/rand"
	"testing"

	"github.com/vindeiatrix/mutantsgo/internal/feedback"
	"github.com/vindeiatrix/mutantsgo/internal/world"
)

func TestHandleTravelSameCenturyIsFree(t *testing.T) {
	ctx, state := testContext(t)
	ctx.RNG = rand.New(rand.NewSource(1))
	ctx.Grid.SetTile(2000, 0, 0, world.Tile{})
	p := state.ActiveProfile()
	p.Currencies.Ions = 0

	if err := HandleTravel(ctx, "2000"); err != nil {
		t.Fatal(err)
	}
	if p.Pos.Year != 2000 {
		t.Fatalf("expected to stay in 2000, got %d", p.Pos.Year)
	}
	lines := ctx.Bus.Drain()
	if len(lines) != 1 || lines[0].Kind != feedback.SystemOK {
		t.Fatalf("expected a free-travel SYSTEM/OK line, got %v", lines)
	}
}

func TestHandleTravelRejectsUninstalledYear(t *testing.T) {
	ctx, state := testContext(t)
	ctx.RNG = rand.New(rand.NewSource(1))
	p := state.ActiveProfile()
	p.Currencies.Ions = 100000

	if err := HandleTravel(ctx, "2100"); err != nil {
		t.Fatal(err)
	}
	if p.Pos.Year != 2000 {
		t.Fatal("expected no relocation to a year with no installed tiles")
	}
}

func TestHandleTravelFullFundsRelocates(t *testing.T) {
	ctx, state := testContext(t)
	ctx.RNG = rand.New(rand.NewSource(1))
	ctx.Grid.SetTile(2100, 0, 0, world.Tile{})
	p := state.ActiveProfile()
	p.Currencies.Ions = 5000

	if err := HandleTravel(ctx, "2100"); err != nil {
		t.Fatal(err)
	}
	if p.Pos.Year != 2100 || p.Pos.X != 0 || p.Pos.Y != 0 {
		t.Fatalf("expected relocation to (2100,0,0), got %+v", p.Pos)
	}
	if p.Currencies.Ions != 2000 {
		t.Fatalf("expected 3000 ions spent for one century, got %d remaining", p.Currencies.Ions)
	}
}
