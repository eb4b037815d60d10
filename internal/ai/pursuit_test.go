package ai

import (
	"math/rand"
	"testing"

	"github.com/vindeiatrix/mutantsgo/internal/items"
	"github.com/vindeiatrix/mutantsgo/internal/monster"
	"github.com/vindeiatrix/mutantsgo/internal/player"
	"github.com/vindeiatrix/mutantsgo/internal/world"
)

func openGrid() *world.Grid {
	grid := world.NewGrid()
	open := world.Edge{Base: "open"}
	for x := -2; x <= 2; x++ {
		for y := -2; y <= 2; y++ {
			grid.SetTile(2000, x, y, world.Tile{Edges: map[world.Direction]world.Edge{
				world.North: open, world.South: open, world.East: open, world.West: open,
			}})
		}
	}
	return grid
}

func noGems(items.Position) []items.Instance { return nil }

func TestAttemptPursuitDifferentYearAlwaysFails(t *testing.T) {
	inst := &monster.Instance{Pos: player.Position{Year: 2000, X: 0, Y: 0}, HP: player.HP{Current: 10, Max: 10}}
	dest := player.Position{Year: 2100, X: 1, Y: 0}
	rng := rand.New(rand.NewSource(1))

	if AttemptPursuit(inst, dest, openGrid(), nil, noGems, rng) {
		t.Fatal("expected pursuit across years to never move")
	}
}

func TestAttemptPursuitAlreadyAdjacentSameTileFails(t *testing.T) {
	inst := &monster.Instance{Pos: player.Position{Year: 2000, X: 0, Y: 0}, HP: player.HP{Current: 10, Max: 10}}
	dest := player.Position{Year: 2000, X: 0, Y: 0}
	rng := rand.New(rand.NewSource(1))

	if AttemptPursuit(inst, dest, openGrid(), nil, noGems, rng) {
		t.Fatal("expected no step needed when already co-located")
	}
}

func TestAttemptPursuitStepsTowardDestWhenHealthyAndFlush(t *testing.T) {
	inst := &monster.Instance{
		Pos: player.Position{Year: 2000, X: 0, Y: 0},
		HP:  player.HP{Current: 10, Max: 10},
	}
	inst.AIState.Ledger.Ions = 1000
	dest := player.Position{Year: 2000, X: 2, Y: 0}
	rng := rand.New(rand.NewSource(1))

	moved := AttemptPursuit(inst, dest, openGrid(), nil, noGems, rng)
	if !moved {
		t.Fatal("expected a healthy, unhindered monster to always press pursuit")
	}
	if inst.Pos.X != 1 || inst.Pos.Y != 0 {
		t.Fatalf("expected a single step east, got (%d,%d)", inst.Pos.X, inst.Pos.Y)
	}
}

func TestAttemptPursuitBlockedByBoundaryFails(t *testing.T) {
	grid := world.NewGrid() // no tiles set anywhere -> every edge is boundary
	inst := &monster.Instance{Pos: player.Position{Year: 2000, X: 0, Y: 0}, HP: player.HP{Current: 10, Max: 10}}
	dest := player.Position{Year: 2000, X: 1, Y: 0}
	rng := rand.New(rand.NewSource(1))

	if AttemptPursuit(inst, dest, grid, nil, noGems, rng) {
		t.Fatal("expected a boundary edge to block pursuit")
	}
	if inst.Pos.X != 0 {
		t.Fatal("expected position to be untouched when pursuit is blocked")
	}
}

func TestReluctanceScoreAccumulatesPenalties(t *testing.T) {
	hurt := &monster.Instance{HP: player.HP{Current: 5, Max: 100}}
	if reluctanceScore(hurt, false) == 0 {
		t.Fatal("expected a badly hurt monster to have nonzero reluctance")
	}

	starved := &monster.Instance{HP: player.HP{Current: 100, Max: 100}}
	starved.AIState.Ledger.Ions = 0
	withGems := reluctanceScore(starved, true)
	withoutGems := reluctanceScore(starved, false)
	if withGems <= withoutGems {
		t.Fatal("expected ground gems to add to the reluctance score")
	}
}

func TestStepDirectionPicksLargerAxisFirst(t *testing.T) {
	cur := player.Position{X: 0, Y: 0}
	dest := player.Position{X: 1, Y: 3}
	dir, ok := stepDirection(cur, dest)
	if !ok || dir != world.North {
		t.Fatalf("expected North for the larger y-gap, got %v/%v", dir, ok)
	}
}
