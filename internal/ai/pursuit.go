package ai

import (
	"math/rand"

	"github.com/vindeiatrix/mutantsgo/internal/items"
	"github.com/vindeiatrix/mutantsgo/internal/monster"
	"github.com/vindeiatrix/mutantsgo/internal/player"
	"github.com/vindeiatrix/mutantsgo/internal/world"
)

// reluctanceThreshold is the range of the roll (0-99) a monster's
// accumulated reluctance score is compared against: a roll below the
// score makes the monster decline an otherwise passable pursuit step —
// mirrors the original's roll-vs-penalty gate in attempt_pursuit.
const reluctanceThreshold = 100

// reluctanceScore sums the penalties the original applies when a
// monster would rather not press a pursuit: a hurt monster, a
// ions-starved monster, or one standing over loose gems is more
// reluctant to leave its tile.
func reluctanceScore(inst *monster.Instance, groundHasGems bool) int {
	score := 0
	if inst.HP.Max > 0 {
		fraction := inst.HP.Current * 100 / inst.HP.Max
		if fraction < 50 {
			score += (50 - fraction) / 2
		}
	}
	if inst.AIState.Ledger.Ions < 100 {
		score += 10
	}
	if groundHasGems {
		score += 25
	}
	return score
}

// AttemptPursuit steps inst one tile toward dest if a passable edge
// exists between the two adjacent tiles. It returns true (consuming the
// monster's turn) only when the step actually happened. A blocked or
// reluctant pursuit returns false so the caller falls through to the
// action cascade, per spec.md §4.3 step 4.
func AttemptPursuit(inst *monster.Instance, dest player.Position, grid *world.Grid, dynamics *world.Dynamics, groundAt func(items.Position) []items.Instance, rng *rand.Rand) bool {
	if dest.Year != inst.Pos.Year {
		return false
	}
	dir, ok := stepDirection(inst.Pos, dest)
	if !ok {
		return false
	}

	decision := world.Resolve(grid, dynamics, inst.Pos.Year, inst.Pos.X, inst.Pos.Y, dir)
	if !decision.Passable {
		return false
	}

	groundHasGems := false
	if groundAt != nil {
		for _, row := range groundAt(items.Position{Year: inst.Pos.Year, X: inst.Pos.X, Y: inst.Pos.Y}) {
			if row.ItemID == "gem" {
				groundHasGems = true
				break
			}
		}
	}
	if reluctanceScore(inst, groundHasGems) > 0 && rng.Intn(reluctanceThreshold) < reluctanceScore(inst, groundHasGems) {
		return false
	}

	dx, dy := world.Offset(dir)
	inst.Pos.X += dx
	inst.Pos.Y += dy
	return true
}

// stepDirection returns the single cardinal direction along the axis
// with the larger gap from cur to dest (the x axis on a tie), matching
// the original's greedy one-axis-at-a-time walk, or false when cur
// already equals dest.
func stepDirection(cur, dest player.Position) (world.Direction, bool) {
	dx := dest.X - cur.X
	dy := dest.Y - cur.Y
	switch {
	case dx == 0 && dy == 0:
		return "", false
	case abs(dx) >= abs(dy) && dx != 0:
		if dx > 0 {
			return world.East, true
		}
		return world.West, true
	case dy != 0:
		if dy > 0 {
			return world.North, true
		}
		return world.South, true
	default:
		return "", false
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
