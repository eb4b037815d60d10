package ai

import (
	"math/rand"
	"sort"
)

// Action is one candidate the monster AI cascade can draw.
type Action string

const (
	ActionAttack  Action = "ATTACK"
	ActionHeal    Action = "HEAL"
	ActionCast    Action = "CAST"
	ActionEmote   Action = "EMOTE"
	ActionPickup  Action = "PICKUP"
	ActionConvert Action = "CONVERT"
	ActionMove    Action = "MOVE"
	ActionIdle    Action = "IDLE"
)

// DefaultCascadeWeights are the Go-side defaults merged under any
// per-species override the catalog/Lua layer supplies (AIOverrides.Cascade),
// per spec.md §4.3 step 5. IDLE always has positive weight so the cascade
// can never fail to resolve to something.
func DefaultCascadeWeights() map[Action]float64 {
	return map[Action]float64{
		ActionAttack:  50,
		ActionHeal:    10,
		ActionCast:    10,
		ActionEmote:   5,
		ActionPickup:  5,
		ActionConvert: 5,
		ActionMove:    10,
		ActionIdle:    5,
	}
}

// MergeCascadeWeights overlays a per-species override map (string-keyed,
// as it arrives from the catalog/Lua boundary) onto the Go defaults.
// Overrides replace rather than add to the default for that action.
func MergeCascadeWeights(overrides map[string]float64) map[Action]float64 {
	weights := DefaultCascadeWeights()
	for k, v := range overrides {
		weights[Action(k)] = v
	}
	return weights
}

// cascadeOrder fixes iteration order so weighted selection and the
// "fall through by descending weight" retry rule are both deterministic
// for equal weights.
var cascadeOrder = []Action{
	ActionAttack, ActionHeal, ActionCast, ActionEmote,
	ActionPickup, ActionConvert, ActionMove, ActionIdle,
}

// rankByWeight returns the cascade actions sorted by descending weight,
// ties broken by cascadeOrder.
func rankByWeight(weights map[Action]float64) []Action {
	ranked := make([]Action, 0, len(cascadeOrder))
	for _, a := range cascadeOrder {
		if weights[a] > 0 {
			ranked = append(ranked, a)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return weights[ranked[i]] > weights[ranked[j]]
	})
	return ranked
}

// Precondition reports whether action can currently fire.
type Precondition func(Action) bool

// Perform executes action's side effects and reports whether it
// actually did something (a precondition can pass but the action still
// end up a no-op, e.g. HEAL already at full HP).
type Perform func(Action) bool

// EvaluateCascade draws a weighted action and, on precondition failure,
// falls through to the next candidate by descending weight — spec.md
// §4.3 step 5. It returns the action that actually fired, or ActionIdle
// if nothing did (IDLE itself has no precondition and always succeeds).
func EvaluateCascade(weights map[Action]float64, rng *rand.Rand, precondition Precondition, perform Perform) Action {
	ranked := rankByWeight(weights)
	if len(ranked) == 0 {
		return ActionIdle
	}

	first := weightedDraw(weights, ranked, rng)
	startIdx := indexOf(ranked, first)

	for i := startIdx; i < len(ranked); i++ {
		action := ranked[i]
		if precondition != nil && !precondition(action) {
			continue
		}
		if action == ActionIdle {
			return ActionIdle
		}
		if perform(action) {
			return action
		}
	}
	return ActionIdle
}

func indexOf(ranked []Action, target Action) int {
	for i, a := range ranked {
		if a == target {
			return i
		}
	}
	return 0
}

// weightedDraw picks one action from ranked, weighted by its cascade
// weight.
func weightedDraw(weights map[Action]float64, ranked []Action, rng *rand.Rand) Action {
	var total float64
	for _, a := range ranked {
		total += weights[a]
	}
	if total <= 0 {
		return ranked[len(ranked)-1]
	}
	roll := rng.Float64() * total
	var cumulative float64
	for _, a := range ranked {
		cumulative += weights[a]
		if roll < cumulative {
			return a
		}
	}
	return ranked[len(ranked)-1]
}
