package ai

import (
	"math/rand"
	"testing"
)

func TestMergeCascadeWeightsOverridesReplace(t *testing.T) {
	weights := MergeCascadeWeights(map[string]float64{"ATTACK": 1000})
	if weights[ActionAttack] != 1000 {
		t.Fatalf("expected override to replace the default weight, got %v", weights[ActionAttack])
	}
	if weights[ActionHeal] != DefaultCascadeWeights()[ActionHeal] {
		t.Fatal("expected an unrelated action's weight to stay at its default")
	}
}

func TestRankByWeightOrdersDescendingWithTieBreak(t *testing.T) {
	weights := map[Action]float64{ActionHeal: 10, ActionCast: 10, ActionIdle: 1}
	ranked := rankByWeight(weights)
	if len(ranked) != 3 {
		t.Fatalf("expected 3 positive-weight actions, got %d", len(ranked))
	}
	if ranked[0] != ActionHeal || ranked[1] != ActionCast {
		t.Fatalf("expected HEAL before CAST on a tie (cascadeOrder precedence), got %v", ranked)
	}
	if ranked[2] != ActionIdle {
		t.Fatal("expected IDLE last by weight")
	}
}

func TestEvaluateCascadeFallsThroughOnPreconditionFailure(t *testing.T) {
	weights := map[Action]float64{ActionAttack: 100, ActionIdle: 1}
	rng := rand.New(rand.NewSource(1))

	precondition := func(a Action) bool { return a != ActionAttack }
	perform := func(a Action) bool { return true }

	got := EvaluateCascade(weights, rng, precondition, perform)
	if got != ActionIdle {
		t.Fatalf("expected ATTACK's failed precondition to fall through to IDLE, got %v", got)
	}
}

func TestEvaluateCascadeFallsThroughOnPerformFailure(t *testing.T) {
	weights := map[Action]float64{ActionAttack: 100, ActionHeal: 50, ActionIdle: 1}
	rng := rand.New(rand.NewSource(2))

	precondition := func(Action) bool { return true }
	perform := func(a Action) bool { return a != ActionAttack }

	got := EvaluateCascade(weights, rng, precondition, perform)
	if got == ActionAttack {
		t.Fatal("expected a failing ATTACK perform to fall through to the next candidate")
	}
}

func TestEvaluateCascadeEmptyWeightsReturnsIdle(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	got := EvaluateCascade(map[Action]float64{}, rng, func(Action) bool { return true }, func(Action) bool { return true })
	if got != ActionIdle {
		t.Fatal("expected an empty weight table to resolve to IDLE")
	}
}

func TestWeightedDrawRespectsZeroTotal(t *testing.T) {
	ranked := []Action{ActionIdle}
	weights := map[Action]float64{ActionIdle: 0}
	rng := rand.New(rand.NewSource(4))
	if got := weightedDraw(weights, ranked, rng); got != ActionIdle {
		t.Fatalf("expected the only candidate back on a zero total, got %v", got)
	}
}
