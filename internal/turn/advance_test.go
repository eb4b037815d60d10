package turn

import (
	"errors"
	"testing"

	"github.com/vindeiatrix/mutantsgo/internal/feedback"
	"github.com/vindeiatrix/mutantsgo/internal/player"
	"go.uber.org/zap"
)

func TestAdvanceRunsSweepAndFinishEvenWhenFnErrors(t *testing.T) {
	bus := feedback.New()
	obs := NewObserver(bus, true)

	sweptHP := player.HP{Current: 8, Max: 10}
	rngTickRan := false
	statusTickRan := false
	sweepRan := false
	finishRan := false

	err := Advance(obs, zap.NewNop(), player.HP{Current: 10, Max: 10}, "n", "north",
		func() error { return errors.New("boom") },
		func() { rngTickRan = true },
		func() { statusTickRan = true },
		func() { sweepRan = true },
		func() player.HP { finishRan = true; return sweptHP },
	)

	if err == nil || err.Error() != "boom" {
		t.Fatalf("expected Advance to propagate fn's error, got %v", err)
	}
	if !rngTickRan {
		t.Fatal("expected the turn RNG tick to run even though fn errored")
	}
	if !statusTickRan {
		t.Fatal("expected the status tick to run even though fn errored")
	}
	if !sweepRan {
		t.Fatal("expected the monster sweep to run even though fn errored")
	}
	if !finishRan {
		t.Fatal("expected FinishTurn's hpAfter thunk to run even though fn errored")
	}
	if obs.active {
		t.Fatal("expected the observer to be reset after Advance returns")
	}
}

func TestAdvanceRunsStepsInOrder(t *testing.T) {
	bus := feedback.New()
	obs := NewObserver(bus, true)

	var order []string

	err := Advance(obs, zap.NewNop(), player.HP{Current: 10, Max: 10}, "n", "north",
		func() error { return nil },
		func() { order = append(order, "rngTick") },
		func() { order = append(order, "statusTick") },
		func() { order = append(order, "sweep") },
		func() player.HP { order = append(order, "finish"); return player.HP{Current: 10, Max: 10} },
	)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	want := []string{"rngTick", "statusTick", "sweep", "finish"}
	if len(order) != len(want) {
		t.Fatalf("expected order %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, order)
		}
	}
}

func TestAdvancePanickingSweepIsRecoveredAndFinishStillRuns(t *testing.T) {
	bus := feedback.New()
	obs := NewObserver(bus, true)
	finishRan := false

	err := Advance(obs, zap.NewNop(), player.HP{Current: 10, Max: 10}, "a", "attack",
		func() error { return nil },
		func() {},
		func() {},
		func() { panic("monster sweep exploded") },
		func() player.HP { finishRan = true; return player.HP{Current: 10, Max: 10} },
	)

	if err != nil {
		t.Fatalf("expected fn's own nil error to propagate, got %v", err)
	}
	if !finishRan {
		t.Fatal("expected FinishTurn to still run after a panicking sweep was recovered")
	}
}

func TestAdvancePanickingStatusTickIsRecoveredAndSweepStillRuns(t *testing.T) {
	bus := feedback.New()
	obs := NewObserver(bus, true)
	sweepRan := false

	err := Advance(obs, zap.NewNop(), player.HP{Current: 10, Max: 10}, "a", "attack",
		func() error { return nil },
		func() {},
		func() { panic("status tick exploded") },
		func() { sweepRan = true },
		func() player.HP { return player.HP{Current: 10, Max: 10} },
	)

	if err != nil {
		t.Fatalf("expected fn's own nil error to propagate, got %v", err)
	}
	if !sweepRan {
		t.Fatal("expected the monster sweep to still run after a panicking status tick was recovered")
	}
}

func TestAdvanceNilLoggerDoesNotPanicOnSweepPanic(t *testing.T) {
	bus := feedback.New()
	obs := NewObserver(bus, true)

	err := Advance(obs, nil, player.HP{Current: 10, Max: 10}, "a", "attack",
		func() error { return nil },
		func() {},
		func() {},
		func() { panic("boom") },
		func() player.HP { return player.HP{Current: 10, Max: 10} },
	)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestAdvanceNilStepsAreANoOp(t *testing.T) {
	bus := feedback.New()
	obs := NewObserver(bus, true)

	err := Advance(obs, zap.NewNop(), player.HP{Current: 10, Max: 10}, "l", "look",
		func() error { return nil },
		nil,
		nil,
		nil,
		func() player.HP { return player.HP{Current: 10, Max: 10} },
	)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}
