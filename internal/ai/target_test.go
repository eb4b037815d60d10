package ai

import (
	"testing"

	"github.com/vindeiatrix/mutantsgo/internal/monster"
	"github.com/vindeiatrix/mutantsgo/internal/player"
)

func TestTrackTargetRefreshesSnapshot(t *testing.T) {
	inst := &monster.Instance{Pos: player.Position{Year: 2100, X: 1, Y: 1}}
	TrackTarget(inst, "p1", player.Position{Year: 2100, X: 1, Y: 1}, 7)

	snap, ok := inst.AIState.Targets["p1"]
	if !ok {
		t.Fatal("expected a snapshot for p1")
	}
	if !snap.CoLocated {
		t.Fatal("expected CoLocated true when positions match")
	}
	if snap.LastSeenTick != 7 {
		t.Fatalf("expected tick 7, got %d", snap.LastSeenTick)
	}

	TrackTarget(inst, "p1", player.Position{Year: 2100, X: 5, Y: 1}, 8)
	snap = inst.AIState.Targets["p1"]
	if snap.CoLocated {
		t.Fatal("expected CoLocated false once positions diverge")
	}
	if snap.LastSeenTick != 8 {
		t.Fatalf("expected tick 8, got %d", snap.LastSeenTick)
	}
}

func TestTrackTargetIgnoresEmptyPlayerID(t *testing.T) {
	inst := &monster.Instance{}
	TrackTarget(inst, "", player.Position{}, 1)
	if inst.AIState.Targets != nil {
		t.Fatal("expected no targets map to be created for an empty player id")
	}
}

func TestClearTargetDropsAggroAndSnapshot(t *testing.T) {
	inst := &monster.Instance{TargetPlayerID: "p1"}
	TrackTarget(inst, "p1", player.Position{}, 1)

	ClearTarget(inst, "p1")
	if inst.TargetPlayerID != "" {
		t.Fatal("expected TargetPlayerID to be cleared")
	}
	if _, ok := inst.AIState.Targets["p1"]; ok {
		t.Fatal("expected the snapshot to be deleted")
	}
}

func TestClearTargetLeavesOtherAggroUntouched(t *testing.T) {
	inst := &monster.Instance{TargetPlayerID: "p2"}
	TrackTarget(inst, "p2", player.Position{}, 1)

	ClearTarget(inst, "p1")
	if inst.TargetPlayerID != "p2" {
		t.Fatal("expected clearing an unrelated player id to leave aggro untouched")
	}
}
