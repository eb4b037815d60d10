package ai

import (
	"github.com/vindeiatrix/mutantsgo/internal/monster"
	"github.com/vindeiatrix/mutantsgo/internal/player"
)

// TrackTarget refreshes inst's position snapshot for playerID, preserving
// aggro across year travel: the snapshot is replaced every turn the
// monster is interested in playerID, but target_player_id itself is
// never touched here — only wake (§4.3 step 1) and explicit clears
// (menu/class-switch) change who a monster is after.
func TrackTarget(inst *monster.Instance, playerID string, pos player.Position, tick int64) {
	if playerID == "" {
		return
	}
	if inst.AIState.Targets == nil {
		inst.AIState.Targets = make(map[string]monster.TargetSnapshot)
	}
	inst.AIState.Targets[playerID] = monster.TargetSnapshot{
		Pos:          pos,
		CoLocated:    pos == inst.Pos,
		LastSeenTick: tick,
	}
}

// ClearTarget drops a monster's aggro on playerID entirely — used by the
// class-menu ready-target clear invariant (spec.md §8 invariant 9).
func ClearTarget(inst *monster.Instance, playerID string) {
	if inst.TargetPlayerID == playerID {
		inst.TargetPlayerID = ""
	}
	delete(inst.AIState.Targets, playerID)
}
