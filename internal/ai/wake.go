// Package ai implements the monster AI pipeline: the wake gate, target
// tracking, pending-drop handling, pursuit, and the weighted action
// cascade described in spec.md's monster AI section, each stage ported
// from the mutants3 monster_ai service package.
package ai

import (
	"math/rand"

	"github.com/vindeiatrix/mutantsgo/internal/config"
	"github.com/vindeiatrix/mutantsgo/internal/monster"
)

// WakeEvent is the stimulus that triggers a wake-gate roll.
type WakeEvent string

const (
	WakeEntry WakeEvent = "ENTRY"
	WakeLook  WakeEvent = "LOOK"
)

// ShouldWake rolls the wake gate for event against tpl's per-monster
// threshold override, falling back to cfg's default. Any event other
// than ENTRY/LOOK always wakes — the original's should_wake treats an
// unrecognized event as "nothing to gate against", not a failure.
func ShouldWake(tpl *monster.Template, event WakeEvent, rng *rand.Rand, cfg config.CombatConfig) bool {
	var threshold int
	switch event {
	case WakeEntry:
		threshold = cfg.WakeOnEntryPct
		if tpl != nil && tpl.WakeOnEntry != nil {
			threshold = *tpl.WakeOnEntry
		}
	case WakeLook:
		threshold = cfg.WakeOnLookPct
		if tpl != nil && tpl.WakeOnLook != nil {
			threshold = *tpl.WakeOnLook
		}
	default:
		return true
	}
	if threshold <= 0 {
		return false
	}
	roll := rng.Intn(100)
	return roll < threshold
}

// ShouldEmitReady rolls the small fixed-probability "getting ready to
// combat you" follow-up line after a successful wake.
func ShouldEmitReady(rng *rand.Rand, cfg config.CombatConfig) bool {
	if cfg.ReadyChancePct <= 0 {
		return false
	}
	return rng.Intn(100) < cfg.ReadyChancePct
}
