// Package status implements the timed status-effect list carried by a
// player profile: applying/refreshing an effect and ticking durations
// down once per turn.
package status

import (
	"strings"

	"github.com/vindeiatrix/mutantsgo/internal/player"
)

// Apply merges status_id/duration into effects, mirroring the original
// StatusManager._merge_entries: an existing entry for the same
// (normalized) status_id is replaced with the new duration; a duration
// of 0 or less removes the entry instead of adding it.
func Apply(effects []player.StatusEffect, statusID string, duration int) []player.StatusEffect {
	normalized := strings.TrimSpace(statusID)
	if normalized == "" {
		return effects
	}
	if duration < 0 {
		duration = 0
	}

	merged := make([]player.StatusEffect, 0, len(effects)+1)
	seen := false
	for _, e := range effects {
		id := strings.TrimSpace(e.StatusID)
		if id == "" {
			continue
		}
		if id == normalized {
			seen = true
			if duration > 0 {
				merged = append(merged, player.StatusEffect{StatusID: normalized, Duration: duration})
			}
			continue
		}
		current := e.Duration
		if current < 0 {
			current = 0
		}
		merged = append(merged, player.StatusEffect{StatusID: id, Duration: current})
	}
	if !seen && duration > 0 {
		merged = append(merged, player.StatusEffect{StatusID: normalized, Duration: duration})
	}
	return merged
}

// ApplyToProfile applies a status to a player profile in place.
func ApplyToProfile(p *player.Profile, statusID string, duration int) {
	p.Status = Apply(p.Status, statusID, duration)
}

// Tick decrements every effect's duration by amount (default path: once
// per turn) and drops any that reach zero or below.
func Tick(effects []player.StatusEffect, amount int) []player.StatusEffect {
	if amount <= 0 {
		return effects
	}
	out := effects[:0:0]
	for _, e := range effects {
		remaining := e.Duration - amount
		if remaining > 0 {
			out = append(out, player.StatusEffect{StatusID: e.StatusID, Duration: remaining})
		}
	}
	return out
}

// TickProfile decrements every status on p by amount in place.
func TickProfile(p *player.Profile, amount int) {
	p.Status = Tick(p.Status, amount)
}

// TickActive decrements the active profile's statuses by amount — the
// scope spec.md §5 calls for ("status decrement ticks once per turn"),
// limited to the profile actually playing out the turn. Inactive
// classes' statuses don't advance while benched, matching the per-class
// isolation spec.md §3 requires of bags and equipment.
func TickActive(s *player.State, amount int) {
	if p := s.ActiveProfile(); p != nil {
		TickProfile(p, amount)
	}
}
