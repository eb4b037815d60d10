// Package turn implements the single-threaded turn-advance guarantee: a
// command always runs inside a full turn (monster AI sweep, then a
// structured turn-log summary), whether or not the command itself
// succeeds.
package turn

import (
	"fmt"
	"strings"

	"github.com/vindeiatrix/mutantsgo/internal/feedback"
	"github.com/vindeiatrix/mutantsgo/internal/player"
)

// Observer collects the feedback lines a single turn produces and
// renders them into one playersdbg-style summary line, ported from
// turnlog.py's TurnObserver — simplified from its ctx-threaded
// record/emit calls to reading straight off the feedback.Bus, since this
// process already has a single bus every producer pushes onto.
type Observer struct {
	enabled  bool
	bus      *feedback.Bus
	active   bool
	token    string
	resolved string
	hpBefore player.HP
	startIdx int
}

// NewObserver builds an Observer over bus. enabled mirrors the original's
// pdbg_enabled() gate — a disabled observer's BeginTurn/FinishTurn calls
// are no-ops.
func NewObserver(bus *feedback.Bus, enabled bool) *Observer {
	return &Observer{bus: bus, enabled: enabled}
}

// BeginTurn marks the start of a command's turn: everything pushed onto
// the bus from here until FinishTurn belongs to this turn's summary.
func (o *Observer) BeginTurn(token, resolved string, hpBefore player.HP) {
	if !o.enabled {
		return
	}
	o.active = true
	o.token = token
	o.resolved = resolved
	o.hpBefore = hpBefore
	o.startIdx = len(o.bus.Peek())
}

// FinishTurn renders the turn summary (header plus one piece per
// interesting feedback line pushed since BeginTurn) and resets the
// observer. Returns "" if the observer was never active this turn.
func (o *Observer) FinishTurn(hpAfter player.HP) string {
	if !o.active {
		o.reset()
		return ""
	}
	defer o.reset()

	all := o.bus.Peek()
	var turnLines []feedback.Line
	if o.startIdx < len(all) {
		turnLines = all[o.startIdx:]
	}

	cmd := o.resolved
	if cmd == "" {
		cmd = o.token
	}
	if cmd == "" {
		cmd = "?"
	}
	header := fmt.Sprintf("cmd=%s", cmd)
	if o.token != "" && o.token != cmd {
		header = fmt.Sprintf("cmd=%s (%s)", cmd, o.token)
	}
	delta := hpAfter.Current - o.hpBefore.Current
	header += fmt.Sprintf(" HP%+d (%d/%d)", delta, hpAfter.Current, hpAfter.Max)

	parts := append([]string{header}, summarizeLines(turnLines)...)
	return strings.Join(parts, " | ")
}

func (o *Observer) reset() {
	o.active = false
	o.token = ""
	o.resolved = ""
	o.startIdx = 0
}

// summarizeLines ports the kind-by-kind piece formatting from
// turnlog.py's _summarize_events, scoped to the feedback kinds this
// codebase actually emits.
func summarizeLines(lines []feedback.Line) []string {
	out := make([]string, 0, len(lines))
	for _, ln := range lines {
		switch ln.Kind {
		case feedback.CombatStrike:
			out = append(out, strikePiece(ln))
		case feedback.CombatKill:
			out = append(out, "kill: "+ln.Text)
		case feedback.CombatDeath:
			out = append(out, "death: "+ln.Text)
		case feedback.CombatTaunt, feedback.CombatReady, feedback.CombatInfo:
			out = append(out, ln.Text)
		}
	}
	return out
}

func strikePiece(ln feedback.Line) string {
	target := "?"
	if m, ok := ln.Meta["monster"].(string); ok && m != "" {
		target = m
	}
	piece := fmt.Sprintf("strike %s", target)
	if dmg, ok := ln.Meta["damage"].(int); ok {
		piece += fmt.Sprintf(" dmg=%d", dmg)
	}
	if killed, ok := ln.Meta["killed"].(bool); ok && killed {
		piece += " kill"
	}
	return piece
}
