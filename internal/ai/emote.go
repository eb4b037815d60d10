package ai

import (
	"fmt"
	"math/rand"

	"github.com/vindeiatrix/mutantsgo/internal/feedback"
	"github.com/vindeiatrix/mutantsgo/internal/monster"
)

// EmoteLines is the fixed flavor-line table monster emotes draw from,
// ported verbatim from emote.py's EMOTE_LINES.
var EmoteLines = []string{
	"%s is looking awfully sad.",
	"%s is singing a strange song.",
	"%s is making strange noises.",
	"%s looks at you.",
	"%s pleads with you.",
	"%s is trying to make friends with you.",
	"%s is wondering what you're doing.",
	"%s stares into the distance.",
	"%s hums a battle hymn.",
	"%s sharpens their claws.",
	"%s flexes ominously.",
	"%s practices a victory pose.",
	"%s whispers something unintelligible.",
	"%s checks the horizon for danger.",
	"%s mutters about the weather.",
	"%s pats their pockets for supplies.",
	"%s draws a sigil in the dust.",
	"%s takes a deep, steadying breath.",
	"%s adjusts their helmet.",
	"%s bounces on their heels.",
}

func displayName(inst *monster.Instance) string {
	if inst.Name != "" {
		return inst.Name
	}
	return inst.MonsterID
}

// Emote pushes a random flavor line for inst onto bus and returns it.
func Emote(inst *monster.Instance, bus *feedback.Bus, rng *rand.Rand) string {
	if len(EmoteLines) == 0 {
		return ""
	}
	line := EmoteLines[rng.Intn(len(EmoteLines))]
	message := fmt.Sprintf(line, displayName(inst))
	if bus != nil {
		bus.Push(feedback.CombatInfo, message, nil)
	}
	return message
}

// Taunt pushes inst's catalog taunt line, then independently rolls the
// "getting ready to combat you" follow-up — ported from taunt.py's
// emit_taunt.
func Taunt(inst *monster.Instance, taunt string, bus *feedback.Bus, rng *rand.Rand, readyChancePct int) (ready bool) {
	if taunt == "" {
		return false
	}
	if bus != nil {
		bus.Push(feedback.CombatTaunt, taunt, nil)
	}
	if readyChancePct <= 0 || rng.Intn(100) >= readyChancePct {
		return false
	}
	if bus != nil {
		bus.Push(feedback.CombatReady, fmt.Sprintf("%s is getting ready to combat you!", displayName(inst)), nil)
	}
	return true
}
