package ai

import (
	"math/rand"

	"github.com/vindeiatrix/mutantsgo/internal/config"
	"github.com/vindeiatrix/mutantsgo/internal/feedback"
	"github.com/vindeiatrix/mutantsgo/internal/items"
	"github.com/vindeiatrix/mutantsgo/internal/monster"
	"github.com/vindeiatrix/mutantsgo/internal/player"
	"github.com/vindeiatrix/mutantsgo/internal/world"
)

// CascadeWeighter supplies a per-species action-weight override sourced
// from a Lua script (internal/scripting.Engine.CascadeWeight), so
// operators can retune a species' cascade without a rebuild. A false
// second return means Tick keeps its own default/catalog-merged weight
// for that action.
type CascadeWeighter interface {
	CascadeWeight(action string, monsterTags []string) (float64, bool)
}

// Deps bundles the collaborators a monster tick needs, so Tick itself
// stays a pure function of (Instance, Deps, Input).
type Deps struct {
	Catalog  *items.Catalog
	Items    *items.Registry
	Grid     *world.Grid
	Dynamics *world.Dynamics
	Bus      *feedback.Bus
	Cfg      config.CombatConfig
	RNG      *rand.Rand
	Weighter CascadeWeighter
}

// Input is the per-tick, per-monster context: which player is present,
// where, and what (if any) wake stimulus fired this turn.
type Input struct {
	PlayerID  string
	PlayerPos player.Position
	Event     WakeEvent // "" when this is a steady-state tick, not a fresh ENTRY/LOOK
	Tick      int64
}

// Result summarizes what a monster's tick actually did, for the turn
// observer/log.
type Result struct {
	Woke         bool
	Ready        bool
	PursuitMoved bool
	Action       Action
}

// External resolves the cascade actions Tick cannot decide on its own:
// ATTACK needs the target player's defensive stats, PICKUP/CONVERT need
// the item-transfer service, and MOVE needs a wander destination. Each
// method reports whether it actually did something, same contract as
// Perform.
type External interface {
	Attack(inst *monster.Instance, plan AttackPlan) bool
	Pickup(inst *monster.Instance) bool
	Convert(inst *monster.Instance) bool
	Move(inst *monster.Instance) bool
}

// Tick runs one monster's full AI turn: wake gate, target tracking,
// pending drops, pursuit, the weighted action cascade, and a free
// emote roll — spec.md §4.3 steps 1 through 6, in order. HEAL, CAST,
// and the cascade's own EMOTE are fully self-contained (ions/HP/RNG is
// all they need); ATTACK, PICKUP, CONVERT, and MOVE are delegated to
// ext, which holds the collaborators (defender stats, item transfer,
// world movement) Tick doesn't otherwise need.
func Tick(inst *monster.Instance, tpl *monster.Template, deps Deps, in Input, ext External) Result {
	var result Result

	if inst.TargetPlayerID == "" {
		if in.Event == "" {
			return result
		}
		if !ShouldWake(tpl, in.Event, deps.RNG, deps.Cfg) {
			return result
		}
		inst.TargetPlayerID = in.PlayerID
		result.Woke = true
		if tpl != nil {
			result.Ready = Taunt(inst, tpl.Taunt, deps.Bus, deps.RNG, deps.Cfg.ReadyChancePct)
		}
	}

	if inst.TargetPlayerID != in.PlayerID {
		return result
	}

	TrackTarget(inst, in.PlayerID, in.PlayerPos, in.Tick)

	pos := items.Position{Year: inst.Pos.Year, X: inst.Pos.X, Y: inst.Pos.Y}
	ProcessPendingDrops(inst, pos, deps.Catalog, deps.Items, deps.RNG, deps.Bus)

	coLocated := in.PlayerPos == inst.Pos
	if !coLocated {
		groundAt := func(p items.Position) []items.Instance {
			rows, _ := groundLookup(deps.Items, p)
			return rows
		}
		if AttemptPursuit(inst, in.PlayerPos, deps.Grid, deps.Dynamics, groundAt, deps.RNG) {
			result.PursuitMoved = true
			return result
		}
	}

	weights := DefaultCascadeWeights()
	var tags []string
	if tpl != nil && tpl.AIOverrides != nil {
		weights = MergeCascadeWeights(tpl.AIOverrides.Cascade)
		tags = tpl.AIOverrides.Tags
	}
	if deps.Weighter != nil {
		for action := range weights {
			if w, ok := deps.Weighter.CascadeWeight(string(action), tags); ok {
				weights[action] = w
			}
		}
	}

	precondition := func(action Action) bool {
		switch action {
		case ActionAttack:
			return coLocated
		case ActionHeal:
			return inst.HP.Current < inst.HP.Max
		case ActionCast:
			return inst.AIState.Ledger.Ions > 0
		default:
			return true
		}
	}

	perform := func(action Action) bool {
		switch action {
		case ActionAttack:
			prefersRanged := tpl != nil && tpl.AIOverrides != nil && tpl.AIOverrides.PrefersRanged
			plan := SelectAttack(inst, deps.Catalog, deps.Items, prefersRanged, deps.RNG)
			return ext.Attack(inst, plan)
		case ActionHeal:
			return TryHeal(inst, deps.Cfg).Healed
		case ActionCast:
			return TryCast(inst, deps.Cfg, deps.RNG).Success
		case ActionEmote:
			return Emote(inst, deps.Bus, deps.RNG) != ""
		case ActionPickup:
			return ext.Pickup(inst)
		case ActionConvert:
			return ext.Convert(inst)
		case ActionMove:
			return ext.Move(inst)
		default:
			return true
		}
	}

	result.Action = EvaluateCascade(weights, deps.RNG, precondition, perform)

	if deps.RNG.Intn(100) < 3 {
		Emote(inst, deps.Bus, deps.RNG)
	}

	return result
}

// groundLookup is a small seam so Tick doesn't need to know how the
// registry's persist.Store lists ground instances.
func groundLookup(registry *items.Registry, pos items.Position) ([]items.Instance, error) {
	if registry == nil {
		return nil, nil
	}
	return registry.ListAt(pos)
}
