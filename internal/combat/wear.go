package combat

import "github.com/vindeiatrix/mutantsgo/internal/items"

// ApplyStrikeWear applies wear to the attacker's wielded instance after a
// strike, per spec.md §4.3.2: every successful strike with damage > 0
// wears the weapon by the fixed per-event amount (items.WearFromEvent);
// enchanted and already-broken weapons are untouched by
// items.Registry.ApplyWear itself. A miss or a zero-damage strike never
// calls this — it's the caller's job to gate on damage > 0.
func ApplyStrikeWear(registry *items.Registry, wieldedIID string) (items.WearResult, error) {
	if wieldedIID == "" {
		return items.WearResult{}, nil
	}
	return registry.ApplyWear(wieldedIID, items.WearFromEvent)
}
