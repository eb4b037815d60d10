package items

import (
	"errors"
	"fmt"

	"github.com/vindeiatrix/mutantsgo/internal/feedback"
	"github.com/vindeiatrix/mutantsgo/internal/persist"
)

// ErrUnknownTemplate is returned when Mint is asked for a template id the
// catalog doesn't have.
var ErrUnknownTemplate = errors.New("items: unknown template")

// ErrInstanceNotFound is returned when an operation names an iid the
// store has no record of.
var ErrInstanceNotFound = errors.New("items: instance not found")

// Held is the sentinel (year, x, y) for an instance owned by a
// monster/player rather than sitting on the ground — the invariant in
// spec.md §3 that position and owner are mutually exclusive.
const Held = -1

// ResolveOutcome is what Registry.Resolve found for a user-typed token.
type ResolveOutcome struct {
	Instance    *Instance  // non-nil when the token matched a live iid
	Template    *Template  // non-nil when the token matched (or the iid resolved to) a template
	Suggestions []string   // populated only when nothing matched
}

// Registry is the item instance store, layered over a Catalog for
// template lookups and a persist.Store for durability.
type Registry struct {
	store     persist.Store
	catalog   *Catalog
	groundCap int
}

// NewRegistry builds a Registry. groundCap is the maximum number of
// instances allowed to rest on a single tile before overflow vaporizes.
func NewRegistry(store persist.Store, catalog *Catalog, groundCap int) *Registry {
	return &Registry{store: store, catalog: catalog, groundCap: groundCap}
}

// Resolve tries token as an iid first (exact instance lookup); only if
// that fails does it fall back to catalog template resolution. This is
// the ambiguity rule spec.md §9 calls for when a command field could be
// either an item_id or an iid.
func (r *Registry) Resolve(token string) (ResolveOutcome, error) {
	if inst, ok, err := r.store.GetItemInstance(token); err != nil {
		return ResolveOutcome{}, err
	} else if ok {
		return ResolveOutcome{Instance: &inst, Template: r.catalog.Get(inst.ItemID)}, nil
	}

	res := r.catalog.Resolve(token)
	if res.Template != nil {
		return ResolveOutcome{Template: res.Template}, nil
	}
	return ResolveOutcome{Suggestions: res.Suggestions}, nil
}

// ListAt returns every instance currently resting on pos.
func (r *Registry) ListAt(pos Position) ([]Instance, error) {
	return r.store.ListItemInstancesAt(pos.Year, pos.X, pos.Y)
}

// Mint creates a new ground instance of templateID at pos.
func (r *Registry) Mint(templateID string, pos Position, origin string, enchant int) (Instance, error) {
	tpl := r.catalog.Get(templateID)
	if tpl == nil {
		return Instance{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, templateID)
	}
	inst := newInstance(templateID, pos, origin, enchant)
	if err := r.store.UpsertItemInstance(inst); err != nil {
		return Instance{}, err
	}
	return inst, nil
}

// MintHeld creates a new instance already owned by owner (native starting
// gear, debug_add), never touching the ground.
func (r *Registry) MintHeld(templateID, owner, origin string, enchant int) (Instance, error) {
	tpl := r.catalog.Get(templateID)
	if tpl == nil {
		return Instance{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, templateID)
	}
	inst := newHeldInstance(templateID, owner, origin, enchant)
	if err := r.store.UpsertItemInstance(inst); err != nil {
		return Instance{}, err
	}
	return inst, nil
}

// PickUp transfers a ground instance to owner's possession.
func (r *Registry) PickUp(iid, owner string) (Instance, error) {
	inst, ok, err := r.store.GetItemInstance(iid)
	if err != nil {
		return Instance{}, err
	}
	if !ok {
		return Instance{}, fmt.Errorf("%w: %q", ErrInstanceNotFound, iid)
	}
	inst.Owner = owner
	inst.Year, inst.X, inst.Y = Held, Held, Held
	if err := r.store.UpsertItemInstance(inst); err != nil {
		return Instance{}, err
	}
	return inst, nil
}

// Drop releases iid from its owner onto pos, then enforces ground
// capacity at that tile and returns the (possibly empty) set of iids
// that were vaporized as overflow — iid itself may be among them.
func (r *Registry) Drop(iid string, pos Position, fb *feedback.Bus) (Instance, []string, error) {
	inst, ok, err := r.store.GetItemInstance(iid)
	if err != nil {
		return Instance{}, nil, err
	}
	if !ok {
		return Instance{}, nil, fmt.Errorf("%w: %q", ErrInstanceNotFound, iid)
	}
	inst.Owner = ""
	inst.Year, inst.X, inst.Y = pos.Year, pos.X, pos.Y
	if err := r.store.UpsertItemInstance(inst); err != nil {
		return Instance{}, nil, err
	}
	removed, err := r.EnforceGroundCap(pos, []string{iid}, fb)
	if err != nil {
		return Instance{}, nil, err
	}
	return inst, removed, nil
}

// EnforceGroundCap vaporizes overflow instances at pos, newest-first
// among newIIDs, until the tile holds at most groundCap instances. Each
// vaporized instance is deleted and, if fb is non-nil, produces a
// "There is no room for <name>; it vaporizes." line.
func (r *Registry) EnforceGroundCap(pos Position, newIIDs []string, fb *feedback.Bus) ([]string, error) {
	ground, err := r.store.ListItemInstancesAt(pos.Year, pos.X, pos.Y)
	if err != nil {
		return nil, err
	}
	overflow := len(ground) - r.groundCap
	if overflow <= 0 {
		return nil, nil
	}

	var removed []string
	for i := len(newIIDs) - 1; i >= 0 && overflow > 0; i-- {
		iid := newIIDs[i]
		if iid == "" {
			continue
		}
		inst, ok, err := r.store.GetItemInstance(iid)
		if err != nil {
			return removed, err
		}
		if !ok {
			continue
		}
		if err := r.store.DeleteItemInstance(iid); err != nil {
			return removed, err
		}
		removed = append(removed, iid)
		overflow--
		if fb != nil {
			fb.Push(feedback.CombatInfo, fmt.Sprintf("There is no room for %s; it vaporizes.", displayName(inst, r.catalog)), nil)
		}
	}
	return removed, nil
}

func displayName(inst Instance, catalog *Catalog) string {
	if tpl := catalog.Get(inst.ItemID); tpl != nil && tpl.Name != "" {
		return tpl.Name
	}
	return inst.ItemID
}

// WearResult is what ApplyWear did to an instance.
type WearResult struct {
	Cracked   bool
	Condition int
}

// ApplyWear applies amount of wear to iid, mirroring the original's
// apply_wear: enchanted and already-broken items are untouched, an item
// that reaches 0 condition cracks to BrokenWeaponID instead of going
// negative.
func (r *Registry) ApplyWear(iid string, amount int) (WearResult, error) {
	inst, ok, err := r.store.GetItemInstance(iid)
	if err != nil {
		return WearResult{}, err
	}
	if !ok {
		return WearResult{}, fmt.Errorf("%w: %q", ErrInstanceNotFound, iid)
	}

	if inst.Enchant > 0 {
		return WearResult{Cracked: false, Condition: inst.Condition}, nil
	}
	if inst.Condition <= 0 {
		return WearResult{Cracked: false, Condition: 0}, nil
	}
	if amount < 0 {
		amount = 0
	}
	if amount == 0 {
		return WearResult{Cracked: false, Condition: inst.Condition}, nil
	}

	next := inst.Condition - amount
	if next < 0 {
		next = 0
	}
	if next <= 0 {
		inst.Condition = 0
		inst.ItemID = BrokenWeaponID
		if err := r.store.UpsertItemInstance(inst); err != nil {
			return WearResult{}, err
		}
		return WearResult{Cracked: true, Condition: 0}, nil
	}

	inst.Condition = next
	if err := r.store.UpsertItemInstance(inst); err != nil {
		return WearResult{}, err
	}
	return WearResult{Cracked: false, Condition: next}, nil
}

// WearFromEvent is the default wear amount any combat strike applies, the
// same constant the original's wear_from_event always returns.
const WearFromEvent = 5

// Consume permanently deletes iid instead of dropping it — the CONVERT
// cascade action spends a held item for ions rather than releasing it
// onto the ground.
func (r *Registry) Consume(iid string) error {
	return r.store.DeleteItemInstance(iid)
}

// Repair restores iid's condition to full (100), the inverse of
// ApplyWear — paid for in ions by the command layer before this is
// called.
func (r *Registry) Repair(iid string) error {
	inst, ok, err := r.store.GetItemInstance(iid)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %q", ErrInstanceNotFound, iid)
	}
	inst.Condition = 100
	return r.store.UpsertItemInstance(inst)
}
