// Package player implements the per-class player profile, the active-class
// mirror, and the load/save normalization passes spec.md §4.6 requires.
package player

// Class is one of the canonical class names. The set is fixed so "ensure
// all canonical classes are present" (on load) is a simple loop over
// CanonicalClasses rather than a data-driven lookup.
type Class string

const (
	Warrior Class = "Warrior"
	Wizard  Class = "Wizard"
	Thief   Class = "Thief"
	Priest  Class = "Priest"
)

// CanonicalClasses returns the fixed, ordered class set.
func CanonicalClasses() []Class {
	return []Class{Warrior, Wizard, Thief, Priest}
}

// Stats is the six-stat block shared by players and monsters.
type Stats struct {
	Str int `json:"str"`
	Int int `json:"int"`
	Wis int `json:"wis"`
	Dex int `json:"dex"`
	Con int `json:"con"`
	Cha int `json:"cha"`
}

// HP is current/max hit points with the invariant 0 <= Current <= Max.
type HP struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// Clamp enforces 0 <= Current <= Max, fixing up either bound that's gone
// out of range.
func (h *HP) Clamp() {
	if h.Max < 0 {
		h.Max = 0
	}
	if h.Current < 0 {
		h.Current = 0
	}
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

// Equipment holds the two equip slots a player profile tracks. Empty
// string means the slot is unoccupied.
type Equipment struct {
	Wielded string `json:"wielded"`
	Armour  string `json:"armour"`
}

// Currencies is a class's wallet: ions/riblets/exp/level/exhaustion, each
// non-negative.
type Currencies struct {
	Ions       int `json:"ions"`
	Riblets    int `json:"riblets"`
	Exp        int `json:"exp"`
	Level      int `json:"level"`
	Exhaustion int `json:"exhaustion"`
}

func (c *Currencies) clampNonNegative() {
	if c.Ions < 0 {
		c.Ions = 0
	}
	if c.Riblets < 0 {
		c.Riblets = 0
	}
	if c.Exp < 0 {
		c.Exp = 0
	}
	if c.Level < 1 {
		c.Level = 1
	}
	if c.Exhaustion < 0 {
		c.Exhaustion = 0
	}
}

// StatusEffect is one active status on a profile.
type StatusEffect struct {
	StatusID string `json:"status_id"`
	Duration int    `json:"duration"`
}

// Position is a (year, x, y) location, shared shape with world/items.
type Position struct {
	Year int `json:"year"`
	X    int `json:"x"`
	Y    int `json:"y"`
}

// Profile is one class's persisted state.
type Profile struct {
	Class       Class          `json:"class"`
	ID          string         `json:"id"`
	DisplayName string         `json:"name"`
	Pos         Position       `json:"pos"`
	Stats       Stats          `json:"stats"`
	HP          HP             `json:"hp"`
	Inventory   []string       `json:"inventory"`
	Equipment   Equipment      `json:"equipment"`
	ReadyTarget string         `json:"ready_target"`
	Currencies  Currencies     `json:"currencies"`
	Status      []StatusEffect `json:"status"`
}

// HeldInstances returns the instance ids this profile currently has in
// hand: its bag plus the two equip slots, deduplicated. Used to enforce
// the "inventory never contains the equipped instance" invariant and to
// scope a class switch to only that class's items.
func (p *Profile) HeldInstances() []string {
	seen := make(map[string]bool, len(p.Inventory)+2)
	out := make([]string, 0, len(p.Inventory)+2)
	add := func(iid string) {
		if iid == "" || seen[iid] {
			return
		}
		seen[iid] = true
		out = append(out, iid)
	}
	for _, iid := range p.Inventory {
		add(iid)
	}
	add(p.Equipment.Wielded)
	add(p.Equipment.Armour)
	return out
}

// stripEquippedFromBag removes the wielded/armour instance ids from
// Inventory, enforcing spec.md §3's "inventory never contains equipped
// weapon/armour instance" invariant.
func (p *Profile) stripEquippedFromBag() {
	if p.Equipment.Wielded == "" && p.Equipment.Armour == "" {
		return
	}
	filtered := p.Inventory[:0:0]
	for _, iid := range p.Inventory {
		if iid == p.Equipment.Wielded || iid == p.Equipment.Armour {
			continue
		}
		filtered = append(filtered, iid)
	}
	p.Inventory = filtered
}
