package player

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// State is every class's profile plus which one is active. The active
// class is derived on every load, never trusted from storage — spec.md
// §4.6's "load discards any stored active field and rebuilds it".
type State struct {
	Active   Class
	Profiles map[Class]*Profile
}

// NewState returns an empty State with no profiles.
func NewState() *State {
	return &State{Profiles: make(map[Class]*Profile)}
}

// DefaultProfile builds the starting profile for a class that's missing
// from storage. Base stats are a flat 10 across the board; the spec
// leaves starting stat templates unspecified beyond the heal-cost table
// deciding which four classes exist, so this is a minimal, documented
// default rather than a retrieved template.
func DefaultProfile(class Class) Profile {
	return Profile{
		Class:       class,
		ID:          "player_" + strings.ToLower(string(class)),
		DisplayName: string(class),
		Stats:       Stats{Str: 10, Int: 10, Wis: 10, Dex: 10, Con: 10, Cha: 10},
		HP:          HP{Current: 20, Max: 20},
		Currencies:  Currencies{Level: 1},
	}
}

// EnsureCanonicalClasses fills any class missing from Profiles using
// defaults, so the four canonical classes are always present after load.
func (s *State) EnsureCanonicalClasses(defaults func(Class) Profile) {
	for _, c := range CanonicalClasses() {
		if _, ok := s.Profiles[c]; ok {
			continue
		}
		p := defaults(c)
		p.Class = c
		s.Profiles[c] = &p
	}
}

// ActiveProfile returns the active class's profile, or nil if State has
// no active class set.
func (s *State) ActiveProfile() *Profile {
	return s.Profiles[s.Active]
}

// ActiveView is the read-only mirror of the active profile's fields,
// exposed to consumers that shouldn't reach into per-class maps directly
// — the same "single source of truth, never cache" discipline the
// original's get_active_player helper enforces.
type ActiveView struct {
	Class       Class
	Pos         Position
	Stats       Stats
	HP          HP
	Inventory   []string
	Equipment   Equipment
	ReadyTarget string
	Currencies  Currencies
	Status      []StatusEffect
}

// Mirror derives an ActiveView from the current active profile. Returns
// the zero ActiveView if no class is active.
func (s *State) Mirror() ActiveView {
	p := s.ActiveProfile()
	if p == nil {
		return ActiveView{}
	}
	inv := make([]string, len(p.Inventory))
	copy(inv, p.Inventory)
	status := make([]StatusEffect, len(p.Status))
	copy(status, p.Status)
	return ActiveView{
		Class:       p.Class,
		Pos:         p.Pos,
		Stats:       p.Stats,
		HP:          p.HP,
		Inventory:   inv,
		Equipment:   p.Equipment,
		ReadyTarget: p.ReadyTarget,
		Currencies:  p.Currencies,
		Status:      status,
	}
}

// MovePosition updates the active profile's position. Callers persist
// the resulting State in the same save that records the move, so a
// write failure can't leave the in-memory registry advanced without a
// matching durable record — spec.md §4.6's atomic-move requirement.
func (s *State) MovePosition(pos Position) error {
	p := s.ActiveProfile()
	if p == nil {
		return fmt.Errorf("player: no active class set")
	}
	p.Pos = pos
	return nil
}

// SetActive switches the active class. Returns an error if class isn't
// present in Profiles.
func (s *State) SetActive(class Class) error {
	if _, ok := s.Profiles[class]; !ok {
		return fmt.Errorf("player: unknown class %q", class)
	}
	s.Active = class
	return nil
}

// ResolveCandidate matches a user-typed token against the known classes
// by id, display name, class name, or 1-based index into
// CanonicalClasses — ported from the original's resolve_candidate.
func (s *State) ResolveCandidate(token string) (Class, bool) {
	q := strings.ToLower(strings.TrimSpace(token))
	if q == "" {
		return "", false
	}
	classes := CanonicalClasses()
	for _, c := range classes {
		p := s.Profiles[c]
		if p != nil && strings.ToLower(p.ID) == q {
			return c, true
		}
	}
	for _, c := range classes {
		p := s.Profiles[c]
		if p != nil && strings.ToLower(p.DisplayName) == q {
			return c, true
		}
		if strings.ToLower(string(c)) == q {
			return c, true
		}
	}
	if n, err := strconv.Atoi(q); err == nil {
		i := n - 1
		if i >= 0 && i < len(classes) {
			return classes[i], true
		}
	}
	return "", false
}

// document is the on-disk shape: canonical-ordered players plus the
// active id. Any "active" top-level snapshot the original writes is
// intentionally not modeled here — it's discarded on load and never
// round-tripped, per spec.md §4.6.
type document struct {
	ActiveID string    `json:"active_id"`
	Players  []Profile `json:"players"`
}

// LoadState parses a persisted player document, discards any stored
// active snapshot, fills in missing canonical classes, and enforces the
// per-profile invariants (HP clamp, non-negative currencies, inventory
// never holding an equipped instance).
func LoadState(data []byte) (*State, error) {
	var doc document
	if len(data) > 0 {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("player: decode state: %w", err)
		}
	}

	s := NewState()
	for i := range doc.Players {
		p := doc.Players[i]
		s.Profiles[p.Class] = &p
	}
	s.EnsureCanonicalClasses(DefaultProfile)

	for _, c := range CanonicalClasses() {
		p := s.Profiles[c]
		p.stripEquippedFromBag()
		p.HP.Clamp()
		p.Currencies.clampNonNegative()
	}

	if class, ok := s.resolveActiveID(doc.ActiveID); ok {
		s.Active = class
	} else {
		s.Active = CanonicalClasses()[0]
	}
	return s, nil
}

func (s *State) resolveActiveID(activeID string) (Class, bool) {
	if activeID == "" {
		return "", false
	}
	for _, c := range CanonicalClasses() {
		if p := s.Profiles[c]; p != nil && p.ID == activeID {
			return c, true
		}
	}
	return "", false
}

// Save serializes State back to the canonical-ordered document shape,
// stripping any derived active snapshot so storage never holds a
// divergent copy.
func (s *State) Save() ([]byte, error) {
	doc := document{Players: make([]Profile, 0, len(CanonicalClasses()))}
	if p := s.ActiveProfile(); p != nil {
		doc.ActiveID = p.ID
	}
	for _, c := range CanonicalClasses() {
		if p := s.Profiles[c]; p != nil {
			doc.Players = append(doc.Players, *p)
		}
	}
	return json.Marshal(doc)
}
