package player

import "testing"

func TestLoadStateFillsMissingCanonicalClasses(t *testing.T) {
	s, err := LoadState(nil)
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	for _, c := range CanonicalClasses() {
		if _, ok := s.Profiles[c]; !ok {
			t.Fatalf("expected class %s to be present after load", c)
		}
	}
	if s.Active != Warrior {
		t.Fatalf("expected default active class to be the first canonical class, got %s", s.Active)
	}
}

func TestLoadStateDiscardsStoredActiveSnapshotButKeepsActiveID(t *testing.T) {
	raw := []byte(`{
		"active_id": "player_thief",
		"players": [
			{"class": "Thief", "id": "player_thief", "name": "Shifty"},
			{"class": "Warrior", "id": "player_warrior", "name": "Conan"}
		]
	}`)
	s, err := LoadState(raw)
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if s.Active != Thief {
		t.Fatalf("expected active class Thief, got %s", s.Active)
	}
	if len(s.Profiles) != len(CanonicalClasses()) {
		t.Fatalf("expected all canonical classes present, got %d", len(s.Profiles))
	}
}

func TestLoadStateStripsEquippedInstanceFromBag(t *testing.T) {
	raw := []byte(`{
		"players": [
			{
				"class": "Warrior", "id": "player_warrior",
				"inventory": ["sword#aaaa1111", "potion#bbbb2222"],
				"equipment": {"wielded": "sword#aaaa1111"}
			}
		]
	}`)
	s, err := LoadState(raw)
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	warrior := s.Profiles[Warrior]
	for _, iid := range warrior.Inventory {
		if iid == warrior.Equipment.Wielded {
			t.Fatalf("expected wielded instance to be stripped from inventory, found %s", iid)
		}
	}
	if len(warrior.Inventory) != 1 || warrior.Inventory[0] != "potion#bbbb2222" {
		t.Fatalf("expected only the potion to remain, got %v", warrior.Inventory)
	}
}

func TestLoadStateClampsHPAndCurrencies(t *testing.T) {
	raw := []byte(`{
		"players": [
			{"class": "Wizard", "id": "player_wizard", "hp": {"current": 999, "max": 30},
			 "currencies": {"ions": -5, "riblets": -1, "exp": -1, "level": 0, "exhaustion": -1}}
		]
	}`)
	s, err := LoadState(raw)
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	wizard := s.Profiles[Wizard]
	if wizard.HP.Current != 30 {
		t.Fatalf("expected HP current clamped to max 30, got %d", wizard.HP.Current)
	}
	if wizard.Currencies.Ions != 0 || wizard.Currencies.Riblets != 0 || wizard.Currencies.Exp != 0 {
		t.Fatalf("expected negative currencies clamped to 0, got %+v", wizard.Currencies)
	}
	if wizard.Currencies.Level != 1 {
		t.Fatalf("expected level floored to 1, got %d", wizard.Currencies.Level)
	}
}

func TestSaveStripsActiveSnapshotAndOrdersCanonically(t *testing.T) {
	s, err := LoadState(nil)
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if err := s.SetActive(Priest); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	data, err := s.Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	reloaded, err := LoadState(data)
	if err != nil {
		t.Fatalf("LoadState(reloaded): %v", err)
	}
	if reloaded.Active != Priest {
		t.Fatalf("expected active class to survive a save/load round trip, got %s", reloaded.Active)
	}
	for _, c := range CanonicalClasses() {
		if _, ok := reloaded.Profiles[c]; !ok {
			t.Fatalf("expected class %s after round trip", c)
		}
	}
}

func TestResolveCandidateByIDNameClassAndIndex(t *testing.T) {
	s, err := LoadState(nil)
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}

	if c, ok := s.ResolveCandidate("player_wizard"); !ok || c != Wizard {
		t.Fatalf("expected id match to resolve Wizard, got %s ok=%v", c, ok)
	}
	if c, ok := s.ResolveCandidate("thief"); !ok || c != Thief {
		t.Fatalf("expected class-name match to resolve Thief, got %s ok=%v", c, ok)
	}
	if c, ok := s.ResolveCandidate("1"); !ok || c != CanonicalClasses()[0] {
		t.Fatalf("expected 1-based index to resolve first canonical class, got %s ok=%v", c, ok)
	}
	if _, ok := s.ResolveCandidate("nonexistent"); ok {
		t.Fatalf("expected unknown token to fail to resolve")
	}
}

func TestMirrorReflectsActiveProfile(t *testing.T) {
	s, err := LoadState(nil)
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	s.Profiles[s.Active].Pos = Position{Year: 2015, X: 3, Y: 4}
	view := s.Mirror()
	if view.Pos.Year != 2015 || view.Pos.X != 3 || view.Pos.Y != 4 {
		t.Fatalf("expected mirror to reflect active profile position, got %+v", view.Pos)
	}
}

func TestMirrorMutationDoesNotAliasProfile(t *testing.T) {
	s, err := LoadState(nil)
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	s.Profiles[s.Active].Inventory = []string{"potion#11112222"}
	view := s.Mirror()
	view.Inventory[0] = "mutated"
	if s.Profiles[s.Active].Inventory[0] != "potion#11112222" {
		t.Fatalf("expected Mirror to return a copy, not an alias of the profile's slice")
	}
}
