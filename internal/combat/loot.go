package combat

import (
	"sort"

	"github.com/vindeiatrix/mutantsgo/internal/feedback"
	"github.com/vindeiatrix/mutantsgo/internal/items"
)

// LootEntry is one item a dying monster is carrying, about to be
// minted onto the ground.
type LootEntry struct {
	TemplateID string
	Enchant    int
}

// DropSummary records what a kill actually put on the ground versus
// what got vaporized for lack of room, for the turn log — spec.md
// §4.4's "records both successful drops and vaporized attempts".
type DropSummary struct {
	Dropped    []string
	Vaporized  []string
}

// DropMonsterLoot mints bag entries (sorted by display name), then a
// synthesized skull, then armour, onto pos with origin "monster_drop",
// enforcing ground capacity after every single mint so a later attempt
// in the same kill sees the tile as it stands after earlier attempts —
// spec.md §4.4's "already_dropped_this_turn" accounting falls out of
// calling EnforceGroundCap once per attempt rather than once at the end.
func DropMonsterLoot(registry *items.Registry, catalog *items.Catalog, pos items.Position, bag []LootEntry, armour *LootEntry, bus *feedback.Bus) DropSummary {
	sorted := make([]LootEntry, len(bag))
	copy(sorted, bag)
	sort.SliceStable(sorted, func(i, j int) bool {
		return displayNameFor(catalog, sorted[i].TemplateID) < displayNameFor(catalog, sorted[j].TemplateID)
	})

	var summary DropSummary
	attempt := func(entry LootEntry) {
		inst, err := registry.Mint(entry.TemplateID, pos, "monster_drop", entry.Enchant)
		if err != nil {
			return
		}
		removed, err := registry.EnforceGroundCap(pos, []string{inst.IID}, bus)
		if err != nil {
			return
		}
		if containsString(removed, inst.IID) {
			summary.Vaporized = append(summary.Vaporized, inst.IID)
			return
		}
		summary.Dropped = append(summary.Dropped, inst.IID)
	}

	for _, entry := range sorted {
		attempt(entry)
	}
	attempt(LootEntry{TemplateID: "skull"})
	if armour != nil {
		attempt(*armour)
	}
	return summary
}

func displayNameFor(catalog *items.Catalog, templateID string) string {
	if tpl := catalog.Get(templateID); tpl != nil && tpl.Name != "" {
		return tpl.Name
	}
	return templateID
}

func containsString(list []string, target string) bool {
	for _, v := range list {
		if v == target {
			return true
		}
	}
	return false
}
