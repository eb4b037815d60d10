// Package items implements the item template catalog and the item
// instance registry: minting, ground/held position tracking, wear, and
// ground-capacity enforcement.
package items

import (
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"gopkg.in/yaml.v3"
)

// BrokenWeaponID is the template id a weapon's item_id is rewritten to
// once its condition reaches 0.
const BrokenWeaponID = "broken_weapon"

// Template is one item template (catalog) row.
type Template struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Weight       int    `yaml:"weight"`
	BasePowerM   int    `yaml:"base_power_melee"`
	BasePowerB   int    `yaml:"base_power_bolt"`
	Enchantable  bool   `yaml:"enchantable"`
	Ranged       bool   `yaml:"ranged"`
	Potion       bool   `yaml:"potion"`
	Spawnable    bool   `yaml:"spawnable"`
	ChargesMax   int    `yaml:"charges_max"`
	RibletValue  int    `yaml:"riblet_value"`
	ArmourClass  int    `yaml:"armour_class"`
	PoisonMelee  *bool  `yaml:"poison_melee"`
	PoisonBolt   *bool  `yaml:"poison_bolt"`
	Poisonous    *bool  `yaml:"poisonous"` // legacy flag; decoded only, nothing reads it
	ConvertIons  int    `yaml:"convert_ions"`
	GodTier      bool   `yaml:"god_tier"`
	Key          bool   `yaml:"key"`
	KeyType      string `yaml:"key_type"`
}

// Catalog is an id/name-indexed set of item templates, built once by
// LoadCatalog from the catalog document.
type Catalog struct {
	byNormalizedKey map[string]*Template
	all             []*Template
}

// LoadCatalog parses a YAML catalog document of the shape
// {items: [{id: ..., name: ..., ...}, ...]}.
func LoadCatalog(data []byte) (*Catalog, error) {
	var doc struct {
		Items []*Template `yaml:"items"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return buildCatalog(doc.Items), nil
}

func buildCatalog(templates []*Template) *Catalog {
	c := &Catalog{byNormalizedKey: make(map[string]*Template, len(templates)*2)}
	for _, tpl := range templates {
		if tpl.ID == "" {
			continue
		}
		name := tpl.Name
		if name == "" {
			name = tpl.ID
		}
		c.all = append(c.all, tpl)
		c.byNormalizedKey[normalize(tpl.ID)] = tpl
		c.byNormalizedKey[normalize(name)] = tpl
	}
	return c
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

// IsWeapon reports whether a template deals power when wielded, melee or
// bolt — used to pick a monster's default wielded item from its bag.
func (t *Template) IsWeapon() bool {
	return t.BasePowerM > 0 || t.BasePowerB > 0
}

// Len reports how many templates the catalog holds.
func (c *Catalog) Len() int { return len(c.all) }

// Get returns the template with the exact id, or nil.
func (c *Catalog) Get(id string) *Template {
	for _, tpl := range c.all {
		if tpl.ID == id {
			return tpl
		}
	}
	return nil
}

// ResolveResult is the outcome of resolving a user-typed token against
// the catalog.
type ResolveResult struct {
	Template    *Template // nil if no exact/unique match
	Suggestions []string  // populated only when Template is nil
}

// Resolve matches token against the catalog: exact id/name match first
// (case- and whitespace-insensitive), then a unique-prefix match over the
// same normalized keys, then fuzzy suggestions over display names (and
// ids, if no name comes close) for an ambiguous or unmatched token.
func (c *Catalog) Resolve(token string) ResolveResult {
	norm := normalize(token)
	if tpl, ok := c.byNormalizedKey[norm]; ok {
		return ResolveResult{Template: tpl}
	}

	seen := map[string]bool{}
	var candidates []*Template
	for key, tpl := range c.byNormalizedKey {
		if strings.HasPrefix(key, norm) && !seen[tpl.ID] {
			seen[tpl.ID] = true
			candidates = append(candidates, tpl)
		}
	}
	if len(candidates) == 1 {
		return ResolveResult{Template: candidates[0]}
	}

	names := make([]string, 0, len(c.all))
	ids := make([]string, 0, len(c.all))
	for _, tpl := range c.all {
		name := tpl.Name
		if name == "" {
			name = tpl.ID
		}
		names = append(names, name)
		ids = append(ids, tpl.ID)
	}
	suggestions := closeMatches(token, names, 5, 0.6)
	if len(suggestions) == 0 {
		suggestions = closeMatches(token, ids, 5, 0.6)
	}
	return ResolveResult{Suggestions: suggestions}
}

// closeMatches is a Go port of Python's difflib.get_close_matches, built
// on go-difflib's SequenceMatcher — the same library the original pack
// ships for this exact purpose (ratio-based fuzzy string matching).
func closeMatches(word string, possibilities []string, n int, cutoff float64) []string {
	type scored struct {
		text  string
		ratio float64
	}
	var results []scored
	wordChars := splitChars(word)
	for _, p := range possibilities {
		matcher := difflib.NewMatcher(wordChars, splitChars(p))
		ratio := matcher.Ratio()
		if ratio >= cutoff {
			results = append(results, scored{p, ratio})
		}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].ratio > results[j].ratio })
	if len(results) > n {
		results = results[:n]
	}
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.text
	}
	return out
}

func splitChars(s string) []string {
	runes := []rune(s)
	out := make([]string, len(runes))
	for i, r := range runes {
		out[i] = string(r)
	}
	return out
}
