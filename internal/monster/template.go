// Package monster implements monster catalog templates, live instances,
// derived combat stats, and AI-override merging.
package monster

import (
	"strings"

	"github.com/vindeiatrix/mutantsgo/internal/player"
	"go.uber.org/zap"
)

// DefaultInnateAttackLine is the fallback attack line template used when
// neither the instance nor its template supplies one.
const DefaultInnateAttackLine = "The {monster} uses {attack}!"

// AttackLine is a monster's innate (unarmed) attack.
type AttackLine struct {
	Name         string `yaml:"name" json:"name"`
	PowerBase    int    `yaml:"power_base" json:"power_base"`
	PowerPerLevel int   `yaml:"power_per_level" json:"power_per_level"`
	Line         string `yaml:"line" json:"line"`
}

// NormalizeInnateAttack fills in a fallback name and line the way the
// original's copy_innate_attack does, so a catalog row with a sparse
// innate_attack block still renders sensibly.
func NormalizeInnateAttack(raw AttackLine, fallbackName string) AttackLine {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		name = fallbackName
	}
	line := strings.TrimSpace(raw.Line)
	if line == "" {
		line = DefaultInnateAttackLine
	}
	return AttackLine{Name: name, PowerBase: raw.PowerBase, PowerPerLevel: raw.PowerPerLevel, Line: line}
}

// AIOverrides is the per-template AI cascade/tag customization a catalog
// row (or its metadata block) can carry.
type AIOverrides struct {
	PrefersRanged    bool
	HasPrefersRanged bool
	Cascade          map[string]float64
	Tags             []string
}

// MergeAIOverrides merges overrides from multiple sources (catalog
// metadata, explicit ai_overrides block, Lua script defaults), in the
// same precedence the original's resolve_monster_ai_overrides uses: the
// first source to set prefers_ranged wins, cascade keys are first-write-
// wins, tags are deduplicated in first-seen order.
func MergeAIOverrides(sources ...*AIOverrides) AIOverrides {
	merged := AIOverrides{Cascade: map[string]float64{}}
	seenTag := map[string]bool{}
	for _, src := range sources {
		if src == nil {
			continue
		}
		if src.HasPrefersRanged && !merged.HasPrefersRanged {
			merged.PrefersRanged = src.PrefersRanged
			merged.HasPrefersRanged = true
		}
		for k, v := range src.Cascade {
			if _, ok := merged.Cascade[k]; !ok {
				merged.Cascade[k] = v
			}
		}
		for _, tag := range src.Tags {
			if tag == "" || seenTag[tag] {
				continue
			}
			seenTag[tag] = true
			merged.Tags = append(merged.Tags, tag)
		}
	}
	if len(merged.Cascade) == 0 {
		merged.Cascade = nil
	}
	return merged
}

// Template is one monster catalog row.
type Template struct {
	MonsterID    string       `yaml:"monster_id"`
	Name         string       `yaml:"name"`
	Level        int          `yaml:"level"`
	HPMax        int          `yaml:"hp_max"`
	ArmourClass  int          `yaml:"armour_class"`
	SpawnYears   []int        `yaml:"spawn_years"`
	Spawnable    bool         `yaml:"spawnable"`
	Taunt        string       `yaml:"taunt"`
	Stats        player.Stats `yaml:"stats"`
	InnateAttack AttackLine   `yaml:"innate_attack"`
	ExpBonus     *int         `yaml:"exp_bonus"`
	IonsMin      *int         `yaml:"ions_min"`
	IonsMax      *int         `yaml:"ions_max"`
	RibletsMin   *int         `yaml:"riblets_min"`
	RibletsMax   *int         `yaml:"riblets_max"`
	Spells       []string     `yaml:"spells"`
	StarterArmour []string    `yaml:"starter_armour"`
	StarterItems []string     `yaml:"starter_items"`
	PoisonMelee  *bool        `yaml:"poison_melee"`
	PoisonBolt   *bool        `yaml:"poison_bolt"`
	Poisonous    *bool        `yaml:"poisonous"` // legacy; see ResolvePoisonFlags
	WakeOnEntry  *int         `yaml:"wake_on_entry"` // overrides CombatConfig.WakeOnEntryPct
	WakeOnLook   *int         `yaml:"wake_on_look"`  // overrides CombatConfig.WakeOnLookPct
	AIOverrides  *AIOverrides `yaml:"-"`
}

// InnateAttackLine returns the template's normalized attack line.
func (t *Template) InnateAttackLine() AttackLine {
	return NormalizeInnateAttack(t.InnateAttack, t.Name)
}

// ResolvePoisonFlags decides whether a template's melee/bolt attacks are
// poisonous. Explicit poison_melee/poison_bolt fields always win; the
// legacy poisonous flag is the fallback for either axis it didn't set
// explicitly. A template that sets poisonous alongside either explicit
// field is mixed input and gets a warning, not an error — the explicit
// fields still take precedence.
func ResolvePoisonFlags(t *Template, log *zap.Logger) (melee, bolt bool) {
	hasExplicit := t.PoisonMelee != nil || t.PoisonBolt != nil
	if t.Poisonous != nil && hasExplicit && log != nil {
		log.Warn("monster template mixes legacy poisonous flag with explicit poison fields",
			zap.String("monster_id", t.MonsterID))
	}

	melee = t.Poisonous != nil && *t.Poisonous
	bolt = melee
	if t.PoisonMelee != nil {
		melee = *t.PoisonMelee
	}
	if t.PoisonBolt != nil {
		bolt = *t.PoisonBolt
	}
	return melee, bolt
}

// Catalog is a monster_id-indexed set of templates.
type Catalog struct {
	byID map[string]*Template
}

// NewCatalog builds a Catalog from a slice of templates.
func NewCatalog(templates []*Template) *Catalog {
	c := &Catalog{byID: make(map[string]*Template, len(templates))}
	for _, tpl := range templates {
		if tpl.MonsterID == "" {
			continue
		}
		c.byID[tpl.MonsterID] = tpl
	}
	return c
}

// Get returns the template with the given monster_id, or nil.
func (c *Catalog) Get(monsterID string) *Template {
	return c.byID[monsterID]
}

// Len reports how many templates the catalog holds.
func (c *Catalog) Len() int { return len(c.byID) }
