package monster

import "gopkg.in/yaml.v3"

// rawAIOverrides is ai_overrides' on-disk shape — a sibling block next to
// a catalog row rather than a Template field, since AIOverrides itself
// also gets contributions from Lua (internal/scripting) that a catalog
// row can't express.
type rawAIOverrides struct {
	PrefersRanged *bool              `yaml:"prefers_ranged"`
	Cascade       map[string]float64 `yaml:"cascade"`
	Tags          []string           `yaml:"tags"`
}

func (r *rawAIOverrides) toAIOverrides() *AIOverrides {
	if r == nil {
		return nil
	}
	o := &AIOverrides{Cascade: r.Cascade, Tags: r.Tags}
	if r.PrefersRanged != nil {
		o.HasPrefersRanged = true
		o.PrefersRanged = *r.PrefersRanged
	}
	return o
}

type rawTemplate struct {
	Template       `yaml:",inline"`
	AIOverridesRaw *rawAIOverrides `yaml:"ai_overrides"`
}

// LoadCatalog parses a YAML catalog document of the shape
// {monsters: [{monster_id: ..., name: ..., ..., ai_overrides: {...}}, ...]}.
func LoadCatalog(data []byte) (*Catalog, error) {
	var doc struct {
		Monsters []*rawTemplate `yaml:"monsters"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	templates := make([]*Template, 0, len(doc.Monsters))
	for _, raw := range doc.Monsters {
		tpl := raw.Template
		tpl.AIOverrides = raw.AIOverridesRaw.toAIOverrides()
		templates = append(templates, &tpl)
	}
	return NewCatalog(templates), nil
}
