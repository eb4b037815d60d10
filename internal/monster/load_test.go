package monster

import "testing"

func TestLoadCatalogParsesTemplatesAndAIOverrides(t *testing.T) {
	doc := []byte(`
monsters:
  - monster_id: rat
    name: Giant Rat
    level: 1
    hp_max: 12
    armour_class: 2
    spawn_years: [0, 2000]
    taunt: "The rat bares its teeth!"
    innate_attack:
      name: bite
      power_base: 2
      power_per_level: 1
    ai_overrides:
      prefers_ranged: false
      cascade:
        ATTACK: 60
      tags: [vermin]
  - monster_id: wraith
    name: Wraith
    level: 5
    hp_max: 40
`)
	cat, err := LoadCatalog(doc)
	if err != nil {
		t.Fatal(err)
	}

	rat := cat.Get("rat")
	if rat == nil {
		t.Fatal("expected rat template to load")
	}
	if rat.HPMax != 12 || rat.Level != 1 {
		t.Fatalf("expected hp_max/level to parse, got %+v", rat)
	}
	if rat.AIOverrides == nil {
		t.Fatal("expected ai_overrides to parse")
	}
	if rat.AIOverrides.Cascade["ATTACK"] != 60 {
		t.Fatalf("expected cascade override to parse, got %v", rat.AIOverrides.Cascade)
	}
	if len(rat.AIOverrides.Tags) != 1 || rat.AIOverrides.Tags[0] != "vermin" {
		t.Fatalf("expected tags to parse, got %v", rat.AIOverrides.Tags)
	}
	if !rat.AIOverrides.HasPrefersRanged || rat.AIOverrides.PrefersRanged {
		t.Fatalf("expected explicit prefers_ranged=false to be recorded, got %+v", rat.AIOverrides)
	}

	wraith := cat.Get("wraith")
	if wraith == nil {
		t.Fatal("expected wraith template to load")
	}
	if wraith.AIOverrides != nil {
		t.Fatalf("expected no ai_overrides block to leave AIOverrides nil, got %+v", wraith.AIOverrides)
	}
}
