// Package config loads the TOML configuration for a mutantsgo process.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the top-level configuration tree, unmarshalled from TOML.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	State     StateConfig     `toml:"state"`
	Rates     RatesConfig     `toml:"rates"`
	Enchant   EnchantConfig   `toml:"enchant"`
	Character CharacterConfig `toml:"character"`
	Logging   LoggingConfig   `toml:"logging"`
	Combat    CombatConfig    `toml:"combat"`
}

// ServerConfig carries process-wide identity and the RNG seed.
type ServerConfig struct {
	Name      string `toml:"name"`
	StartTime int64  // set at boot, not from config
	RNGSeed   string `toml:"rng_seed"` // empty = generate and persist one
}

// StateConfig selects the persistence backend and its root.
type StateConfig struct {
	Backend string `toml:"backend"` // "json" | "sqlite"
	Root    string `toml:"root"`
	DSN     string `toml:"dsn"` // sqlite backend: path to mutants.db (defaults under Root)
}

// RatesConfig scales economic outcomes.
type RatesConfig struct {
	ExpRate  float64 `toml:"exp_rate"`
	DropRate float64 `toml:"drop_rate"`
}

// EnchantConfig controls the enchant level cap.
type EnchantConfig struct {
	MaxEnchantLevel int `toml:"max_enchant_level"`
}

// CharacterConfig controls the canonical class set.
type CharacterConfig struct {
	Classes []string `toml:"classes"`
}

// LoggingConfig selects zap's verbosity and encoder.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// CombatConfig holds the tunables the damage engine and monster AI read.
type CombatConfig struct {
	HealCostMultiplier   map[string]int `toml:"heal_cost_multiplier"`
	SpellCost            int            `toml:"spell_cost"`
	SpellSuccessPct      int            `toml:"spell_success_pct"`
	GroundCap            int            `toml:"ground_cap"`
	MinBoltDamage        int            `toml:"min_bolt_damage"`
	MinInnateDamage      int            `toml:"min_innate_damage"`
	WearPerHit           int            `toml:"wear_per_hit"`
	TravelCostPerCentury int            `toml:"travel_cost_per_century"`
	WakeOnEntryPct       int            `toml:"wake_on_entry_pct"`
	WakeOnLookPct        int            `toml:"wake_on_look_pct"`
	ReadyChancePct       int            `toml:"ready_chance_pct"`
}

// Load reads the TOML file at path, overlaying it onto defaults(). A
// missing file is not an error: the process boots on defaults alone.
func Load(path string) (*Config, error) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.Server.StartTime = time.Now().Unix()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Server.StartTime = time.Now().Unix()
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "mutantsgo",
		},
		State: StateConfig{
			Backend: "json",
			Root:    "./state",
		},
		Rates: RatesConfig{
			ExpRate:  1.0,
			DropRate: 1.0,
		},
		Enchant: EnchantConfig{
			MaxEnchantLevel: 10,
		},
		Character: CharacterConfig{
			Classes: []string{"Warrior", "Wizard", "Thief", "Priest"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Combat: CombatConfig{
			HealCostMultiplier: map[string]int{
				"warrior": 750,
				"priest":  750,
				"wizard":  1000,
				"thief":   200,
				"default": 200,
			},
			SpellCost:            100,
			SpellSuccessPct:      60,
			GroundCap:            12,
			MinBoltDamage:        6,
			MinInnateDamage:      6,
			WearPerHit:           5,
			TravelCostPerCentury: 3000,
			WakeOnEntryPct:       10,
			WakeOnLookPct:        15,
			ReadyChancePct:       5,
		},
	}
}

// Path resolves the config file path from MUTANTS_CONFIG, defaulting to
// config/mutants.toml.
func Path() string {
	if p := os.Getenv("MUTANTS_CONFIG"); p != "" {
		return p
	}
	return "config/mutants.toml"
}

// StateRoot resolves the state root from GAME_STATE_ROOT, falling back to
// the config value.
func StateRoot(cfg *Config) string {
	if r := os.Getenv("GAME_STATE_ROOT"); r != "" {
		return r
	}
	return cfg.State.Root
}

// StateBackend resolves the backend from MUTANTS_STATE_BACKEND, falling
// back to the config value.
func StateBackend(cfg *Config) string {
	if b := os.Getenv("MUTANTS_STATE_BACKEND"); b != "" {
		return b
	}
	return cfg.State.Backend
}
