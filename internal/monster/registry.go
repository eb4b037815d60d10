package monster

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vindeiatrix/mutantsgo/internal/persist"
	"github.com/vindeiatrix/mutantsgo/internal/player"
)

// ErrUnknownTemplate is returned when Spawn is asked for a monster_id the
// catalog doesn't have.
var ErrUnknownTemplate = errors.New("monster: unknown template")

// ErrInstanceNotFound is returned when an operation names an instance id
// the store has no record of.
var ErrInstanceNotFound = errors.New("monster: instance not found")

// Registry is the monster instance store, layered over a Catalog for
// template lookups and a persist.Store for durability.
type Registry struct {
	store   persist.Store
	catalog *Catalog
	mint    func() string
}

// NewRegistry builds a Registry. mint generates instance ids; pass nil to
// use the default random-hex generator.
func NewRegistry(store persist.Store, catalog *Catalog, mint func() string) *Registry {
	if mint == nil {
		mint = defaultMintInstanceID
	}
	return &Registry{store: store, catalog: catalog, mint: mint}
}

// Spawn creates a new monster instance from templateID at pos.
func (r *Registry) Spawn(templateID string, pos player.Position) (*Instance, error) {
	tpl := r.catalog.Get(templateID)
	if tpl == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, templateID)
	}
	inst := &Instance{
		InstanceID:   r.mint(),
		MonsterID:    templateID,
		Name:         tpl.Name,
		Pos:          pos,
		HP:           player.HP{Current: tpl.HPMax, Max: tpl.HPMax},
		Stats:        tpl.Stats,
		Level:        tpl.Level,
		AIState:      AIState{Targets: map[string]TargetSnapshot{}},
		InnateAttack: tpl.InnateAttackLine(),
	}
	if err := r.save(inst); err != nil {
		return nil, err
	}
	return inst, nil
}

// Get loads a monster instance by id.
func (r *Registry) Get(instanceID string) (*Instance, error) {
	row, ok, err := r.store.GetMonsterInstance(instanceID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInstanceNotFound, instanceID)
	}
	return rowToInstance(row)
}

// ListAt returns every monster instance at (year, x, y).
func (r *Registry) ListAt(year, x, y int) ([]*Instance, error) {
	rows, err := r.store.ListMonsterInstancesAt(year, x, y)
	if err != nil {
		return nil, err
	}
	out := make([]*Instance, 0, len(rows))
	for _, row := range rows {
		inst, err := rowToInstance(row)
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	return out, nil
}

// Save persists inst, overwriting any existing record with the same id.
func (r *Registry) Save(inst *Instance) error {
	return r.save(inst)
}

// Kill removes a monster instance. Loot minting onto the ground (subject
// to items.Registry's ground-capacity enforcement) is the caller's
// responsibility — Kill only retires the instance record, matching the
// original's split between monster death bookkeeping and loot spawning.
func (r *Registry) Kill(instanceID string) error {
	return r.store.DeleteMonsterInstance(instanceID)
}

// All returns every monster instance in the store, for debug listing and
// target-sweep operations that can't key off a single tile.
func (r *Registry) All() ([]*Instance, error) {
	rows, err := r.store.AllMonsterInstances()
	if err != nil {
		return nil, err
	}
	out := make([]*Instance, 0, len(rows))
	for _, row := range rows {
		inst, err := rowToInstance(row)
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	return out, nil
}

// ClearTargetsFor drops playerID as the target of every monster instance
// that has it set; the class-menu handler calls it when the active player
// enters the menu, so monsters don't keep chasing a player who can't be hit.
func (r *Registry) ClearTargetsFor(playerID string) error {
	all, err := r.All()
	if err != nil {
		return err
	}
	for _, inst := range all {
		if inst.TargetPlayerID != playerID {
			continue
		}
		inst.TargetPlayerID = ""
		delete(inst.AIState.Targets, playerID)
		if err := r.save(inst); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) save(inst *Instance) error {
	row, err := instanceToRow(inst)
	if err != nil {
		return err
	}
	return r.store.UpsertMonsterInstance(row)
}

func instanceToRow(inst *Instance) (persist.MonsterInstanceRow, error) {
	statsJSON, err := json.Marshal(inst.Stats)
	if err != nil {
		return persist.MonsterInstanceRow{}, err
	}
	aiJSON, err := json.Marshal(inst.AIState)
	if err != nil {
		return persist.MonsterInstanceRow{}, err
	}
	bagJSON, err := json.Marshal(bagDoc{Bag: inst.Bag, ArmourSlot: inst.ArmourSlot, Name: inst.Name, Level: inst.Level, InnateAttack: inst.InnateAttack})
	if err != nil {
		return persist.MonsterInstanceRow{}, err
	}
	timersJSON, err := json.Marshal(inst.Timers)
	if err != nil {
		return persist.MonsterInstanceRow{}, err
	}
	return persist.MonsterInstanceRow{
		InstanceID:   inst.InstanceID,
		MonsterID:    inst.MonsterID,
		Year:         inst.Pos.Year,
		X:            inst.Pos.X,
		Y:            inst.Pos.Y,
		HPCur:        inst.HP.Current,
		HPMax:        inst.HP.Max,
		StatsJSON:    statsJSON,
		TargetPlayer: inst.TargetPlayerID,
		AIStateJSON:  aiJSON,
		BagJSON:      bagJSON,
		TimersJSON:   timersJSON,
	}, nil
}

// bagDoc carries the fields that don't have their own MonsterInstanceRow
// column, folded into BagJSON alongside the bag itself.
type bagDoc struct {
	Bag          []string   `json:"bag"`
	ArmourSlot   string     `json:"armour_slot"`
	Name         string     `json:"name"`
	Level        int        `json:"level"`
	InnateAttack AttackLine `json:"innate_attack"`
}

func rowToInstance(row persist.MonsterInstanceRow) (*Instance, error) {
	inst := &Instance{
		InstanceID:     row.InstanceID,
		MonsterID:      row.MonsterID,
		Pos:            player.Position{Year: row.Year, X: row.X, Y: row.Y},
		HP:             player.HP{Current: row.HPCur, Max: row.HPMax},
		TargetPlayerID: row.TargetPlayer,
	}
	if len(row.StatsJSON) > 0 {
		if err := json.Unmarshal(row.StatsJSON, &inst.Stats); err != nil {
			return nil, fmt.Errorf("monster: decode stats: %w", err)
		}
	}
	if len(row.AIStateJSON) > 0 {
		if err := json.Unmarshal(row.AIStateJSON, &inst.AIState); err != nil {
			return nil, fmt.Errorf("monster: decode ai state: %w", err)
		}
	}
	if inst.AIState.Targets == nil {
		inst.AIState.Targets = map[string]TargetSnapshot{}
	}
	if len(row.BagJSON) > 0 {
		var bag bagDoc
		if err := json.Unmarshal(row.BagJSON, &bag); err != nil {
			return nil, fmt.Errorf("monster: decode bag: %w", err)
		}
		inst.Bag = bag.Bag
		inst.ArmourSlot = bag.ArmourSlot
		inst.Name = bag.Name
		inst.Level = bag.Level
		inst.InnateAttack = bag.InnateAttack
	}
	if len(row.TimersJSON) > 0 {
		if err := json.Unmarshal(row.TimersJSON, &inst.Timers); err != nil {
			return nil, fmt.Errorf("monster: decode timers: %w", err)
		}
	}
	return inst, nil
}
