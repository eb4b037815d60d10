package turn

import (
	"math/rand"
	"testing"

	"github.com/vindeiatrix/mutantsgo/internal/ai"
	"github.com/vindeiatrix/mutantsgo/internal/combat"
	"github.com/vindeiatrix/mutantsgo/internal/feedback"
	"github.com/vindeiatrix/mutantsgo/internal/items"
	"github.com/vindeiatrix/mutantsgo/internal/monster"
	"github.com/vindeiatrix/mutantsgo/internal/persist"
	"github.com/vindeiatrix/mutantsgo/internal/player"
	"github.com/vindeiatrix/mutantsgo/internal/world"
)

type schedMemStore struct {
	items map[string]persist.ItemInstanceRow
}

func newSchedMemStore() *schedMemStore { return &schedMemStore{items: map[string]persist.ItemInstanceRow{}} }
func (m *schedMemStore) Read(string) ([]byte, bool, error) { return nil, false, nil }
func (m *schedMemStore) Write(string, []byte) error        { return nil }
func (m *schedMemStore) Close() error                      { return nil }
func (m *schedMemStore) UpsertItemInstance(row persist.ItemInstanceRow) error {
	m.items[row.IID] = row
	return nil
}
func (m *schedMemStore) DeleteItemInstance(iid string) error { delete(m.items, iid); return nil }
func (m *schedMemStore) GetItemInstance(iid string) (persist.ItemInstanceRow, bool, error) {
	row, ok := m.items[iid]
	return row, ok, nil
}
func (m *schedMemStore) ListItemInstancesAt(year, x, y int) ([]persist.ItemInstanceRow, error) {
	var out []persist.ItemInstanceRow
	for _, row := range m.items {
		if row.OnGround() && row.Year == year && row.X == x && row.Y == y {
			out = append(out, row)
		}
	}
	return out, nil
}
func (m *schedMemStore) ListItemInstancesByOwner(owner string) ([]persist.ItemInstanceRow, error) {
	return nil, nil
}
func (m *schedMemStore) AllItemInstances() ([]persist.ItemInstanceRow, error) { return nil, nil }
func (m *schedMemStore) UpsertMonsterInstance(row persist.MonsterInstanceRow) error {
	return nil
}
func (m *schedMemStore) DeleteMonsterInstance(string) error { return nil }
func (m *schedMemStore) GetMonsterInstance(string) (persist.MonsterInstanceRow, bool, error) {
	return persist.MonsterInstanceRow{}, false, nil
}
func (m *schedMemStore) ListMonsterInstancesAt(int, int, int) ([]persist.MonsterInstanceRow, error) {
	return nil, nil
}
func (m *schedMemStore) AllMonsterInstances() ([]persist.MonsterInstanceRow, error) { return nil, nil }

var _ persist.Store = (*schedMemStore)(nil)

func schedTestCatalog() *items.Catalog {
	data := []byte(`
items:
  - id: sword
    name: Sword
    base_power_melee: 20
  - id: gem
    name: Gem
    convert_ions: 50
`)
	c, err := items.LoadCatalog(data)
	if err != nil {
		panic(err)
	}
	return c
}

func TestMonsterExternalAttackDamagesDefender(t *testing.T) {
	store := newSchedMemStore()
	catalog := schedTestCatalog()
	registry := items.NewRegistry(store, catalog, 12)
	bus := feedback.New()

	defender := &player.Profile{HP: player.HP{Current: 20, Max: 20}, Stats: player.Stats{Dex: 0}}
	ext := &MonsterExternal{
		Defender:  defender,
		Items:     registry,
		Catalog:   catalog,
		Bus:       bus,
		Mitigator: combat.GoMitigator{},
		RNG:       rand.New(rand.NewSource(1)),
	}

	inst := &monster.Instance{
		MonsterID:    "rat",
		Name:         "Rat",
		Stats:        player.Stats{Str: 10},
		InnateAttack: monster.AttackLine{PowerBase: 10},
	}

	ok := ext.Attack(inst, ai.AttackPlan{Source: combat.SourceInnate})
	if !ok {
		t.Fatal("expected Attack to report success")
	}
	if defender.HP.Current >= 20 {
		t.Fatalf("expected the defender to take damage, HP stayed at %d", defender.HP.Current)
	}
	lines := bus.Drain()
	if len(lines) != 1 || lines[0].Kind != feedback.CombatStrike {
		t.Fatalf("expected one COMBAT/STRIKE line, got %v", lines)
	}
}

func TestMonsterExternalAttackNilDefenderFails(t *testing.T) {
	ext := &MonsterExternal{}
	inst := &monster.Instance{}
	if ext.Attack(inst, ai.AttackPlan{Source: combat.SourceInnate}) {
		t.Fatal("expected Attack to fail without a defender")
	}
}

func TestMonsterExternalPickupMovesGroundItemIntoBag(t *testing.T) {
	store := newSchedMemStore()
	catalog := schedTestCatalog()
	registry := items.NewRegistry(store, catalog, 12)
	bus := feedback.New()

	ground, err := registry.Mint("sword", items.Position{Year: 2000}, "native", 0)
	if err != nil {
		t.Fatal(err)
	}

	ext := &MonsterExternal{Items: registry, Catalog: catalog, Bus: bus}
	inst := &monster.Instance{InstanceID: "mon-1", Pos: player.Position{Year: 2000}}

	if !ext.Pickup(inst) {
		t.Fatal("expected pickup to succeed with an item on the ground")
	}
	if len(inst.Bag) != 1 || inst.Bag[0] != ground.IID {
		t.Fatalf("expected the ground item to land in the bag, got %v", inst.Bag)
	}
}

func TestMonsterExternalPickupFailsOnEmptyGround(t *testing.T) {
	store := newSchedMemStore()
	catalog := schedTestCatalog()
	registry := items.NewRegistry(store, catalog, 12)
	ext := &MonsterExternal{Items: registry, Catalog: catalog}
	inst := &monster.Instance{InstanceID: "mon-1", Pos: player.Position{Year: 2000}}

	if ext.Pickup(inst) {
		t.Fatal("expected pickup to fail with nothing on the ground")
	}
}

func TestMonsterExternalConvertCreditsIonsAndRemovesItem(t *testing.T) {
	store := newSchedMemStore()
	catalog := schedTestCatalog()
	registry := items.NewRegistry(store, catalog, 12)
	bus := feedback.New()

	gem, err := registry.MintHeld("gem", "mon-1", "native", 0)
	if err != nil {
		t.Fatal(err)
	}
	inst := &monster.Instance{InstanceID: "mon-1", Bag: []string{gem.IID}}
	ext := &MonsterExternal{Items: registry, Catalog: catalog, Bus: bus}

	if !ext.Convert(inst) {
		t.Fatal("expected convert to succeed with an ion-valued item in the bag")
	}
	if len(inst.Bag) != 0 {
		t.Fatal("expected the converted item to be removed from the bag")
	}
	if inst.AIState.Ledger.Ions != 50 {
		t.Fatalf("expected 50 ions credited, got %d", inst.AIState.Ledger.Ions)
	}
	if _, ok, _ := store.GetItemInstance(gem.IID); ok {
		t.Fatal("expected the converted instance to be deleted")
	}
}

func TestMonsterExternalMoveStepsIntoOpenTile(t *testing.T) {
	grid := world.NewGrid()
	open := world.Edge{Base: "open"}
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			grid.SetTile(2000, x, y, world.Tile{Edges: map[world.Direction]world.Edge{
				world.North: open, world.South: open, world.East: open, world.West: open,
			}})
		}
	}
	ext := &MonsterExternal{Grid: grid, Dynamics: world.NewDynamics(), RNG: rand.New(rand.NewSource(1))}
	inst := &monster.Instance{Pos: player.Position{Year: 2000, X: 0, Y: 0}}

	if !ext.Move(inst) {
		t.Fatal("expected a move to succeed with open edges on every side")
	}
	if inst.Pos.X == 0 && inst.Pos.Y == 0 {
		t.Fatal("expected the monster's position to change after a move")
	}
}

func TestMonsterExternalMoveFailsSurroundedByBoundary(t *testing.T) {
	ext := &MonsterExternal{Grid: world.NewGrid(), Dynamics: world.NewDynamics(), RNG: rand.New(rand.NewSource(1))}
	inst := &monster.Instance{Pos: player.Position{Year: 2000}}

	if ext.Move(inst) {
		t.Fatal("expected a move surrounded by boundary edges to fail")
	}
}
