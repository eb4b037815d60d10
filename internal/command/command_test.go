package command

import (
	"github.com/vindeiatrix/mutantsgo/internal/config"
	"github.com/vindeiatrix/mutantsgo/internal/feedback"
	"github.com/vindeiatrix/mutantsgo/internal/items"
	"github.com/vindeiatrix/mutantsgo/internal/monster"
	"github.com/vindeiatrix/mutantsgo/internal/persist"
	"github.com/vindeiatrix/mutantsgo/internal/player"
	"github.com/vindeiatrix/mutantsgo/internal/world"
)

// memStore is a minimal in-memory persist.Store, the same shape the
// turn package's scheduler tests use, scoped down to what the command
// handlers under test actually touch.
type memStore struct {
	items    map[string]persist.ItemInstanceRow
	monsters map[string]persist.MonsterInstanceRow
}

func newMemStore() *memStore {
	return &memStore{
		items:    map[string]persist.ItemInstanceRow{},
		monsters: map[string]persist.MonsterInstanceRow{},
	}
}

func (m *memStore) Read(string) ([]byte, bool, error) { return nil, false, nil }
func (m *memStore) Write(string, []byte) error        { return nil }
func (m *memStore) Close() error                      { return nil }

func (m *memStore) UpsertItemInstance(row persist.ItemInstanceRow) error {
	m.items[row.IID] = row
	return nil
}
func (m *memStore) DeleteItemInstance(iid string) error { delete(m.items, iid); return nil }
func (m *memStore) GetItemInstance(iid string) (persist.ItemInstanceRow, bool, error) {
	row, ok := m.items[iid]
	return row, ok, nil
}
func (m *memStore) ListItemInstancesAt(year, x, y int) ([]persist.ItemInstanceRow, error) {
	var out []persist.ItemInstanceRow
	for _, row := range m.items {
		if row.OnGround() && row.Year == year && row.X == x && row.Y == y {
			out = append(out, row)
		}
	}
	return out, nil
}
func (m *memStore) ListItemInstancesByOwner(owner string) ([]persist.ItemInstanceRow, error) {
	var out []persist.ItemInstanceRow
	for _, row := range m.items {
		if row.Owner == owner {
			out = append(out, row)
		}
	}
	return out, nil
}
func (m *memStore) AllItemInstances() ([]persist.ItemInstanceRow, error) {
	out := make([]persist.ItemInstanceRow, 0, len(m.items))
	for _, row := range m.items {
		out = append(out, row)
	}
	return out, nil
}

func (m *memStore) UpsertMonsterInstance(row persist.MonsterInstanceRow) error {
	m.monsters[row.InstanceID] = row
	return nil
}
func (m *memStore) DeleteMonsterInstance(id string) error { delete(m.monsters, id); return nil }
func (m *memStore) GetMonsterInstance(id string) (persist.MonsterInstanceRow, bool, error) {
	row, ok := m.monsters[id]
	return row, ok, nil
}
func (m *memStore) ListMonsterInstancesAt(year, x, y int) ([]persist.MonsterInstanceRow, error) {
	var out []persist.MonsterInstanceRow
	for _, row := range m.monsters {
		if row.Year == year && row.X == x && row.Y == y {
			out = append(out, row)
		}
	}
	return out, nil
}
func (m *memStore) AllMonsterInstances() ([]persist.MonsterInstanceRow, error) {
	out := make([]persist.MonsterInstanceRow, 0, len(m.monsters))
	for _, row := range m.monsters {
		out = append(out, row)
	}
	return out, nil
}

var _ persist.Store = (*memStore)(nil)

func testItemCatalog(t interface{ Fatal(...any) }) *items.Catalog {
	data := []byte(`
items:
  - id: sword
    name: Sword
    base_power_melee: 20
    enchantable: true
  - id: gem
    name: Gem
    convert_ions: 50
    spawnable: true
  - id: key_devil
    name: Devil Key
    key: true
    key_type: devil
    spawnable: true
`)
	c, err := items.LoadCatalog(data)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func testMonsterCatalog() *monster.Catalog {
	return monster.NewCatalog([]*monster.Template{
		{MonsterID: "rat", Name: "Rat", Level: 1, HPMax: 10, Stats: player.Stats{Str: 5, Dex: 5}},
	})
}

func testConfig(t interface{ Fatal(...any) }) *config.Config {
	cfg, err := config.Load("/nonexistent-path-for-command-tests.toml")
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

// testContext builds a fully-wired Context with a fresh in-memory store,
// an active Warrior profile at (2000,0,0), and the small test catalogs
// above, ready for handler calls.
func testContext(t interface{ Fatal(...any) }) (*Context, *player.State) {
	store := newMemStore()
	itemCatalog := testItemCatalog(t)
	monCatalog := testMonsterCatalog()
	itemReg := items.NewRegistry(store, itemCatalog, 10)
	monReg := monster.NewRegistry(store, monCatalog, nil)

	state := player.NewState()
	state.EnsureCanonicalClasses(player.DefaultProfile)
	state.Active = player.Warrior
	p := state.ActiveProfile()
	p.Pos = player.Position{Year: 2000, X: 0, Y: 0}

	grid := world.NewGrid()
	dyn := world.NewDynamics()

	ctx := &Context{
		State:          state,
		Items:          itemReg,
		ItemCatalog:    itemCatalog,
		Monsters:       monReg,
		MonsterCatalog: monCatalog,
		Grid:           grid,
		Dynamics:       dyn,
		Bus:            feedback.New(),
		Cfg:            testConfig(t),
		Theme:          NoopThemer{},
	}
	return ctx, state
}
