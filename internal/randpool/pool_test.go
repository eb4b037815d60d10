package randpool

import (
	"testing"

	"github.com/vindeiatrix/mutantsgo/internal/persist"
)

type memDocStore struct {
	docs map[string][]byte
}

func newMemDocStore() *memDocStore {
	return &memDocStore{docs: make(map[string][]byte)}
}

func (m *memDocStore) Read(kind string) ([]byte, bool, error) {
	data, ok := m.docs[kind]
	return data, ok, nil
}

func (m *memDocStore) Write(kind string, data []byte) error {
	cp := make([]byte, len(data))
	copy(cp, data)
	m.docs[kind] = cp
	return nil
}

var _ persist.DocStore = (*memDocStore)(nil)

func TestGetRNGDeterministicForSameTick(t *testing.T) {
	store := newMemDocStore()
	pool := New(store, "fixed-seed")

	r1, err := pool.GetRNG("monster:goblin-1")
	if err != nil {
		t.Fatalf("GetRNG: %v", err)
	}
	r2, err := pool.GetRNG("monster:goblin-1")
	if err != nil {
		t.Fatalf("GetRNG: %v", err)
	}

	for i := 0; i < 5; i++ {
		a, b := r1.Int63(), r2.Int63()
		if a != b {
			t.Fatalf("stream %q diverged on draw %d: %d != %d", "monster:goblin-1", i, a, b)
		}
	}
}

func TestGetRNGDiffersAcrossNames(t *testing.T) {
	store := newMemDocStore()
	pool := New(store, "fixed-seed")

	r1, err := pool.GetRNG("monster:goblin-1")
	if err != nil {
		t.Fatalf("GetRNG: %v", err)
	}
	r2, err := pool.GetRNG("monster:goblin-2")
	if err != nil {
		t.Fatalf("GetRNG: %v", err)
	}
	if r1.Int63() == r2.Int63() {
		t.Fatalf("expected distinct streams for distinct names")
	}
}

func TestAdvanceTickChangesStream(t *testing.T) {
	store := newMemDocStore()
	pool := New(store, "fixed-seed")

	before, err := pool.GetRNG("combat:strike")
	if err != nil {
		t.Fatalf("GetRNG: %v", err)
	}
	beforeDraw := before.Int63()

	tick, err := pool.AdvanceTick("combat:strike", 1)
	if err != nil {
		t.Fatalf("AdvanceTick: %v", err)
	}
	if tick != 1 {
		t.Fatalf("expected tick 1, got %d", tick)
	}

	after, err := pool.GetRNG("combat:strike")
	if err != nil {
		t.Fatalf("GetRNG: %v", err)
	}
	if after.Int63() == beforeDraw {
		t.Fatalf("expected stream to change after advancing tick")
	}
}

func TestAdvanceTickZeroIsNoop(t *testing.T) {
	store := newMemDocStore()
	pool := New(store, "fixed-seed")

	if _, err := pool.GetTick("idle"); err != nil {
		t.Fatalf("GetTick: %v", err)
	}
	tick, err := pool.AdvanceTick("idle", 0)
	if err != nil {
		t.Fatalf("AdvanceTick: %v", err)
	}
	if tick != 0 {
		t.Fatalf("expected tick to stay 0, got %d", tick)
	}
}

func TestAdvanceTickRejectsNegativeSteps(t *testing.T) {
	store := newMemDocStore()
	pool := New(store, "fixed-seed")

	if _, err := pool.AdvanceTick("idle", -1); err == nil {
		t.Fatalf("expected error for negative steps")
	}
}

func TestResetTickBackToZero(t *testing.T) {
	store := newMemDocStore()
	pool := New(store, "fixed-seed")

	if _, err := pool.AdvanceTick("loot", 3); err != nil {
		t.Fatalf("AdvanceTick: %v", err)
	}
	if err := pool.ResetTick("loot"); err != nil {
		t.Fatalf("ResetTick: %v", err)
	}
	tick, err := pool.GetTick("loot")
	if err != nil {
		t.Fatalf("GetTick: %v", err)
	}
	if tick != 0 {
		t.Fatalf("expected tick 0 after reset, got %d", tick)
	}
}

func TestStatePersistsAcrossPoolInstances(t *testing.T) {
	store := newMemDocStore()

	pool1 := New(store, "fixed-seed")
	if _, err := pool1.AdvanceTick("weather", 2); err != nil {
		t.Fatalf("AdvanceTick: %v", err)
	}

	pool2 := New(store, "fixed-seed")
	tick, err := pool2.GetTick("weather")
	if err != nil {
		t.Fatalf("GetTick: %v", err)
	}
	if tick != 2 {
		t.Fatalf("expected persisted tick 2, got %d", tick)
	}
}

func TestEmptyDefaultSeedGeneratesDistinctSeedsPerName(t *testing.T) {
	store := newMemDocStore()
	pool := New(store, "")

	r1, err := pool.GetRNG("alpha")
	if err != nil {
		t.Fatalf("GetRNG: %v", err)
	}
	r2, err := pool.GetRNG("beta")
	if err != nil {
		t.Fatalf("GetRNG: %v", err)
	}
	// Even with independently generated seeds, the name is folded into the
	// derivation, so draws should not coincide.
	if r1.Int63() == r2.Int63() {
		t.Fatalf("expected distinct draws for independently-seeded streams")
	}
}
