package sqlitestore

import (
	"context"
	"testing"

	"github.com/vindeiatrix/mutantsgo/internal/persist"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestDocRoundTrip(t *testing.T) {
	store := openTest(t)

	if _, ok, err := store.Read(persist.KindPlayerLive); err != nil || ok {
		t.Fatalf("expected missing document, got ok=%v err=%v", ok, err)
	}

	if err := store.Write(persist.KindPlayerLive, []byte(`{"class":"Wizard"}`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, ok, err := store.Read(persist.KindPlayerLive)
	if err != nil || !ok {
		t.Fatalf("Read: ok=%v err=%v", ok, err)
	}
	if string(data) != `{"class":"Wizard"}` {
		t.Fatalf("unexpected content: %s", data)
	}

	if err := store.Write(persist.KindPlayerLive, []byte(`{"class":"Thief"}`)); err != nil {
		t.Fatalf("overwrite Write: %v", err)
	}
	data, _, err = store.Read(persist.KindPlayerLive)
	if err != nil {
		t.Fatalf("Read after overwrite: %v", err)
	}
	if string(data) != `{"class":"Thief"}` {
		t.Fatalf("unexpected content after overwrite: %s", data)
	}
}

func TestItemInstanceCRUD(t *testing.T) {
	store := openTest(t)

	row := persist.ItemInstanceRow{IID: "iid-1", ItemID: "rusty_dagger", Year: 2000, X: 1, Y: 2}
	if err := store.UpsertItemInstance(row); err != nil {
		t.Fatalf("UpsertItemInstance: %v", err)
	}

	got, ok, err := store.GetItemInstance("iid-1")
	if err != nil || !ok {
		t.Fatalf("GetItemInstance: ok=%v err=%v", ok, err)
	}
	if got.ItemID != "rusty_dagger" {
		t.Fatalf("unexpected item id: %s", got.ItemID)
	}

	atGround, err := store.ListItemInstancesAt(2000, 1, 2)
	if err != nil || len(atGround) != 1 {
		t.Fatalf("ListItemInstancesAt: at=%v err=%v", atGround, err)
	}

	row.Owner = "player_warrior"
	if err := store.UpsertItemInstance(row); err != nil {
		t.Fatalf("UpsertItemInstance (owned): %v", err)
	}
	owned, err := store.ListItemInstancesByOwner("player_warrior")
	if err != nil || len(owned) != 1 {
		t.Fatalf("ListItemInstancesByOwner: owned=%v err=%v", owned, err)
	}

	if err := store.DeleteItemInstance("iid-1"); err != nil {
		t.Fatalf("DeleteItemInstance: %v", err)
	}
	if _, ok, err := store.GetItemInstance("iid-1"); err != nil || ok {
		t.Fatalf("expected item gone, ok=%v err=%v", ok, err)
	}
}

func TestMonsterInstanceCRUD(t *testing.T) {
	store := openTest(t)

	row := persist.MonsterInstanceRow{InstanceID: "mi-1", MonsterID: "goblin", Year: 2000, X: 3, Y: 4, HPMax: 10, HPCur: 10}
	if err := store.UpsertMonsterInstance(row); err != nil {
		t.Fatalf("UpsertMonsterInstance: %v", err)
	}

	at, err := store.ListMonsterInstancesAt(2000, 3, 4)
	if err != nil || len(at) != 1 {
		t.Fatalf("ListMonsterInstancesAt: at=%v err=%v", at, err)
	}

	if err := store.DeleteMonsterInstance("mi-1"); err != nil {
		t.Fatalf("DeleteMonsterInstance: %v", err)
	}
	if _, ok, err := store.GetMonsterInstance("mi-1"); err != nil || ok {
		t.Fatalf("expected monster gone, ok=%v err=%v", ok, err)
	}
}
