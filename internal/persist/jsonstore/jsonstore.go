// Package jsonstore implements persist.Store as a tree of JSON files under
// a state root, matching the on-disk layout spec.md §6.1 describes for the
// default backend: one file per document kind, the two instance lists kept
// as flat JSON arrays rewritten wholesale on every mutation. Writes are
// atomic: each document is written to a temp file in its own directory and
// renamed into place, so a crash mid-write never leaves a reader looking
// at a truncated file.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/vindeiatrix/mutantsgo/internal/persist"
)

// Store is the JSON-file persist.Store implementation.
type Store struct {
	root string

	mu    sync.Mutex
	items []persist.ItemInstanceRow
	mons  []persist.MonsterInstanceRow
}

// Open loads (or initializes) a Store rooted at dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("jsonstore: create root %s: %w", dir, err)
	}
	s := &Store{root: dir}

	items, err := readJSONSlice[persist.ItemInstanceRow](s.pathFor("items/instances.json"))
	if err != nil {
		return nil, err
	}
	s.items = items

	mons, err := readJSONSlice[persist.MonsterInstanceRow](s.pathFor("monsters/instances.json"))
	if err != nil {
		return nil, err
	}
	s.mons = mons

	return s, nil
}

// Close is a no-op: every write is already flushed to disk synchronously.
func (s *Store) Close() error { return nil }

// --- DocStore ---------------------------------------------------------

func (s *Store) Read(kind string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.pathFor(docPath(kind))
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("jsonstore: read %s: %w", kind, err)
	}
	return data, true, nil
}

func (s *Store) Write(kind string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return atomicWrite(s.pathFor(docPath(kind)), data)
}

// docPath maps a document kind to its file path, relative to the state
// root, following the layout spec.md §6.1 names explicitly.
func docPath(kind string) string {
	switch kind {
	case persist.KindItemsCatalog:
		return "items/catalog.json"
	case persist.KindMonstersCatalog:
		return "monsters/catalog.json"
	case persist.KindPlayerLive:
		return "playerlivestate.json"
	case persist.KindRuntimeKV:
		return "runtime/trace.json"
	case persist.KindWorldDynamics:
		return "world/dynamics.json"
	default:
		if year, ok := strings.CutPrefix(kind, "world_year:"); ok {
			return "world/" + year + ".json"
		}
		return "misc/" + kind + ".json"
	}
}

// --- ItemInstanceStore --------------------------------------------------

func (s *Store) UpsertItemInstance(row persist.ItemInstanceRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.items {
		if existing.IID == row.IID {
			s.items[i] = row
			return s.flushItems()
		}
	}
	s.items = append(s.items, row)
	return s.flushItems()
}

func (s *Store) DeleteItemInstance(iid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.items {
		if existing.IID == iid {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return s.flushItems()
		}
	}
	return nil
}

func (s *Store) GetItemInstance(iid string) (persist.ItemInstanceRow, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.items {
		if existing.IID == iid {
			return existing, true, nil
		}
	}
	return persist.ItemInstanceRow{}, false, nil
}

func (s *Store) ListItemInstancesAt(year, x, y int) ([]persist.ItemInstanceRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []persist.ItemInstanceRow
	for _, existing := range s.items {
		if existing.OnGround() && existing.Year == year && existing.X == x && existing.Y == y {
			out = append(out, existing)
		}
	}
	return out, nil
}

func (s *Store) ListItemInstancesByOwner(owner string) ([]persist.ItemInstanceRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []persist.ItemInstanceRow
	for _, existing := range s.items {
		if existing.Owner == owner {
			out = append(out, existing)
		}
	}
	return out, nil
}

func (s *Store) AllItemInstances() ([]persist.ItemInstanceRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]persist.ItemInstanceRow, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *Store) flushItems() error {
	return writeJSONSlice(s.pathFor("items/instances.json"), s.items)
}

// --- MonsterInstanceStore -----------------------------------------------

func (s *Store) UpsertMonsterInstance(row persist.MonsterInstanceRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.mons {
		if existing.InstanceID == row.InstanceID {
			s.mons[i] = row
			return s.flushMons()
		}
	}
	s.mons = append(s.mons, row)
	return s.flushMons()
}

func (s *Store) DeleteMonsterInstance(instanceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.mons {
		if existing.InstanceID == instanceID {
			s.mons = append(s.mons[:i], s.mons[i+1:]...)
			return s.flushMons()
		}
	}
	return nil
}

func (s *Store) GetMonsterInstance(instanceID string) (persist.MonsterInstanceRow, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.mons {
		if existing.InstanceID == instanceID {
			return existing, true, nil
		}
	}
	return persist.MonsterInstanceRow{}, false, nil
}

func (s *Store) ListMonsterInstancesAt(year, x, y int) ([]persist.MonsterInstanceRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []persist.MonsterInstanceRow
	for _, existing := range s.mons {
		if existing.Year == year && existing.X == x && existing.Y == y {
			out = append(out, existing)
		}
	}
	return out, nil
}

func (s *Store) AllMonsterInstances() ([]persist.MonsterInstanceRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]persist.MonsterInstanceRow, len(s.mons))
	copy(out, s.mons)
	return out, nil
}

func (s *Store) flushMons() error {
	return writeJSONSlice(s.pathFor("monsters/instances.json"), s.mons)
}

// --- file helpers --------------------------------------------------------

func (s *Store) pathFor(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(rel))
}

func readJSONSlice[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("jsonstore: read %s: %w", path, err)
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("jsonstore: decode %s: %w", path, err)
	}
	return out, nil
}

func writeJSONSlice[T any](path string, rows []T) error {
	if rows == nil {
		rows = []T{}
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	return atomicWrite(path, data)
}

func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("jsonstore: mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("jsonstore: create temp in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("jsonstore: write temp %s: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("jsonstore: sync temp %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("jsonstore: close temp %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("jsonstore: rename %s -> %s: %w", tmpPath, path, err)
	}
	return nil
}

var _ persist.Store = (*Store)(nil)
