// Package sqlitestore implements persist.Store against a single SQLite
// database, migrated with goose the same way the teacher server migrates
// its Postgres schema — only the driver changes, from pgx to the pure-Go
// ncruces/go-sqlite3 driver, so the process stays cgo-free.
package sqlitestore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/pressly/goose/v3"

	"github.com/vindeiatrix/mutantsgo/internal/persist"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store is the SQLite persist.Store implementation.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn (a file path, or ":memory:"
// for tests) and migrates it to the latest schema version.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: open %s: %w", dsn, err)
	}
	db.SetMaxOpenConns(1) // sqlite: one writer at a time, same discipline as the teacher's pool-per-purpose split

	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(migrations)
	goose.SetTableName("schema_meta")
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("sqlitestore: set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("sqlitestore: run migrations: %w", err)
	}
	return nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// --- DocStore ---------------------------------------------------------

func (s *Store) Read(kind string) ([]byte, bool, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM documents WHERE kind = ?`, kind).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("sqlitestore: read %s: %w", kind, err)
	}
	return data, true, nil
}

func (s *Store) Write(kind string, data []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO documents (kind, data) VALUES (?, ?)
		ON CONFLICT(kind) DO UPDATE SET data = excluded.data
	`, kind, data)
	if err != nil {
		return fmt.Errorf("sqlitestore: write %s: %w", kind, err)
	}
	return nil
}

// --- ItemInstanceStore --------------------------------------------------

func (s *Store) UpsertItemInstance(row persist.ItemInstanceRow) error {
	createdAt := row.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Unix(0, 0).UTC()
	}
	_, err := s.db.Exec(`
		INSERT INTO items_instances
			(iid, item_id, year, x, y, owner, enchant, condition, charges, origin, drop_source, god_tier, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(iid) DO UPDATE SET
			item_id = excluded.item_id, year = excluded.year, x = excluded.x, y = excluded.y,
			owner = excluded.owner, enchant = excluded.enchant, condition = excluded.condition,
			charges = excluded.charges, origin = excluded.origin, drop_source = excluded.drop_source,
			god_tier = excluded.god_tier
	`, row.IID, row.ItemID, row.Year, row.X, row.Y, row.Owner, row.Enchant, row.Condition,
		row.Charges, row.Origin, row.DropSource, boolToInt(row.GodTier), createdAt)
	if err != nil {
		return fmt.Errorf("sqlitestore: upsert item instance %s: %w", row.IID, err)
	}
	return nil
}

func (s *Store) DeleteItemInstance(iid string) error {
	_, err := s.db.Exec(`DELETE FROM items_instances WHERE iid = ?`, iid)
	if err != nil {
		return fmt.Errorf("sqlitestore: delete item instance %s: %w", iid, err)
	}
	return nil
}

func (s *Store) GetItemInstance(iid string) (persist.ItemInstanceRow, bool, error) {
	row := s.db.QueryRow(`
		SELECT iid, item_id, year, x, y, owner, enchant, condition, charges, origin, drop_source, god_tier, created_at
		FROM items_instances WHERE iid = ?`, iid)
	out, err := scanItemRow(row)
	if err == sql.ErrNoRows {
		return persist.ItemInstanceRow{}, false, nil
	}
	if err != nil {
		return persist.ItemInstanceRow{}, false, fmt.Errorf("sqlitestore: get item instance %s: %w", iid, err)
	}
	return out, true, nil
}

func (s *Store) ListItemInstancesAt(year, x, y int) ([]persist.ItemInstanceRow, error) {
	rows, err := s.db.Query(`
		SELECT iid, item_id, year, x, y, owner, enchant, condition, charges, origin, drop_source, god_tier, created_at
		FROM items_instances WHERE year = ? AND x = ? AND y = ? AND owner = ''`, year, x, y)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: list item instances at (%d,%d,%d): %w", year, x, y, err)
	}
	defer rows.Close()
	return scanItemRows(rows)
}

func (s *Store) ListItemInstancesByOwner(owner string) ([]persist.ItemInstanceRow, error) {
	rows, err := s.db.Query(`
		SELECT iid, item_id, year, x, y, owner, enchant, condition, charges, origin, drop_source, god_tier, created_at
		FROM items_instances WHERE owner = ?`, owner)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: list item instances for owner %s: %w", owner, err)
	}
	defer rows.Close()
	return scanItemRows(rows)
}

func (s *Store) AllItemInstances() ([]persist.ItemInstanceRow, error) {
	rows, err := s.db.Query(`
		SELECT iid, item_id, year, x, y, owner, enchant, condition, charges, origin, drop_source, god_tier, created_at
		FROM items_instances`)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: list all item instances: %w", err)
	}
	defer rows.Close()
	return scanItemRows(rows)
}

func scanItemRows(rows *sql.Rows) ([]persist.ItemInstanceRow, error) {
	var out []persist.ItemInstanceRow
	for rows.Next() {
		row, err := scanItemRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItemRow(r rowScanner) (persist.ItemInstanceRow, error) {
	var row persist.ItemInstanceRow
	var godTier int
	err := r.Scan(&row.IID, &row.ItemID, &row.Year, &row.X, &row.Y, &row.Owner, &row.Enchant,
		&row.Condition, &row.Charges, &row.Origin, &row.DropSource, &godTier, &row.CreatedAt)
	row.GodTier = godTier != 0
	return row, err
}

// --- MonsterInstanceStore -----------------------------------------------

func (s *Store) UpsertMonsterInstance(row persist.MonsterInstanceRow) error {
	createdAt := row.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Unix(0, 0).UTC()
	}
	_, err := s.db.Exec(`
		INSERT INTO monsters_instances
			(instance_id, monster_id, year, x, y, hp_cur, hp_max, stats_json, target_player, ai_state_json, bag_json, timers_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(instance_id) DO UPDATE SET
			monster_id = excluded.monster_id, year = excluded.year, x = excluded.x, y = excluded.y,
			hp_cur = excluded.hp_cur, hp_max = excluded.hp_max, stats_json = excluded.stats_json,
			target_player = excluded.target_player, ai_state_json = excluded.ai_state_json,
			bag_json = excluded.bag_json, timers_json = excluded.timers_json
	`, row.InstanceID, row.MonsterID, row.Year, row.X, row.Y, row.HPCur, row.HPMax,
		row.StatsJSON, row.TargetPlayer, row.AIStateJSON, row.BagJSON, row.TimersJSON, createdAt)
	if err != nil {
		return fmt.Errorf("sqlitestore: upsert monster instance %s: %w", row.InstanceID, err)
	}
	return nil
}

func (s *Store) DeleteMonsterInstance(instanceID string) error {
	_, err := s.db.Exec(`DELETE FROM monsters_instances WHERE instance_id = ?`, instanceID)
	if err != nil {
		return fmt.Errorf("sqlitestore: delete monster instance %s: %w", instanceID, err)
	}
	return nil
}

func (s *Store) GetMonsterInstance(instanceID string) (persist.MonsterInstanceRow, bool, error) {
	row := s.db.QueryRow(`
		SELECT instance_id, monster_id, year, x, y, hp_cur, hp_max, stats_json, target_player, ai_state_json, bag_json, timers_json, created_at
		FROM monsters_instances WHERE instance_id = ?`, instanceID)
	out, err := scanMonsterRow(row)
	if err == sql.ErrNoRows {
		return persist.MonsterInstanceRow{}, false, nil
	}
	if err != nil {
		return persist.MonsterInstanceRow{}, false, fmt.Errorf("sqlitestore: get monster instance %s: %w", instanceID, err)
	}
	return out, true, nil
}

func (s *Store) ListMonsterInstancesAt(year, x, y int) ([]persist.MonsterInstanceRow, error) {
	rows, err := s.db.Query(`
		SELECT instance_id, monster_id, year, x, y, hp_cur, hp_max, stats_json, target_player, ai_state_json, bag_json, timers_json, created_at
		FROM monsters_instances WHERE year = ? AND x = ? AND y = ?`, year, x, y)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: list monster instances at (%d,%d,%d): %w", year, x, y, err)
	}
	defer rows.Close()
	return scanMonsterRows(rows)
}

func (s *Store) AllMonsterInstances() ([]persist.MonsterInstanceRow, error) {
	rows, err := s.db.Query(`
		SELECT instance_id, monster_id, year, x, y, hp_cur, hp_max, stats_json, target_player, ai_state_json, bag_json, timers_json, created_at
		FROM monsters_instances`)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: list all monster instances: %w", err)
	}
	defer rows.Close()
	return scanMonsterRows(rows)
}

func scanMonsterRows(rows *sql.Rows) ([]persist.MonsterInstanceRow, error) {
	var out []persist.MonsterInstanceRow
	for rows.Next() {
		row, err := scanMonsterRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func scanMonsterRow(r rowScanner) (persist.MonsterInstanceRow, error) {
	var row persist.MonsterInstanceRow
	err := r.Scan(&row.InstanceID, &row.MonsterID, &row.Year, &row.X, &row.Y, &row.HPCur, &row.HPMax,
		&row.StatsJSON, &row.TargetPlayer, &row.AIStateJSON, &row.BagJSON, &row.TimersJSON, &row.CreatedAt)
	return row, err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ persist.Store = (*Store)(nil)
