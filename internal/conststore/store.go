package conststore

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/msto63/bigmath/foundation/core/errors"
	"github.com/msto63/bigmath/foundation/utils/mathx"
)

// Entry is a stored constant together with its bookkeeping columns
type Entry struct {
	mathx.StoredConstant
	ComputedAt time.Time
	RunID      string
}

// Store is a mathx.ConstantStore that can also list and prune its entries
type Store interface {
	mathx.ConstantStore

	List(ctx context.Context) ([]Entry, error)
	Delete(ctx context.Context, name string) (bool, error)
	RunID() string
	Close() error
}

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db    *sql.DB
	mu    sync.RWMutex
	runID string
}

var _ Store = (*SQLiteStore)(nil)

// Config holds configuration for the SQLite store
type Config struct {
	Path string
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Path: "./data/constants.db",
	}
}

// NewSQLiteStore opens or creates the database at cfg.Path
func NewSQLiteStore(cfg Config) (*SQLiteStore, error) {
	if cfg.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
			return nil, errors.Store("open", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, errors.Store("open", err)
	}
	// a single connection keeps ":memory:" databases alive across calls
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db, runID: uuid.NewString()}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, errors.Store("init", err)
	}
	return store, nil
}

// initSchema creates the necessary tables
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS constants (
		name TEXT PRIMARY KEY,
		digits INTEGER NOT NULL,
		value TEXT NOT NULL,
		computed_at DATETIME NOT NULL,
		run_id TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// RunID identifies the process that opened the store; it is written with
// every saved constant
func (s *SQLiteStore) RunID() string {
	return s.runID
}

// LoadConstants returns every stored constant
func (s *SQLiteStore) LoadConstants(ctx context.Context) ([]mathx.StoredConstant, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]mathx.StoredConstant, len(entries))
	for i, e := range entries {
		result[i] = e.StoredConstant
	}
	return result, nil
}

// SaveConstant upserts c. An existing entry with at least as many digits
// is kept.
func (s *SQLiteStore) SaveConstant(ctx context.Context, c mathx.StoredConstant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO constants (name, digits, value, computed_at, run_id)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			digits = excluded.digits,
			value = excluded.value,
			computed_at = excluded.computed_at,
			run_id = excluded.run_id
		WHERE excluded.digits > constants.digits
	`, c.Name, c.Digits, c.Value, time.Now().UTC(), s.runID)
	if err != nil {
		return errors.Store("save", err)
	}
	return nil
}

// List returns all entries ordered by name
func (s *SQLiteStore) List(ctx context.Context) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, digits, value, computed_at, run_id FROM constants ORDER BY name`)
	if err != nil {
		return nil, errors.Store("list", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Name, &e.Digits, &e.Value, &e.ComputedAt, &e.RunID); err != nil {
			return nil, errors.Store("list", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Store("list", err)
	}
	return entries, nil
}

// Delete removes the named constant and reports whether it existed
func (s *SQLiteStore) Delete(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM constants WHERE name = ?`, name)
	if err != nil {
		return false, errors.Store("delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Store("delete", err)
	}
	return n > 0, nil
}

// Vacuum compacts the database file
func (s *SQLiteStore) Vacuum(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, "VACUUM"); err != nil {
		return errors.Store("vacuum", err)
	}
	return nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// MemoryStore implements Store in memory
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
	runID   string
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]Entry),
		runID:   uuid.NewString(),
	}
}

// RunID identifies the store instance
func (s *MemoryStore) RunID() string {
	return s.runID
}

// LoadConstants returns every stored constant
func (s *MemoryStore) LoadConstants(ctx context.Context) ([]mathx.StoredConstant, error) {
	entries, _ := s.List(ctx)
	result := make([]mathx.StoredConstant, len(entries))
	for i, e := range entries {
		result[i] = e.StoredConstant
	}
	return result, nil
}

// SaveConstant stores c unless an entry with at least as many digits exists
func (s *MemoryStore) SaveConstant(ctx context.Context, c mathx.StoredConstant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.entries[c.Name]; ok && old.Digits >= c.Digits {
		return nil
	}
	s.entries[c.Name] = Entry{StoredConstant: c, ComputedAt: time.Now().UTC(), RunID: s.runID}
	return nil
}

// List returns all entries ordered by name
func (s *MemoryStore) List(ctx context.Context) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Delete removes the named constant and reports whether it existed
func (s *MemoryStore) Delete(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.entries[name]
	delete(s.entries, name)
	return ok, nil
}

// Close is a no-op
func (s *MemoryStore) Close() error {
	return nil
}
