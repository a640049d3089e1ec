package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

// DefaultHistory is how many versions of each key are retained.
const DefaultHistory = 5

// SQLiteStore implements KV using SQLite. Every Set writes a new version
// row; older versions beyond the history limit are pruned.
type SQLiteStore struct {
	db      *sql.DB
	history int

	mu      sync.Mutex
	entropy *rand.Rand
}

// Option configures a SQLiteStore.
type Option func(*SQLiteStore)

// WithHistory sets how many versions per key are retained (minimum 1).
func WithHistory(n int) Option {
	return func(s *SQLiteStore) {
		if n < 1 {
			n = 1
		}
		s.history = n
	}
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string, opts ...Option) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		history: DefaultHistory,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		id          TEXT PRIMARY KEY,
		key         TEXT NOT NULL,
		value       TEXT NOT NULL,
		version     INTEGER NOT NULL DEFAULT 1,
		supersedes  TEXT,
		created_at  TEXT NOT NULL
	);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_kv_key_version ON kv(key, version);
	CREATE INDEX IF NOT EXISTS idx_kv_created ON kv(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE key = ? ORDER BY version DESC LIMIT 1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	_, err := s.put(ctx, key, value)
	return err
}

// put writes a new version of key and returns the stored entry.
func (s *SQLiteStore) put(ctx context.Context, key, value string) (*Entry, error) {
	now := time.Now().UTC()
	id := s.newID()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Check for existing latest version
	var prevID string
	var prevVersion int
	err = tx.QueryRowContext(ctx,
		`SELECT id, version FROM kv WHERE key = ? ORDER BY version DESC LIMIT 1`,
		key).Scan(&prevID, &prevVersion)

	version := 1
	var supersedes *string
	if err == nil {
		version = prevVersion + 1
		supersedes = &prevID
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO kv (id, key, value, version, supersedes, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, key, value, version, supersedes, now.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", key, err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM kv WHERE key = ? AND version <= ?`, key, version-s.history); err != nil {
		return nil, fmt.Errorf("prune %s: %w", key, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	e := &Entry{
		ID:        id,
		Key:       key,
		Value:     value,
		Version:   version,
		CreatedAt: now,
	}
	if supersedes != nil {
		e.Supersedes = *supersedes
	}
	return e, nil
}

func (s *SQLiteStore) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	return err
}

// History returns the retained versions of key, newest first.
func (s *SQLiteStore) History(ctx context.Context, key string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, key, value, version, supersedes, created_at
		 FROM kv WHERE key = ? ORDER BY version DESC`, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return entries, nil
}

// Keys lists every key that currently has a value, sorted.
func (s *SQLiteStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT key FROM kv ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row scanner) (Entry, error) {
	var e Entry
	var supersedes sql.NullString
	var createdAt string

	if err := row.Scan(&e.ID, &e.Key, &e.Value, &e.Version, &supersedes, &createdAt); err != nil {
		return e, err
	}
	e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	if supersedes.Valid {
		e.Supersedes = supersedes.String
	}
	return e, nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
