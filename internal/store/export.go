package store

import (
	"context"
)

// ExportAll returns the latest version of every key, ordered by key.
func (s *SQLiteStore) ExportAll(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT k.id, k.key, k.value, k.version, k.supersedes, k.created_at
		FROM kv k
		INNER JOIN (
			SELECT key, MAX(version) AS max_ver FROM kv GROUP BY key
		) latest ON k.key = latest.key AND k.version = latest.max_ver
		ORDER BY k.key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Import writes each entry's value as a new version of its key.
func (s *SQLiteStore) Import(ctx context.Context, entries []Entry) (int, error) {
	imported := 0
	for _, e := range entries {
		if e.Key == "" {
			continue
		}
		if _, err := s.put(ctx, e.Key, e.Value); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}
