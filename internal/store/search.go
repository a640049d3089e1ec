package store

import (
	"context"
)

// Search returns the latest entries whose key or value contains query.
func (s *SQLiteStore) Search(ctx context.Context, query string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	like := "%" + query + "%"

	rows, err := s.db.QueryContext(ctx, `
		SELECT k.id, k.key, k.value, k.version, k.supersedes, k.created_at
		FROM kv k
		INNER JOIN (
			SELECT key, MAX(version) AS max_ver FROM kv GROUP BY key
		) latest ON k.key = latest.key AND k.version = latest.max_ver
		WHERE k.key LIKE ? OR k.value LIKE ?
		ORDER BY k.created_at DESC
		LIMIT ?`, like, like, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}
