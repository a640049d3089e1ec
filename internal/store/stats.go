package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath        string     `json:"db_path"`
	DBSizeBytes   int64      `json:"db_size_bytes"`
	TotalKeys     int        `json:"total_keys"`
	TotalVersions int        `json:"total_versions"`
	Keys          []KeyStats `json:"keys"`
}

// KeyStats holds per-key counts.
type KeyStats struct {
	Key        string `json:"key"`
	Versions   int    `json:"versions"`
	ValueBytes int    `json:"value_bytes"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	// DB file size
	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM kv`).Scan(&st.TotalVersions); err != nil {
		return st, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT k.key, counts.n, LENGTH(k.value)
		FROM kv k
		INNER JOIN (
			SELECT key, COUNT(*) AS n, MAX(version) AS max_ver FROM kv GROUP BY key
		) counts ON k.key = counts.key AND k.version = counts.max_ver
		ORDER BY LENGTH(k.value) DESC`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var ks KeyStats
		if err := rows.Scan(&ks.Key, &ks.Versions, &ks.ValueBytes); err != nil {
			return st, err
		}
		st.Keys = append(st.Keys, ks)
	}
	st.TotalKeys = len(st.Keys)

	return st, rows.Err()
}
