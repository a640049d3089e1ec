package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T, opts ...Option) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"), opts...)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSetAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.Set(ctx, "alchemical-user", `{"name":"Seeker"}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := s.Get(ctx, "alchemical-user")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != `{"name":"Seeker"}` {
		t.Errorf("expected stored value, got %q", got)
	}
}

func TestGetMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestVersioning(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Set(ctx, "k", "v1")
	s.Set(ctx, "k", "v2")

	got, _ := s.Get(ctx, "k")
	if got != "v2" {
		t.Errorf("expected 'v2', got %q", got)
	}

	hist, err := s.History(ctx, "k")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(hist) != 2 {
		t.Fatalf("expected 2 versions, got %d", len(hist))
	}
	if hist[0].Version != 2 || hist[0].Value != "v2" {
		t.Errorf("expected newest first, got version %d %q", hist[0].Version, hist[0].Value)
	}
	if hist[0].Supersedes != hist[1].ID {
		t.Errorf("expected supersedes %q, got %q", hist[1].ID, hist[0].Supersedes)
	}
}

func TestHistoryPruned(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, WithHistory(2))

	for _, v := range []string{"a", "b", "c", "d"} {
		if err := s.Set(ctx, "k", v); err != nil {
			t.Fatalf("set %s: %v", v, err)
		}
	}

	hist, _ := s.History(ctx, "k")
	if len(hist) != 2 {
		t.Fatalf("expected 2 retained versions, got %d", len(hist))
	}
	if hist[0].Value != "d" || hist[1].Value != "c" {
		t.Errorf("expected d,c retained, got %q,%q", hist[0].Value, hist[1].Value)
	}
	if hist[0].Version != 4 {
		t.Errorf("expected version numbering to continue, got %d", hist[0].Version)
	}
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Set(ctx, "k", "v1")
	s.Set(ctx, "k", "v2")

	if err := s.Remove(ctx, "k"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after remove, got %v", err)
	}
	if _, err := s.History(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected no history after remove, got %v", err)
	}

	// Removing again is fine
	if err := s.Remove(ctx, "k"); err != nil {
		t.Errorf("remove missing: %v", err)
	}
}

func TestKeys(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Set(ctx, "b", "1")
	s.Set(ctx, "a", "1")
	s.Set(ctx, "a", "2")

	keys, err := s.Keys(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("expected [a b], got %v", keys)
	}
}

func TestPersistAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "test.db")

	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Set(ctx, "k", "kept")
	s.Close()

	s2, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	got, err := s2.Get(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if got != "kept" {
		t.Errorf("expected 'kept', got %q", got)
	}
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	src := newTestStore(t)

	src.Set(ctx, "alchemical-journals", "[]")
	src.Set(ctx, "alchemical-user", "v1")
	src.Set(ctx, "alchemical-user", "v2")

	entries, err := src.ExportAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 exported keys, got %d", len(entries))
	}
	if entries[1].Key != "alchemical-user" || entries[1].Value != "v2" {
		t.Errorf("expected latest user value, got %+v", entries[1])
	}

	dst := newTestStore(t)
	n, err := dst.Import(ctx, append(entries, Entry{Value: "no key"}))
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("expected 2 imported, got %d", n)
	}
	got, _ := dst.Get(ctx, "alchemical-user")
	if got != "v2" {
		t.Errorf("expected 'v2', got %q", got)
	}
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Set(ctx, "alchemical-journals", `[{"content":"felt angry at work"}]`)
	s.Set(ctx, "alchemical-dreams", `[{"dreamContent":"a locked door"}]`)
	s.Set(ctx, "rebel-results", `{"angry":"reactive"}`)

	results, err := s.Search(ctx, "angry", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	results, _ = s.Search(ctx, "dreams", 0)
	if len(results) != 1 || results[0].Key != "alchemical-dreams" {
		t.Errorf("expected key match, got %+v", results)
	}

	results, _ = s.Search(ctx, "angry", 1)
	if len(results) != 1 {
		t.Errorf("expected limit 1, got %d", len(results))
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	s.Set(ctx, "a", "short")
	s.Set(ctx, "a", "short2")
	s.Set(ctx, "b", "a much longer value")

	st, err := s.Stats(ctx, dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if st.TotalKeys != 2 {
		t.Errorf("expected 2 keys, got %d", st.TotalKeys)
	}
	if st.TotalVersions != 3 {
		t.Errorf("expected 3 versions, got %d", st.TotalVersions)
	}
	if st.Keys[0].Key != "b" {
		t.Errorf("expected largest value first, got %q", st.Keys[0].Key)
	}
	if st.Keys[1].Versions != 2 {
		t.Errorf("expected 2 versions of a, got %d", st.Keys[1].Versions)
	}
	if _, err := os.Stat(dbPath); err == nil && st.DBSizeBytes == 0 {
		t.Error("expected non-zero db size")
	}
}

type profile struct {
	Name     string `json:"name"`
	Crystals int    `json:"insightCrystals"`
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	kv := NewMemStore()

	if err := SetJSON(ctx, kv, "p", profile{Name: "Ada", Crystals: 3}); err != nil {
		t.Fatal(err)
	}
	got, err := GetJSON[profile](ctx, kv, "p")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Ada" || got.Crystals != 3 {
		t.Errorf("unexpected decode %+v", got)
	}

	if _, err := GetJSON[profile](ctx, kv, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	kv.Set(ctx, "bad", "{not json")
	_, err = GetJSON[profile](ctx, kv, "bad")
	if !errors.Is(err, ErrCorrupt) {
		t.Errorf("expected ErrCorrupt, got %v", err)
	}
}

func TestMemStore(t *testing.T) {
	ctx := context.Background()
	var kv KV = NewMemStore()

	if _, err := kv.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	kv.Set(ctx, "k", "1")
	kv.Set(ctx, "k", "2")
	if got, _ := kv.Get(ctx, "k"); got != "2" {
		t.Errorf("expected '2', got %q", got)
	}
	if n := kv.(*MemStore).Writes("k"); n != 2 {
		t.Errorf("expected 2 writes, got %d", n)
	}
	kv.Remove(ctx, "k")
	kv.Remove(ctx, "k")
	if _, err := kv.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after remove, got %v", err)
	}
}
