package store

import (
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/cardfile.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen — should succeed and not re-migrate
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	// Running migrate again should be a no-op
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Documents
// ============================================================

type testDoc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestSaveAndLoad(t *testing.T) {
	s := newTestStore(t)

	in := testDoc{Name: "hello", Count: 3}
	if err := s.Save(DocTasks, in); err != nil {
		t.Fatal(err)
	}

	var out testDoc
	if err := s.Load(DocTasks, &out); err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Fatalf("expected %+v, got %+v", in, out)
	}
}

func TestLoadMissingLeavesDefault(t *testing.T) {
	s := newTestStore(t)

	out := testDoc{Name: "default", Count: 7}
	if err := s.Load("nope", &out); err != nil {
		t.Fatal(err)
	}
	if out.Name != "default" || out.Count != 7 {
		t.Fatalf("missing document should leave dest untouched, got %+v", out)
	}
}

func TestLoadCorruptLeavesDefault(t *testing.T) {
	s := newTestStore(t)

	_, err := s.db.Exec(
		`INSERT INTO documents (key, value, updated_at) VALUES (?, ?, ?)`,
		DocSprint, "{not json", time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		t.Fatal(err)
	}

	out := testDoc{Name: "default"}
	if err := s.Load(DocSprint, &out); err != nil {
		t.Fatalf("corrupt document should not error: %v", err)
	}
	if out.Name != "default" {
		t.Fatalf("corrupt document should leave dest untouched, got %+v", out)
	}
}

func TestLoadPartiallyValidLeavesDefault(t *testing.T) {
	s := newTestStore(t)

	// name decodes cleanly before count fails on the type mismatch; none
	// of it may leak into dest.
	_, err := s.db.Exec(
		`INSERT INTO documents (key, value, updated_at) VALUES (?, ?, ?)`,
		DocTasks, `{"name":"from-disk","count":"garbage"}`, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		t.Fatal(err)
	}

	out := testDoc{Name: "default", Count: 7}
	if err := s.Load(DocTasks, &out); err != nil {
		t.Fatalf("partially valid document should not error: %v", err)
	}
	if out.Name != "default" || out.Count != 7 {
		t.Fatalf("partially valid document must not leak fields into dest, got %+v", out)
	}
}

func TestLoadPartialDocumentKeepsDefaultFields(t *testing.T) {
	s := newTestStore(t)

	_, err := s.db.Exec(
		`INSERT INTO documents (key, value, updated_at) VALUES (?, ?, ?)`,
		DocConfig, `{"name":"saved"}`, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		t.Fatal(err)
	}

	out := testDoc{Name: "default", Count: 7}
	if err := s.Load(DocConfig, &out); err != nil {
		t.Fatal(err)
	}
	if out.Name != "saved" || out.Count != 7 {
		t.Fatalf("fields absent from the document should keep their defaults, got %+v", out)
	}
}

func TestSaveOverwrites(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save(DocDaily, testDoc{Name: "first"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(DocDaily, testDoc{Name: "second", Count: 2}); err != nil {
		t.Fatal(err)
	}

	var out testDoc
	if err := s.Load(DocDaily, &out); err != nil {
		t.Fatal(err)
	}
	if out.Name != "second" || out.Count != 2 {
		t.Fatalf("expected overwritten document, got %+v", out)
	}

	var count int
	s.db.QueryRow(`SELECT COUNT(*) FROM documents WHERE key = ?`, DocDaily).Scan(&count)
	if count != 1 {
		t.Fatalf("expected a single row after upsert, got %d", count)
	}
}

func TestUpdatedAt(t *testing.T) {
	s := newTestStore(t)

	ts, err := s.UpdatedAt(DocConfig)
	if err != nil {
		t.Fatal(err)
	}
	if !ts.IsZero() {
		t.Fatalf("missing document should report zero time, got %v", ts)
	}

	before := time.Now().UTC().Add(-time.Second)
	if err := s.Save(DocConfig, testDoc{Name: "cfg"}); err != nil {
		t.Fatal(err)
	}

	ts, err = s.UpdatedAt(DocConfig)
	if err != nil {
		t.Fatal(err)
	}
	if ts.Before(before) {
		t.Fatalf("updated_at %v earlier than save time %v", ts, before)
	}
}
