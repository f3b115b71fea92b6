package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"reflect"
	"time"
)

// Document keys used by the tracker. Collaborators agree on these names and
// on the JSON shapes stored under them.
const (
	DocTasks    = "tasks"
	DocDaily    = "daily"
	DocSprint   = "sprint"
	DocSessions = "sessions"
	DocConfig   = "config"
)

// Load unmarshals the document stored under key into dest. A missing document
// leaves dest untouched, so callers pre-fill dest with their default value.
// A document that fails to unmarshal is treated the same way: it will be
// overwritten wholesale on the next Save, which is how corrupt state heals.
func (s *Store) Load(key string, dest any) error {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM documents WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load document %q: %w: %v", key, ErrStorage, err)
	}

	// Decode into a copy of dest: json.Unmarshal mutates its target before
	// failing on a later field, so a partially valid document would leave
	// dest half-overwritten and the next Save would persist that state.
	scratch := reflect.New(reflect.TypeOf(dest).Elem())
	if seed, err := json.Marshal(dest); err == nil {
		json.Unmarshal(seed, scratch.Interface())
	}
	if err := json.Unmarshal([]byte(raw), scratch.Interface()); err != nil {
		// Corrupt document. Fall back to the caller's default.
		return nil
	}
	reflect.ValueOf(dest).Elem().Set(scratch.Elem())
	return nil
}

// Save marshals value and upserts it under key. The upsert is a single
// statement, so readers never observe a partially written document.
func (s *Store) Save(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal document %q: %w", key, err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec(
		`INSERT INTO documents (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(raw), now,
	)
	if err != nil {
		return fmt.Errorf("save document %q: %w: %v", key, ErrStorage, err)
	}
	return nil
}

// UpdatedAt reports when a document was last saved, or the zero time if the
// document does not exist.
func (s *Store) UpdatedAt(key string) (time.Time, error) {
	var raw string
	err := s.db.QueryRow(`SELECT updated_at FROM documents WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("document %q updated_at: %w: %v", key, ErrStorage, err)
	}
	t, _ := time.Parse(time.RFC3339, raw)
	return t, nil
}
