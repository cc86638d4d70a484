// Package draft persists in-progress form input across sessions so a
// half-filled create/edit form survives navigation and restarts.
package draft

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Key derives the storage key for a form draft. resourceID is empty for
// create-mode forms; user is the identity the caller got from config —
// never hardcoded here.
func Key(formKind, resourceID, user string) string {
	if resourceID == "" {
		return fmt.Sprintf("%sDraft_%s", formKind, user)
	}
	return fmt.Sprintf("%sDraft_%s_%s", formKind, resourceID, user)
}

// Store is a SQLite-backed key-value store of serialized form fields.
// Concurrent writers to the same key are last-write-wins.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Save upserts the draft under key. Fields are form-level string values;
// date fields are expected in their round-trippable text form already.
func (s *Store) Save(ctx context.Context, key string, fields map[string]string) error {
	payload, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encoding draft: %w", err)
	}
	query := `INSERT INTO drafts (key, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`
	if _, err := s.db.ExecContext(ctx, query, key, string(payload), time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("saving draft: %w", err)
	}
	return nil
}

// Load returns the stored fields, or nil when no draft exists. A corrupt
// payload is an error the caller surfaces as a toast, not a crash.
func (s *Store) Load(ctx context.Context, key string) (map[string]string, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM drafts WHERE key = ?`, key).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading draft: %w", err)
	}

	var fields map[string]string
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return nil, fmt.Errorf("decoding draft: %w", err)
	}
	return fields, nil
}

// Clear removes the draft. Clearing a missing key is a no-op.
func (s *Store) Clear(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM drafts WHERE key = ?`, key); err != nil {
		return fmt.Errorf("clearing draft: %w", err)
	}
	return nil
}

// Merge overlays a loaded draft onto fallback values: a field present in
// the draft wins, everything else keeps the fallback (the live record in
// edit mode, or the form defaults in create mode).
func Merge(draft, fallback map[string]string) map[string]string {
	merged := make(map[string]string, len(fallback)+len(draft))
	for k, v := range fallback {
		merged[k] = v
	}
	for k, v := range draft {
		merged[k] = v
	}
	return merged
}
