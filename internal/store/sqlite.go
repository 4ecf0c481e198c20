package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/maxfalkovich/web-lab4-weather/internal/locations"
)

// stateKey is the single key the location list lives under. Versioned so a
// future payload change can migrate by switching keys.
const stateKey = "weather-app-state-v1"

// PersistedState is the payload written to storage: the primary location
// plus the ordered list of additional cities. Weather snapshots are
// transient and never persisted.
type PersistedState struct {
	Primary *locations.Location  `json:"primary"`
	Cities  []locations.Location `json:"cities"`
}

// StateStore persists the location list between runs. Storage is treated as
// last-write-wins; restore failures are absorbed silently.
type StateStore interface {
	Save(state PersistedState) error
	Restore() PersistedState
	Close() error
}

// SQLiteStore implements StateStore on a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the state database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS app_state (
		key TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create app_state table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save overwrites the persisted location list.
func (s *SQLiteStore) Save(state PersistedState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO app_state(key, payload, updated_at)
		VALUES(?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
		payload=excluded.payload,
		updated_at=CURRENT_TIMESTAMP
	`, stateKey, string(payload))
	if err != nil {
		return fmt.Errorf("failed to persist state: %w", err)
	}
	return nil
}

// Restore reads the persisted location list. An absent row or a payload that
// no longer parses yields the empty state; no error is surfaced.
func (s *SQLiteStore) Restore() PersistedState {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM app_state WHERE key = ?`, stateKey).Scan(&payload)
	if err != nil {
		return PersistedState{}
	}

	var state PersistedState
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		return PersistedState{}
	}
	return state
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
