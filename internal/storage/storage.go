package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// keyPrefix namespaces every record so unrelated data sharing the same
// database cannot collide with ours.
const keyPrefix = "task_tracker_"

// Well-known record keys. Per-user records append the owning user id.
const (
	keySession    = "current_user"
	keyUsers      = "users"
	keyTasks      = "tasks_"      // + user id
	keyWorkspaces = "workspaces_" // + user id
	keySettings   = "settings_"   // + user id
)

// Adapter is a namespaced JSON key-value store backed by a local SQLite
// database. All values are JSON-serialized on write and parsed on read.
// Failures at this boundary are logged and degrade to false/zero results;
// they are never propagated to callers.
type Adapter struct {
	db *sqlx.DB
}

// Open opens (or creates) the key-value database at dbPath, enables WAL
// mode, and runs any pending schema migrations. Parent directories are
// created as needed. Pass ":memory:" for an in-memory store.
func Open(dbPath string) (*Adapter, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	a := &Adapter{db: db}
	if err := a.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return a, nil
}

// Close closes the underlying database connection.
func (a *Adapter) Close() error {
	return a.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (a *Adapter) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := a.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = a.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := a.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// Set serializes value as JSON and stores it under the namespaced key.
// Returns false when serialization or the write fails.
func (a *Adapter) Set(key string, value any) bool {
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("storage: marshaling %q: %v", key, err)
		return false
	}

	_, err = a.db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		keyPrefix+key, string(data),
	)
	if err != nil {
		log.Printf("storage: writing %q: %v", key, err)
		return false
	}
	return true
}

// Get reads the namespaced key and unmarshals its JSON value into dest.
// Returns false when the key is absent or the stored value cannot be
// parsed; dest is left untouched in that case.
func (a *Adapter) Get(key string, dest any) bool {
	var raw string
	err := a.db.Get(&raw, "SELECT value FROM kv WHERE key = ?", keyPrefix+key)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if err != nil {
		log.Printf("storage: reading %q: %v", key, err)
		return false
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		log.Printf("storage: parsing %q: %v", key, err)
		return false
	}
	return true
}

// Remove deletes the namespaced key. Missing keys are a no-op.
func (a *Adapter) Remove(key string) {
	if _, err := a.db.Exec("DELETE FROM kv WHERE key = ?", keyPrefix+key); err != nil {
		log.Printf("storage: removing %q: %v", key, err)
	}
}

// Clear removes every record under our namespace prefix.
func (a *Adapter) Clear() {
	if _, err := a.db.Exec("DELETE FROM kv WHERE key LIKE ?", keyPrefix+"%"); err != nil {
		log.Printf("storage: clearing namespace: %v", err)
	}
}
