package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/desertthunder/memegacha/internal/models"
	"github.com/desertthunder/memegacha/internal/shared"
)

var (
	_ models.Storage = (*MemoryStorage)(nil)
	_ models.Storage = (*SQLiteStorage)(nil)
)

// MemoryStorage keeps values in a map guarded by a mutex.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
	writes int
}

// NewMemoryStorage creates an empty [MemoryStorage].
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	m.writes++
	return nil
}

// Writes returns the number of Set calls so far.
func (m *MemoryStorage) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

// SQLiteStorage stores values in the kv_store table.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage creates a new SQLiteStorage with the given database connection
func NewSQLiteStorage(db *sql.DB) *SQLiteStorage {
	return &SQLiteStorage{db: db}
}

// Get returns the value stored under key.
func (s *SQLiteStorage) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv_store WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: failed to read %s: %w", shared.ErrStorage, key, err)
	}
	return value, true, nil
}

// Set upserts the value stored under key.
func (s *SQLiteStorage) Set(key, value string) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := s.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", shared.ErrStorage, key, err)
	}
	return nil
}

// Delete removes key. Missing keys are not an error.
func (s *SQLiteStorage) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM kv_store WHERE key = ?", key); err != nil {
		return fmt.Errorf("%w: failed to delete %s: %w", shared.ErrStorage, key, err)
	}
	return nil
}
