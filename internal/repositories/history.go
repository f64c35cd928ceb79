package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/memegacha/internal/models"
	"github.com/desertthunder/memegacha/internal/shared"
)

// HistoryRepository appends roller actions to roll_history.
type HistoryRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewHistoryRepository creates a new HistoryRepository with the given database connection
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db, now: time.Now}
}

// Record inserts one action. Resets carry the freshly picked title; a reset of an empty catalog has none and is
// stored with a NULL title.
func (r *HistoryRepository) Record(action models.HistoryAction, title string) error {
	query := `
		INSERT INTO roll_history (id, action, title, created_at)
		VALUES (?, ?, ?, ?)
	`

	if _, err := r.db.Exec(query, shared.GenerateID(), string(action), sql.NullString{String: title, Valid: title != ""}, r.now().UTC()); err != nil {
		return fmt.Errorf("failed to record %s: %w", action, err)
	}
	return nil
}

// List returns up to limit entries, newest first. A non-positive limit returns everything.
func (r *HistoryRepository) List(limit int) ([]models.HistoryEntry, error) {
	query := `
		SELECT id, action, COALESCE(title, ''), created_at
		FROM roll_history
		ORDER BY created_at DESC, rowid DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var (
			e      models.HistoryEntry
			action string
		)
		if err := rows.Scan(&e.ID, &action, &e.Title, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		e.Action = models.HistoryAction(action)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}

	return entries, nil
}

// Clear deletes every entry.
func (r *HistoryRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM roll_history"); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
