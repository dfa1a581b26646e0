package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/passgen/passgen-go/internal/model"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

// HistoryRepository stores generation metadata in the generation_events table.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Record inserts event, assigning it a random ID when it has none.
func (r *HistoryRepository) Record(ctx context.Context, event *model.GenerationEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO generation_events (id, user_id, length, alphabet, count) VALUES (?, ?, ?, ?, ?)`,
		event.ID, event.AccountID, event.Length, event.Alphabet, event.Count,
	)
	return err
}

// ListByAccount returns the most recent events of an account, newest first.
func (r *HistoryRepository) ListByAccount(ctx context.Context, accountID int64, limit int) ([]model.GenerationEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, length, alphabet, count, created_at
		FROM generation_events WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`,
		accountID, clampLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.GenerationEvent
	for rows.Next() {
		var e model.GenerationEvent
		if err := rows.Scan(&e.ID, &e.AccountID, &e.Length, &e.Alphabet, &e.Count, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		return MaxHistoryLimit
	}
	return limit
}
