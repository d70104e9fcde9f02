package activity

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/morocco-events/backend/internal/models"
	"github.com/morocco-events/backend/pkg/database"
)

// Repository stores activity feed entries.
type Repository interface {
	Insert(ctx context.Context, a *models.Activity) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Activity, error)
}

// PostgresRepository handles activities persistence.
type PostgresRepository struct {
	db database.DBTX
}

// NewRepository creates an activity repository.
func NewRepository(db database.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert appends one entry.
func (r *PostgresRepository) Insert(ctx context.Context, a *models.Activity) error {
	const q = `INSERT INTO activities (id, user_id, event_id, event_title, type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.Exec(ctx, q, a.ID, a.UserID, a.EventID, a.EventTitle, string(a.Type), a.CreatedAt); err != nil {
		return fmt.Errorf("insert activity: %w", database.MapError(err))
	}
	return nil
}

// ListByUser returns the newest limit entries for userID, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Activity, error) {
	const q = `SELECT id, user_id, event_id, event_title, type, created_at
		FROM activities
		WHERE user_id = $1
		ORDER BY created_at DESC, seq DESC
		LIMIT $2`
	rows, err := r.db.Query(ctx, q, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()
	list := []models.Activity{}
	for rows.Next() {
		var a models.Activity
		var typ string
		if err := rows.Scan(&a.ID, &a.UserID, &a.EventID, &a.EventTitle, &typ, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		a.Type = models.ActivityType(typ)
		list = append(list, a)
	}
	return list, rows.Err()
}
