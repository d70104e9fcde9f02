// Package activity keeps the per-organizer feed of what happened to their events.
package activity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/morocco-events/backend/internal/models"
)

// Recorder writes feed entries on a best-effort basis: a failed insert is
// logged and never surfaces to the request that triggered it.
type Recorder struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewRecorder creates a recorder backed by repo.
func NewRecorder(repo Repository, logger *zap.Logger) *Recorder {
	return &Recorder{repo: repo, logger: logger, now: time.Now}
}

// SetClock replaces the time source.
func (r *Recorder) SetClock(now func() time.Time) { r.now = now }

// Record stores typ for e in userID's feed.
func (r *Recorder) Record(ctx context.Context, userID uuid.UUID, e *models.Event, typ models.ActivityType) {
	a := &models.Activity{
		ID:         uuid.New(),
		UserID:     userID,
		EventID:    e.ID,
		EventTitle: e.Title,
		Type:       typ,
		CreatedAt:  r.now().UTC(),
	}
	if err := r.repo.Insert(ctx, a); err != nil {
		r.logger.Warn("record activity",
			zap.String("type", string(typ)),
			zap.String("event_id", e.ID.String()),
			zap.Error(err),
		)
	}
}
