package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/morocco-events/backend/internal/models"
)

// ActivityStore is an in-memory activity.Repository.
type ActivityStore struct {
	mu   sync.Mutex
	list []models.Activity
}

// NewActivityStore returns an empty store.
func NewActivityStore() *ActivityStore { return &ActivityStore{} }

func (s *ActivityStore) Insert(_ context.Context, a *models.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = append(s.list, *a)
	return nil
}

func (s *ActivityStore) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]models.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Activity{}
	for i := len(s.list) - 1; i >= 0; i-- {
		if s.list[i].UserID == userID {
			out = append(out, s.list[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// All returns every stored entry in insertion order.
func (s *ActivityStore) All() []models.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Activity{}, s.list...)
}
