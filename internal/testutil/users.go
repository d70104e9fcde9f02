package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/morocco-events/backend/internal/models"
	"github.com/morocco-events/backend/pkg/database"
)

// UserStore is an in-memory auth.UserRepository.
type UserStore struct {
	mu    sync.Mutex
	users []models.User
}

// NewUserStore returns an empty store.
func NewUserStore() *UserStore { return &UserStore{} }

func (s *UserStore) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, x := range s.users {
		if strings.EqualFold(x.Email, u.Email) {
			return database.ErrDuplicate
		}
	}
	s.users = append(s.users, *u)
	return nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, x := range s.users {
		if strings.EqualFold(x.Email, email) {
			u := x
			return &u, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *UserStore) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, x := range s.users {
		if x.ID == id {
			u := x
			return &u, nil
		}
	}
	return nil, database.ErrNotFound
}
