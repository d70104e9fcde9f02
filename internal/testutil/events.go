// Package testutil provides in-memory implementations of the repository
// interfaces for service and handler tests.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/morocco-events/backend/internal/events"
	"github.com/morocco-events/backend/internal/models"
	"github.com/morocco-events/backend/pkg/database"
)

// EventStore is an in-memory events.Repository.
type EventStore struct {
	mu     sync.Mutex
	events []models.Event
}

var _ events.Repository = (*EventStore)(nil)

// NewEventStore returns an empty store.
func NewEventStore() *EventStore { return &EventStore{} }

func (s *EventStore) indexOf(id uuid.UUID) int {
	for i := range s.events {
		if s.events[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *EventStore) Create(_ context.Context, e *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, x := range s.events {
		if x.ID == e.ID || x.Slug == e.Slug {
			return database.ErrDuplicate
		}
	}
	s.events = append(s.events, e.Clone())
	return nil
}

func (s *EventStore) GetByID(_ context.Context, id uuid.UUID) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, database.ErrNotFound
	}
	e := s.events[i].Clone()
	return &e, nil
}

func (s *EventStore) GetBySlug(_ context.Context, slug string) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, x := range s.events {
		if x.Slug == slug {
			e := x.Clone()
			return &e, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *EventStore) List(_ context.Context, f events.ListFilter) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Event{}
	for _, x := range s.events {
		if f.Status != "" && x.Status != f.Status {
			continue
		}
		if f.OwnerID != uuid.Nil && x.UserID != f.OwnerID {
			continue
		}
		out = append(out, x.Clone())
	}
	return out, nil
}

func (s *EventStore) Update(_ context.Context, e *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(e.ID)
	if i < 0 {
		return database.ErrNotFound
	}
	cur := s.events[i]
	next := e.Clone()
	next.Slug, next.Status, next.UserID, next.CreatedAt = cur.Slug, cur.Status, cur.UserID, cur.CreatedAt
	next.Subscribers = cur.Subscribers
	s.events[i] = next
	return nil
}

func (s *EventStore) UpdateStatus(_ context.Context, id uuid.UUID, to models.Status, at time.Time, guard events.StatusGuard) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, database.ErrNotFound
	}
	if guard != nil {
		if err := guard(s.events[i].Status); err != nil {
			return nil, err
		}
	}
	s.events[i].Status = to
	s.events[i].UpdatedAt = at
	e := s.events[i].Clone()
	return &e, nil
}

func (s *EventStore) AppendSubscriber(_ context.Context, sub *models.Subscriber) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(sub.EventID)
	if i < 0 {
		return database.ErrNotFound
	}
	s.events[i].Subscribers = append(s.events[i].Subscribers, *sub)
	return nil
}

// Notification is one call received by Notifier.
type Notification struct {
	EventID uuid.UUID
	Kind    string
	Count   int
	Status  models.Status
}

// Notifier records realtime notifications.
type Notifier struct {
	mu    sync.Mutex
	Calls []Notification
}

func (n *Notifier) SubscriberCount(eventID uuid.UUID, count int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Calls = append(n.Calls, Notification{EventID: eventID, Kind: "subscriber_count", Count: count})
}

func (n *Notifier) StatusChanged(eventID uuid.UUID, status models.Status) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Calls = append(n.Calls, Notification{EventID: eventID, Kind: "status_changed", Status: status})
}
