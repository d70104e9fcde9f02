// Package dashboard aggregates an organizer's events into subscriber exports,
// analytics and the activity feed.
package dashboard

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/morocco-events/backend/internal/events"
	"github.com/morocco-events/backend/internal/models"
	"github.com/morocco-events/backend/pkg/apperr"
)

const (
	// DefaultActivityLimit and MaxActivityLimit bound the feed page size.
	DefaultActivityLimit = 20
	MaxActivityLimit     = 100
	// AnalyticsDays is the length of the subscriptionsByDay series.
	AnalyticsDays = 30
)

// EventSource is the subset of events.Service the dashboard reads.
type EventSource interface {
	List(ctx context.Context, q events.Query) ([]models.Event, error)
	Get(ctx context.Context, id, callerID uuid.UUID, role models.Role) (*models.Event, error)
}

// ActivitySource lists feed entries, newest first.
type ActivitySource interface {
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Activity, error)
}

// SubscriberRow is one subscriber with the event it belongs to.
type SubscriberRow struct {
	ID         uuid.UUID `json:"id"`
	EventID    uuid.UUID `json:"eventId"`
	EventTitle string    `json:"eventTitle"`
	Name       string    `json:"name"`
	WhatsApp   string    `json:"whatsapp"`
	CreatedAt  time.Time `json:"createdAt"`
}

// SubscriberFilter narrows the subscriber export.
type SubscriberFilter struct {
	EventID uuid.UUID
	Search  string
}

// StatusCounts is the number of events per moderation status.
type StatusCounts struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// EventCount is the subscriber total of one event.
type EventCount struct {
	EventID uuid.UUID `json:"eventId"`
	Title   string    `json:"title"`
	Count   int       `json:"count"`
}

// DayCount is the number of subscriptions on one UTC day.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Analytics summarises the caller's events.
type Analytics struct {
	TotalEvents         int          `json:"totalEvents"`
	ByStatus            StatusCounts `json:"byStatus"`
	TotalSubscribers    int          `json:"totalSubscribers"`
	UpcomingEvents      int          `json:"upcomingEvents"`
	SubscribersPerEvent []EventCount `json:"subscribersPerEvent"`
	SubscriptionsByDay  []DayCount   `json:"subscriptionsByDay"`
}

// Service computes dashboard views for the caller's events.
type Service struct {
	events   EventSource
	activity ActivitySource
	now      func() time.Time
}

// NewService creates a dashboard service.
func NewService(ev EventSource, activity ActivitySource) *Service {
	return &Service{events: ev, activity: activity, now: time.Now}
}

// SetClock replaces the time source.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

func (s *Service) owned(ctx context.Context, callerID uuid.UUID) ([]models.Event, error) {
	return s.events.List(ctx, events.Query{Audience: events.AudienceOwner, CallerID: callerID})
}

// Subscribers returns the subscribers of the caller's events, newest first.
// A filter on one event requires the caller to own it (or be an admin).
func (s *Service) Subscribers(ctx context.Context, callerID uuid.UUID, role models.Role, f SubscriberFilter) ([]SubscriberRow, error) {
	var list []models.Event
	if f.EventID != uuid.Nil {
		e, err := s.events.Get(ctx, f.EventID, callerID, role)
		if err != nil {
			return nil, err
		}
		list = []models.Event{*e}
	} else {
		var err error
		if list, err = s.owned(ctx, callerID); err != nil {
			return nil, err
		}
	}

	term := strings.ToLower(strings.TrimSpace(f.Search))
	rows := []SubscriberRow{}
	for _, e := range list {
		for _, sub := range e.Subscribers {
			if term != "" && !strings.Contains(strings.ToLower(sub.Name), term) && !strings.Contains(sub.WhatsApp, term) {
				continue
			}
			rows = append(rows, SubscriberRow{
				ID:         sub.ID,
				EventID:    e.ID,
				EventTitle: e.Title,
				Name:       sub.Name,
				WhatsApp:   sub.WhatsApp,
				CreatedAt:  sub.CreatedAt,
			})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	return rows, nil
}

// Analytics summarises the caller's events as of now.
func (s *Service) Analytics(ctx context.Context, callerID uuid.UUID) (*Analytics, error) {
	list, err := s.owned(ctx, callerID)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	first := today.AddDate(0, 0, -(AnalyticsDays - 1))

	a := &Analytics{
		TotalEvents:         len(list),
		SubscribersPerEvent: make([]EventCount, 0, len(list)),
		SubscriptionsByDay:  make([]DayCount, AnalyticsDays),
	}
	for i := range a.SubscriptionsByDay {
		a.SubscriptionsByDay[i].Date = first.AddDate(0, 0, i).Format(time.DateOnly)
	}
	for _, e := range list {
		switch e.Status {
		case models.StatusPending:
			a.ByStatus.Pending++
		case models.StatusApproved:
			a.ByStatus.Approved++
		case models.StatusRejected:
			a.ByStatus.Rejected++
		}
		if e.StartDate.After(now) {
			a.UpcomingEvents++
		}
		a.TotalSubscribers += e.SubscriberCount()
		a.SubscribersPerEvent = append(a.SubscribersPerEvent, EventCount{EventID: e.ID, Title: e.Title, Count: e.SubscriberCount()})
		for _, sub := range e.Subscribers {
			at := sub.CreatedAt.UTC()
			if at.Before(first) || !at.Before(today.AddDate(0, 0, 1)) {
				continue
			}
			a.SubscriptionsByDay[int(at.Sub(first)/(24*time.Hour))].Count++
		}
	}
	return a, nil
}

// Activity returns the caller's feed. limit <= 0 means the default; larger than the maximum is clamped.
func (s *Service) Activity(ctx context.Context, callerID uuid.UUID, limit int) ([]models.Activity, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	if limit > MaxActivityLimit {
		limit = MaxActivityLimit
	}
	list, err := s.activity.ListByUser(ctx, callerID, limit)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if list == nil {
		list = []models.Activity{}
	}
	return list, nil
}
