package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Status is the moderation state of an event.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// IsPublic reports whether events in this status are shown to anonymous callers.
func (s Status) IsPublic() bool {
	return s == StatusApproved
}

// DefaultCategory is used when an event is created without one.
const DefaultCategory = "Other"

// Coordinates is a map position.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Subscriber is one registration of interest in an event. Never edited or removed.
type Subscriber struct {
	ID        uuid.UUID `json:"id"`
	EventID   uuid.UUID `json:"eventId"`
	Name      string    `json:"name"`
	WhatsApp  string    `json:"whatsapp"`
	CreatedAt time.Time `json:"createdAt"`
}

// Event is a listed cultural event.
type Event struct {
	ID          uuid.UUID    `json:"id"`
	Slug        string       `json:"slug"`
	Title       string       `json:"title"`
	Subtitle    string       `json:"subtitle"`
	Description string       `json:"description"`
	Image       string       `json:"image"`
	Images      []string     `json:"images"`
	StartDate   time.Time    `json:"startDate"`
	EndDate     time.Time    `json:"endDate"`
	City        string       `json:"city"`
	Location    string       `json:"location"`
	Category    string       `json:"category"`
	Organizer   string       `json:"organizer"`
	UserID      uuid.UUID    `json:"userId"`
	Status      Status       `json:"status"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Subscribers []Subscriber `json:"subscribers"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// SubscriberCount is the number of subscriptions recorded for the event.
func (e *Event) SubscriberCount() int {
	return len(e.Subscribers)
}

// Public returns the event with subscriber contact details removed.
func (e Event) Public() PublicEvent {
	n := len(e.Subscribers)
	e.Subscribers = []Subscriber{}
	return PublicEvent{Event: e, count: n}
}

// Clone returns a deep copy of the slices so callers can mutate freely.
func (e Event) Clone() Event {
	e.Images = append([]string{}, e.Images...)
	e.Subscribers = append([]Subscriber{}, e.Subscribers...)
	if e.Coordinates != nil {
		c := *e.Coordinates
		e.Coordinates = &c
	}
	return e
}

type eventJSON Event

// MarshalJSON adds subscriberCount and never emits null lists.
func (e Event) MarshalJSON() ([]byte, error) {
	if e.Images == nil {
		e.Images = []string{}
	}
	if e.Subscribers == nil {
		e.Subscribers = []Subscriber{}
	}
	return json.Marshal(struct {
		eventJSON
		SubscriberCount int `json:"subscriberCount"`
	}{eventJSON(e), len(e.Subscribers)})
}

// PublicEvent is an Event with the subscriber list redacted.
type PublicEvent struct {
	Event
	count int
}

// SubscriberCount is the count before redaction.
func (p PublicEvent) SubscriberCount() int { return p.count }

// MarshalJSON emits subscribers as [] and keeps the real count.
func (p PublicEvent) MarshalJSON() ([]byte, error) {
	e := p.Event
	if e.Images == nil {
		e.Images = []string{}
	}
	return json.Marshal(struct {
		eventJSON
		SubscriberCount int `json:"subscriberCount"`
	}{eventJSON(e), p.count})
}

// PublicEvents redacts every event of in.
func PublicEvents(in []Event) []PublicEvent {
	out := make([]PublicEvent, 0, len(in))
	for _, e := range in {
		out = append(out, e.Public())
	}
	return out
}
