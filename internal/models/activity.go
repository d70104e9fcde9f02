package models

import (
	"time"

	"github.com/google/uuid"
)

// ActivityType is the kind of entry in an organizer's activity feed.
type ActivityType string

const (
	ActivityEventCreated     ActivityType = "event_created"
	ActivityEventUpdated     ActivityType = "event_updated"
	ActivityEventApproved    ActivityType = "event_approved"
	ActivityEventRejected    ActivityType = "event_rejected"
	ActivitySubscriberJoined ActivityType = "subscriber_joined"
)

// Activity is one feed entry. UserID is the event owner who sees it.
type Activity struct {
	ID         uuid.UUID    `json:"id"`
	UserID     uuid.UUID    `json:"userId"`
	EventID    uuid.UUID    `json:"eventId"`
	EventTitle string       `json:"eventTitle"`
	Type       ActivityType `json:"type"`
	CreatedAt  time.Time    `json:"createdAt"`
}
