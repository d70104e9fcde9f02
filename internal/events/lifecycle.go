package events

import (
	"github.com/morocco-events/backend/internal/i18n"
	"github.com/morocco-events/backend/internal/models"
	"github.com/morocco-events/backend/pkg/apperr"
)

// transitions is the moderation state machine. Terminal states have no entry.
var transitions = map[models.Status][]models.Status{
	models.StatusPending: {models.StatusApproved, models.StatusRejected},
}

// ParseTargetStatus validates the status requested by a moderator.
func ParseTargetStatus(s string) (models.Status, error) {
	st := models.Status(s)
	if st != models.StatusApproved && st != models.StatusRejected {
		return "", apperr.New(apperr.KindInvalidStatus, i18n.ErrInvalidStatus)
	}
	return st, nil
}

// CanTransition reports whether from -> to is in the table.
func CanTransition(from, to models.Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// checkTransition returns InvalidTransition for moves outside the table.
func checkTransition(from, to models.Status) error {
	if !CanTransition(from, to) {
		return apperr.New(apperr.KindInvalidTransition, i18n.ErrInvalidTransition).
			WithDetails(map[string]string{"from": string(from), "to": string(to)})
	}
	return nil
}

func activityFor(st models.Status) models.ActivityType {
	if st == models.StatusApproved {
		return models.ActivityEventApproved
	}
	return models.ActivityEventRejected
}
