package events

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/morocco-events/backend/internal/models"
)

// Audience selects the visibility gate applied before any filter.
type Audience int

const (
	// AudiencePublic sees approved events only.
	AudiencePublic Audience = iota
	// AudienceOwner sees the caller's own events in any status.
	AudienceOwner
	// AudienceModeration sees the pending queue.
	AudienceModeration
)

// Sort policies accepted in sortBy.
const (
	SortNewest   = "newest"
	SortClosest  = "closest"
	SortUpcoming = "upcoming"
	SortPopular  = "popular"
)

// Query describes one listing request.
type Query struct {
	Audience Audience
	CallerID uuid.UUID
	Search   string
	City     string
	Category string
	SortBy   string
}

// Apply runs the visibility gate, the search, city and category filters and
// then the sort, in that order. in is not modified. Ties keep input order.
func Apply(in []models.Event, q Query, now time.Time) []models.Event {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]models.Event, 0, len(in))
	for _, e := range in {
		if !visible(e, q) {
			continue
		}
		if search != "" && !matchesSearch(e, search) {
			continue
		}
		if q.City != "" && e.City != q.City {
			continue
		}
		if q.Category != "" && e.Category != q.Category {
			continue
		}
		out = append(out, e)
	}

	switch q.SortBy {
	case "", SortNewest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	case SortClosest, SortUpcoming:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].StartDate.Before(out[j].StartDate)
		})
		future := out[:0]
		for _, e := range out {
			if e.StartDate.After(now) {
				future = append(future, e)
			}
		}
		out = future
	case SortPopular:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].SubscriberCount() > out[j].SubscriberCount()
		})
	}
	return out
}

func visible(e models.Event, q Query) bool {
	switch q.Audience {
	case AudienceOwner:
		return e.UserID == q.CallerID
	case AudienceModeration:
		return e.Status == models.StatusPending
	default:
		return e.Status.IsPublic()
	}
}

func matchesSearch(e models.Event, term string) bool {
	return strings.Contains(strings.ToLower(e.Title), term) ||
		strings.Contains(strings.ToLower(e.Subtitle), term) ||
		strings.Contains(strings.ToLower(e.Description), term)
}
