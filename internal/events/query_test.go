package events

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morocco-events/backend/internal/models"
)

var queryNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type eventOpt func(*models.Event)

func mkEvent(title string, opts ...eventOpt) models.Event {
	e := models.Event{
		ID:        uuid.New(),
		Title:     title,
		City:      "Marrakech",
		Category:  "Music",
		Status:    models.StatusApproved,
		StartDate: queryNow.Add(24 * time.Hour),
		CreatedAt: queryNow.Add(-time.Hour),
	}
	for _, o := range opts {
		o(&e)
	}
	return e
}

func titles(list []models.Event) []string {
	out := []string{}
	for _, e := range list {
		out = append(out, e.Title)
	}
	return out
}

func TestApplyVisibility(t *testing.T) {
	owner := uuid.New()
	in := []models.Event{
		mkEvent("approved"),
		mkEvent("pending", func(e *models.Event) {
			e.Status = models.StatusPending
			e.UserID = owner
		}),
		mkEvent("rejected", func(e *models.Event) {
			e.Status = models.StatusRejected
			e.UserID = owner
		}),
	}
	assert.Equal(t, []string{"approved"}, titles(Apply(in, Query{Audience: AudiencePublic}, queryNow)))
	assert.Equal(t, []string{"pending"}, titles(Apply(in, Query{Audience: AudienceModeration}, queryNow)))
	assert.ElementsMatch(t, []string{"pending", "rejected"},
		titles(Apply(in, Query{Audience: AudienceOwner, CallerID: owner}, queryNow)))
}

func TestApplyFilters(t *testing.T) {
	in := []models.Event{
		mkEvent("Gnaoua Fest", func(e *models.Event) { e.City = "Essaouira" }),
		mkEvent("Jazzablanca", func(e *models.Event) {
			e.City = "Casablanca"
			e.Description = "jazz by the ocean"
		}),
		mkEvent("Salon du livre", func(e *models.Event) {
			e.Category = "Culture"
			e.Subtitle = "Livres et auteurs"
		}),
	}
	assert.Equal(t, []string{"Gnaoua Fest"}, titles(Apply(in, Query{Search: "GNAOUA"}, queryNow)))
	assert.Equal(t, []string{"Jazzablanca"}, titles(Apply(in, Query{Search: "ocean"}, queryNow)))
	assert.Equal(t, []string{"Salon du livre"}, titles(Apply(in, Query{Search: "auteurs"}, queryNow)))
	assert.Equal(t, []string{"Jazzablanca"}, titles(Apply(in, Query{City: "Casablanca"}, queryNow)))
	assert.Empty(t, Apply(in, Query{City: "casablanca"}, queryNow))
	assert.Equal(t, []string{"Salon du livre"}, titles(Apply(in, Query{Category: "Culture"}, queryNow)))
	assert.Empty(t, Apply(in, Query{City: "Essaouira", Category: "Culture"}, queryNow))
}

// times sets CreatedAt and StartDate relative to queryNow.
func times(created, start time.Duration) eventOpt {
	return func(e *models.Event) {
		e.CreatedAt = queryNow.Add(created)
		e.StartDate = queryNow.Add(start)
	}
}

func TestApplySort(t *testing.T) {
	subs := func(n int) eventOpt {
		return func(e *models.Event) { e.Subscribers = make([]models.Subscriber, n) }
	}
	in := []models.Event{
		mkEvent("a", times(-3*time.Hour, 48*time.Hour), subs(1)),
		mkEvent("b", times(-1*time.Hour, -time.Hour), subs(5)),
		mkEvent("c", times(-2*time.Hour, 2*time.Hour), subs(1)),
	}

	assert.Equal(t, []string{"b", "c", "a"}, titles(Apply(in, Query{}, queryNow)))
	assert.Equal(t, []string{"b", "c", "a"}, titles(Apply(in, Query{SortBy: SortNewest}, queryNow)))
	assert.Equal(t, []string{"c", "a"}, titles(Apply(in, Query{SortBy: SortClosest}, queryNow)))
	assert.Equal(t, []string{"c", "a"}, titles(Apply(in, Query{SortBy: SortUpcoming}, queryNow)))
	// ties keep input order
	assert.Equal(t, []string{"b", "a", "c"}, titles(Apply(in, Query{SortBy: SortPopular}, queryNow)))
	assert.Equal(t, []string{"a", "b", "c"}, titles(Apply(in, Query{SortBy: "alphabetical"}, queryNow)))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	in := []models.Event{
		mkEvent("old", func(e *models.Event) { e.CreatedAt = queryNow.Add(-2 * time.Hour) }),
		mkEvent("new", func(e *models.Event) { e.CreatedAt = queryNow.Add(-time.Hour) }),
	}
	first := Apply(in, Query{}, queryNow)
	assert.Equal(t, []string{"new", "old"}, titles(first))
	assert.Equal(t, []string{"old", "new"}, titles(in))
	assert.Equal(t, first, Apply(in, Query{}, queryNow))
}

func TestApplyEmptyIsNotNil(t *testing.T) {
	out := Apply(nil, Query{SortBy: SortClosest}, queryNow)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestApplyIsIdempotent(t *testing.T) {
	in := []models.Event{
		mkEvent("Festival Gnaoua", times(-5*time.Hour, 72*time.Hour), func(e *models.Event) { e.City = "Essaouira" }),
		mkEvent("Festival Timitar", times(-4*time.Hour, 24*time.Hour)),
		mkEvent("Festival des roses", times(-3*time.Hour, -2*time.Hour)),
		mkEvent("Festival Mawazine", times(-2*time.Hour, 48*time.Hour), func(e *models.Event) {
			e.Subscribers = make([]models.Subscriber, 3)
		}),
		mkEvent("Salon du livre", times(-1*time.Hour, 96*time.Hour)),
		mkEvent("Festival du film", times(-6*time.Hour, 30*time.Hour), func(e *models.Event) { e.Category = "Cinema" }),
	}
	for _, sortBy := range []string{"", SortClosest, SortPopular} {
		t.Run("sort="+sortBy, func(t *testing.T) {
			q := Query{Search: "festival", City: "Marrakech", Category: "Music", SortBy: sortBy}
			once := Apply(in, q, queryNow)
			require.NotEmpty(t, once)
			assert.Equal(t, titles(once), titles(Apply(once, q, queryNow)))
		})
	}
}

func TestApplyClosestFarFuture(t *testing.T) {
	// beyond the range of time.Duration from now
	in := []models.Event{
		mkEvent("farther", func(e *models.Event) { e.StartDate = queryNow.AddDate(500, 0, 0) }),
		mkEvent("far", func(e *models.Event) { e.StartDate = queryNow.AddDate(400, 0, 0) }),
		mkEvent("soon", func(e *models.Event) { e.StartDate = queryNow.Add(time.Hour) }),
	}
	assert.Equal(t, []string{"soon", "far", "farther"}, titles(Apply(in, Query{SortBy: SortClosest}, queryNow)))
}
