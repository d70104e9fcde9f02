package events_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/morocco-events/backend/internal/countdown"
	"github.com/morocco-events/backend/internal/events"
	"github.com/morocco-events/backend/internal/i18n"
	"github.com/morocco-events/backend/internal/middleware"
	"github.com/morocco-events/backend/internal/models"
	"github.com/morocco-events/backend/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

type eventBody struct {
	ID              uuid.UUID            `json:"id"`
	Slug            string               `json:"slug"`
	Status          string               `json:"status"`
	Subscribers     []json.RawMessage    `json:"subscribers"`
	SubscriberCount int                  `json:"subscriberCount"`
	Countdown       *countdown.Remaining `json:"countdown"`
}

type api struct {
	t       *testing.T
	f       *fixture
	router  *gin.Engine
	owner   uuid.UUID
	visitor uuid.UUID
}

func newAPI(t *testing.T) *api {
	a := &api{t: t, f: newFixture(t), owner: uuid.New(), visitor: uuid.New()}
	admin := uuid.New()
	validate := func(_ context.Context, token string) (middleware.Identity, error) {
		switch token {
		case "owner":
			return middleware.Identity{UserID: a.owner, Role: models.RoleUser}, nil
		case "visitor":
			return middleware.Identity{UserID: a.visitor, Role: models.RoleUser}, nil
		case "admin":
			return middleware.Identity{UserID: admin, Role: models.RoleAdmin}, nil
		}
		return middleware.Identity{}, errors.New("invalid token")
	}
	r := gin.New()
	r.Use(middleware.Locale(i18n.English))
	h := events.NewHandler(a.f.svc, zap.NewNop())
	h.Register(r.Group("/api"), middleware.JWT(validate), middleware.RequireRole(models.RoleAdmin), func(c *gin.Context) { c.Next() })
	a.router = r
	return a
}

func (a *api) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeEvent(t *testing.T, w *httptest.ResponseRecorder) eventBody {
	t.Helper()
	var b eventBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b), w.Body.String())
	return b
}

func decodeEvents(t *testing.T, w *httptest.ResponseRecorder) []eventBody {
	t.Helper()
	var b []eventBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b), w.Body.String())
	return b
}

var gnaouaBody = map[string]any{
	"title":       "Gnaoua Fest",
	"description": "World music festival",
	"startDate":   "2025-06-11T09:00:00Z",
	"endDate":     "2025-06-13T09:00:00Z",
	"city":        "Essaouira",
	"organizer":   "A3 Communication",
}

func TestEventsHTTPFlow(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodPost, "/api/events", "owner", gnaouaBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeEvent(t, w)
	assert.Regexp(t, `^gnaoua-fest-[0-9a-f]{8}$`, created.Slug)
	assert.Equal(t, "pending", created.Status)
	id := created.ID.String()

	w = a.do(http.MethodGet, "/api/events", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	w = a.do(http.MethodPatch, "/api/events/"+id+"/status", "owner", map[string]string{"status": "approved"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(http.MethodPatch, "/api/events/"+id+"/status", "admin", map[string]string{"status": "published"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodPatch, "/api/events/"+id+"/status", "admin", map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "approved", decodeEvent(t, w).Status)

	w = a.do(http.MethodGet, "/api/events", "", nil)
	list := decodeEvents(t, w)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	for i, phone := range []string{"+212600000001", "+212600000002"} {
		w = a.do(http.MethodPost, "/api/events/"+id+"/subscribe", "", map[string]string{"name": "Amina", "whatsapp": phone})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		got := decodeEvent(t, w)
		assert.Equal(t, i+1, got.SubscriberCount)
		assert.NotNil(t, got.Subscribers)
		assert.Empty(t, got.Subscribers, "contact details stay private")
	}

	w = a.do(http.MethodPatch, "/api/events/"+id+"/status", "admin", map[string]string{"status": "rejected"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = a.do(http.MethodGet, "/api/events/slug/"+created.Slug, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decodeEvent(t, w)
	assert.Equal(t, 2, detail.SubscriberCount)
	require.NotNil(t, detail.Countdown)
	assert.Equal(t, 10, detail.Countdown.Days)
	assert.Equal(t, 0, detail.Countdown.Hours)
	assert.False(t, detail.Countdown.Started)

	w = a.do(http.MethodGet, "/api/events/user", "owner", nil)
	require.Equal(t, http.StatusOK, w.Code)
	mine := decodeEvents(t, w)
	require.Len(t, mine, 1)
	assert.Len(t, mine[0].Subscribers, 2, "owners see their subscribers")
}

func TestEventsHTTPAuth(t *testing.T) {
	a := newAPI(t)
	w := a.do(http.MethodPost, "/api/events", "owner", gnaouaBody)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeEvent(t, w).ID.String()

	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodPost, "/api/events", "", gnaouaBody).Code)
	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodGet, "/api/events/user", "bogus", nil).Code)
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodGet, "/api/events/user?userId="+a.owner.String(), "visitor", nil).Code)
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/api/events/user?userId="+a.owner.String(), "owner", nil).Code)
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodGet, "/api/events/pending", "owner", nil).Code)
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodGet, "/api/events/"+id, "visitor", nil).Code)
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/api/events/"+id, "admin", nil).Code)
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodPatch, "/api/events/"+id, "visitor", map[string]string{"title": "x"}).Code)

	w = a.do(http.MethodGet, "/api/events/pending", "admin", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeEvents(t, w), 1)

	// pending events are not public
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/api/events/slug/"+decodeEvents(t, w)[0].Slug, "", nil).Code)
}

func TestEventsHTTPValidation(t *testing.T) {
	a := newAPI(t)

	body := map[string]any{}
	for k, v := range gnaouaBody {
		body[k] = v
	}
	delete(body, "title")
	w := a.do(http.MethodPost, "/api/events", "owner", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var errBody struct {
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errBody))
	assert.Contains(t, errBody.Details, "title")

	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodPost, "/api/events/not-a-uuid/subscribe", "", map[string]string{"name": "a", "whatsapp": "1"}).Code)
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodPost, "/api/events/"+uuid.NewString()+"/subscribe", "", map[string]string{"name": "a", "whatsapp": "1"}).Code)

	w = a.do(http.MethodPost, "/api/events", "owner", gnaouaBody)
	id := decodeEvent(t, w).ID.String()
	w = a.do(http.MethodPost, "/api/events/"+id+"/subscribe", "", map[string]string{"name": "Amina"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errBody))
	assert.Equal(t, "Name and WhatsApp number are required", errBody.Message)

	// description and organizer are optional
	delete(body, "description")
	delete(body, "organizer")
	body["title"] = "Moussem de Tan-Tan"
	w = a.do(http.MethodPost, "/api/events", "owner", body)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestStatusChangeNeedsAdminWhateverTheBody(t *testing.T) {
	a := newAPI(t)
	w := a.do(http.MethodPost, "/api/events", "owner", gnaouaBody)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeEvent(t, w).ID.String()

	bodies := map[string]any{
		"approved": map[string]string{"status": "approved"},
		"rejected": map[string]string{"status": "rejected"},
		"unknown":  map[string]string{"status": "archived"},
		"empty":    map[string]string{"status": ""},
		"missing":  map[string]string{},
		"no body":  nil,
	}
	for name, body := range bodies {
		for _, token := range []string{"owner", "visitor"} {
			t.Run(name+"/"+token, func(t *testing.T) {
				w := a.do(http.MethodPatch, "/api/events/"+id+"/status", token, body)
				assert.Equal(t, http.StatusForbidden, w.Code)
			})
		}
	}

	w = a.do(http.MethodGet, "/api/events/"+id, "owner", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pending", decodeEvent(t, w).Status)
}
