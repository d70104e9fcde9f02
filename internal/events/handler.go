package events

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/morocco-events/backend/internal/countdown"
	"github.com/morocco-events/backend/internal/i18n"
	"github.com/morocco-events/backend/internal/middleware"
	"github.com/morocco-events/backend/internal/models"
	"github.com/morocco-events/backend/pkg/apperr"
	"github.com/morocco-events/backend/pkg/response"
)

// StatusRequest is the body for PATCH /events/:id/status.
type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Handler handles event HTTP endpoints.
type Handler struct {
	svc    *Service
	logger *zap.Logger
}

// NewHandler creates an event handler.
func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Register mounts the event routes. auth guards caller-scoped routes and admin the moderation ones.
func (h *Handler) Register(rg *gin.RouterGroup, auth, admin, subscribeLimit gin.HandlerFunc) {
	g := rg.Group("/events")
	g.GET("", h.List)
	g.GET("/slug/:slug", h.GetBySlug)
	g.GET("/user", auth, h.ListMine)
	g.GET("/pending", auth, admin, h.ListPending)
	g.GET("/:id", auth, h.GetByID)
	g.POST("", auth, h.Create)
	g.PATCH("/:id", auth, h.Update)
	g.PATCH("/:id/status", auth, admin, h.UpdateStatus)
	g.POST("/:id/subscribe", subscribeLimit, h.Subscribe)
}

func listQuery(c *gin.Context, audience Audience) Query {
	return Query{
		Audience: audience,
		Search:   c.Query("search"),
		City:     c.Query("city"),
		Category: c.Query("category"),
		SortBy:   c.Query("sortBy"),
	}
}

func eventID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, apperr.Validation(i18n.ErrInvalidEventID))
		return uuid.Nil, false
	}
	return id, true
}

// List handles GET /events. Anonymous, approved events only, subscribers redacted.
func (h *Handler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), listQuery(c, AudiencePublic))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, models.PublicEvents(list))
}

type eventDetail struct {
	models.PublicEvent
	Countdown countdown.Remaining
}

// MarshalJSON appends countdown to the public event object.
func (d eventDetail) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(d.PublicEvent)
	if err != nil {
		return nil, err
	}
	cd, err := json.Marshal(d.Countdown)
	if err != nil {
		return nil, err
	}
	out := append(b[:len(b)-1], `,"countdown":`...)
	out = append(out, cd...)
	return append(out, '}'), nil
}

// GetBySlug handles GET /events/slug/:slug.
func (h *Handler) GetBySlug(c *gin.Context) {
	e, err := h.svc.GetPublicBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, eventDetail{
		PublicEvent: e.Public(),
		Countdown:   countdown.Until(h.svc.Now(), e.StartDate),
	})
}

// ListMine handles GET /events/user. A userId query for someone else is refused.
func (h *Handler) ListMine(c *gin.Context) {
	userID := middleware.UserID(c)
	if raw := c.Query("userId"); raw != "" {
		other, err := uuid.Parse(raw)
		if err != nil || other != userID {
			response.Fail(c, apperr.Forbidden(i18n.ErrForbidden))
			return
		}
	}
	q := listQuery(c, AudienceOwner)
	q.CallerID = userID
	list, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, list)
}

// ListPending handles GET /events/pending (admin only).
func (h *Handler) ListPending(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), listQuery(c, AudienceModeration))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, list)
}

// GetByID handles GET /events/:id for the owner or an admin.
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}
	e, err := h.svc.Get(c.Request.Context(), id, middleware.UserID(c), middleware.Role(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, e)
}

// Create handles POST /events.
func (h *Handler) Create(c *gin.Context) {
	var req CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindFailed(c, err)
		return
	}
	e, err := h.svc.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, e)
}

// Update handles PATCH /events/:id (owner only).
func (h *Handler) Update(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}
	var req UpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindFailed(c, err)
		return
	}
	e, err := h.svc.Update(c.Request.Context(), id, middleware.UserID(c), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, e)
}

// UpdateStatus handles PATCH /events/:id/status (admin only).
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperr.New(apperr.KindInvalidStatus, i18n.ErrInvalidStatus))
		return
	}
	e, err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Fail(c, err)
		return
	}
	h.logger.Debug("status updated", zap.String("event_id", id.String()), zap.Stringer("by", middleware.UserID(c)))
	response.OK(c, e)
}

// Subscribe handles POST /events/:id/subscribe. Anonymous; the response hides other subscribers.
func (h *Handler) Subscribe(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}
	var req SubscribeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindFailed(c, err)
		return
	}
	e, err := h.svc.Subscribe(c.Request.Context(), id, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, e.Public())
}
