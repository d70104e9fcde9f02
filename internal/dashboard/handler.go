package dashboard

import (
	"encoding/csv"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/morocco-events/backend/internal/i18n"
	"github.com/morocco-events/backend/internal/middleware"
	"github.com/morocco-events/backend/pkg/apperr"
	"github.com/morocco-events/backend/pkg/response"
)

// csvHeader is the first line of the subscriber export.
var csvHeader = []string{"name", "whatsapp", "event", "registeredOn"}

// Handler handles dashboard HTTP endpoints. All routes need a session.
type Handler struct {
	svc    *Service
	logger *zap.Logger
}

// NewHandler creates a dashboard handler.
func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Routes mounts /dashboard behind auth.
func (h *Handler) Routes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	g := rg.Group("/dashboard", auth)
	g.GET("/subscribers", h.Subscribers)
	g.GET("/analytics", h.Analytics)
	g.GET("/activity", h.Activity)
}

// Subscribers handles GET /dashboard/subscribers?eventId=&q=&format=json|csv.
func (h *Handler) Subscribers(c *gin.Context) {
	var f SubscriberFilter
	if raw := c.Query("eventId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Fail(c, apperr.Validation(i18n.ErrInvalidEventID))
			return
		}
		f.EventID = id
	}
	f.Search = c.Query("q")

	rows, err := h.svc.Subscribers(c.Request.Context(), middleware.UserID(c), middleware.Role(c), f)
	if err != nil {
		response.Fail(c, err)
		return
	}
	if c.Query("format") != "csv" {
		response.OK(c, rows)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="subscribers.csv"`)
	w := csv.NewWriter(c.Writer)
	_ = w.Write(csvHeader)
	for _, r := range rows {
		_ = w.Write([]string{r.Name, r.WhatsApp, r.EventTitle, r.CreatedAt.UTC().Format(time.RFC3339)})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		h.logger.Warn("write subscribers csv", zap.Error(err))
	}
}

// Analytics handles GET /dashboard/analytics.
func (h *Handler) Analytics(c *gin.Context) {
	a, err := h.svc.Analytics(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, a)
}

// Activity handles GET /dashboard/activity?limit=.
func (h *Handler) Activity(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			response.Fail(c, apperr.Validation(i18n.ErrValidation).WithDetails(map[string]string{"limit": "must be a positive number"}))
			return
		}
		limit = n
	}
	list, err := h.svc.Activity(c.Request.Context(), middleware.UserID(c), limit)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, list)
}
