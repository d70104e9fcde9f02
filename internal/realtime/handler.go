package realtime

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/morocco-events/backend/internal/i18n"
	"github.com/morocco-events/backend/internal/middleware"
	"github.com/morocco-events/backend/pkg/apperr"
	"github.com/morocco-events/backend/pkg/response"
)

// SubscriberCounter resolves a public event and its current subscriber count.
type SubscriberCounter interface {
	PublicSubscriberCount(ctx context.Context, id uuid.UUID) (int, error)
}

// Handler upgrades GET /ws/events/:id.
type Handler struct {
	hub      *Hub
	events   SubscriberCounter
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewHandler creates the WebSocket handler. allowedOrigins follows the CORS setting.
func NewHandler(hub *Hub, events SubscriberCounter, allowedOrigins string, logger *zap.Logger) *Handler {
	return &Handler{
		hub:    hub,
		events: events,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return middleware.OriginAllowed(allowedOrigins, r.Header.Get("Origin"))
			},
		},
		logger: logger,
	}
}

// ServeEvent checks the event is public, upgrades, sends the current count and runs the client loop.
func (h *Handler) ServeEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, apperr.Validation(i18n.ErrInvalidEventID))
		return
	}
	count, err := h.events.PublicSubscriberCount(c.Request.Context(), eventID)
	if err != nil {
		response.Fail(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := NewClient(h.hub, eventID, conn, h.logger)
	h.hub.Register(client)
	h.hub.SendToClient(client, EventSubscriberCount, SubscriberCountData{EventID: eventID, Count: count})
	go client.writePump()
	client.readPump()
}
