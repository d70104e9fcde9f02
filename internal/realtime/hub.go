// Package realtime pushes live event updates to WebSocket clients.
package realtime

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/morocco-events/backend/internal/metrics"
	"github.com/morocco-events/backend/internal/models"
)

const (
	// PingInterval and PongWait are used for heartbeat.
	PingInterval = 30
	PongWait     = 60
)

// Messages sent to clients.
const (
	EventSubscriberCount = "subscriber_count"
	EventStatusChanged   = "status_changed"
)

// SubscriberCountData is the payload of subscriber_count.
type SubscriberCountData struct {
	EventID uuid.UUID `json:"eventId"`
	Count   int       `json:"count"`
}

// StatusChangedData is the payload of status_changed.
type StatusChangedData struct {
	EventID uuid.UUID     `json:"eventId"`
	Status  models.Status `json:"status"`
}

// Publisher fans a message out to every instance, this one included.
type Publisher interface {
	PublishEventMessage(eventID uuid.UUID, event string, payload []byte) error
}

// Subscriber receives messages published for an event room.
type Subscriber interface {
	SubscribeEvent(eventID uuid.UUID, handler func(event string, payload []byte)) (cancel func(), err error)
}

// Hub maintains event_id -> set of connections and broadcasts messages.
// With Redis configured, notifications go through pub/sub so each instance
// delivers them once to its own clients.
type Hub struct {
	// eventID -> map[clientID]*Client
	rooms   map[uuid.UUID]map[string]*Client
	subs    map[uuid.UUID]func() // cancel Redis subscription per room
	mu      sync.RWMutex
	logger  *zap.Logger
	pub     Publisher
	sub     Subscriber
	metrics *metrics.Metrics
}

// NewHub creates a new WebSocket hub. pub and sub may be nil for a single instance.
func NewHub(logger *zap.Logger, pub Publisher, sub Subscriber, m *metrics.Metrics) *Hub {
	return &Hub{
		rooms:   make(map[uuid.UUID]map[string]*Client),
		subs:    make(map[uuid.UUID]func()),
		logger:  logger,
		pub:     pub,
		sub:     sub,
		metrics: m,
	}
}

// Register adds a client to an event room. Starts the Redis subscription for the room if first client.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	if h.rooms[c.EventID] == nil {
		h.rooms[c.EventID] = make(map[string]*Client)
		if h.sub != nil {
			eventID := c.EventID
			cancel, err := h.sub.SubscribeEvent(eventID, func(event string, payload []byte) {
				h.Broadcast(eventID, event, json.RawMessage(payload))
			})
			if err != nil {
				h.logger.Warn("redis subscribe failed", zap.String("event_id", eventID.String()), zap.Error(err))
			} else {
				h.subs[eventID] = cancel
			}
		}
	}
	h.rooms[c.EventID][c.ID] = c
	h.mu.Unlock()
	h.metrics.ConnOpened()
	h.logger.Debug("client joined event", zap.String("client_id", c.ID), zap.String("event_id", c.EventID.String()))
}

// Unregister removes a client and closes its send queue. Cancels the Redis subscription when the last client leaves.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	m, ok := h.rooms[c.EventID]
	if !ok || m[c.ID] == nil {
		h.mu.Unlock()
		return
	}
	delete(m, c.ID)
	close(c.send)
	if len(m) == 0 {
		delete(h.rooms, c.EventID)
		if cancel, ok := h.subs[c.EventID]; ok {
			cancel()
			delete(h.subs, c.EventID)
		}
	}
	h.mu.Unlock()
	h.metrics.ConnClosed()
	h.logger.Debug("client left event", zap.String("client_id", c.ID), zap.String("event_id", c.EventID.String()))
}

// Broadcast sends a message to all clients of an event on this instance.
func (h *Hub) Broadcast(eventID uuid.UUID, event string, payload interface{}) {
	var data []byte
	switch v := payload.(type) {
	case []byte:
		data = v
	case json.RawMessage:
		data = v
	default:
		var err error
		if data, err = json.Marshal(payload); err != nil {
			return
		}
	}
	msg := WSMessage{Event: event, Data: data}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.rooms[eventID] {
		select {
		case c.send <- msg:
		default:
			// buffer full, skip
		}
	}
}

// Publish delivers a message to the room on every instance. Falls back to
// local delivery when there is no publisher or the publish fails.
func (h *Hub) Publish(eventID uuid.UUID, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if h.pub != nil {
		err := h.pub.PublishEventMessage(eventID, event, data)
		if err == nil {
			return
		}
		h.logger.Warn("redis publish failed", zap.String("event_id", eventID.String()), zap.Error(err))
	}
	h.Broadcast(eventID, event, json.RawMessage(data))
}

// SubscriberCount pushes the new subscriber count of an event.
func (h *Hub) SubscriberCount(eventID uuid.UUID, count int) {
	h.Publish(eventID, EventSubscriberCount, SubscriberCountData{EventID: eventID, Count: count})
}

// StatusChanged pushes a moderation decision.
func (h *Hub) StatusChanged(eventID uuid.UUID, status models.Status) {
	h.Publish(eventID, EventStatusChanged, StatusChangedData{EventID: eventID, Status: status})
}

// RoomSize returns the number of clients connected to an event on this instance.
func (h *Hub) RoomSize(eventID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[eventID])
}

// SendToClient queues a message for a single client.
func (h *Hub) SendToClient(c *Client, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.rooms[c.EventID][c.ID] == nil {
		return
	}
	select {
	case c.send <- WSMessage{Event: event, Data: data}:
	default:
	}
}

// Close disconnects every client on this instance and cancels the room subscriptions.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for eventID, m := range h.rooms {
		for _, c := range m {
			close(c.send)
			h.metrics.ConnClosed()
		}
		delete(h.rooms, eventID)
	}
	for eventID, cancel := range h.subs {
		cancel()
		delete(h.subs, eventID)
	}
}
