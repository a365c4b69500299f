// Package realtime implements the push side of the notification fan-out over
// WebSocket connections. The hub keeps an in-memory registry of channel
// subscriptions; delivery is best-effort and a slow or dead connection is
// dropped rather than allowed to stall a publish.
package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
)

// Envelope is the wire frame pushed to subscribers.
type Envelope struct {
	Event   string `json:"event"`
	Channel string `json:"channel"`
	Payload any    `json:"payload"`
}

// Hub routes published events to WebSocket subscribers by channel name.
// It implements ports.RealtimeBus. Safe for concurrent use.
type Hub struct {
	mu          sync.Mutex
	subscribers map[string]map[*websocket.Conn]struct{}
	logger      *slog.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		subscribers: make(map[string]map[*websocket.Conn]struct{}),
		logger:      logger.With("component", "realtime_hub"),
	}
}

// Subscribe registers the connection on every given channel. The caller
// remains responsible for the connection's read loop and for calling
// Unsubscribe when the connection closes.
func (h *Hub) Subscribe(conn *websocket.Conn, channels ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, channel := range channels {
		conns, ok := h.subscribers[channel]
		if !ok {
			conns = make(map[*websocket.Conn]struct{})
			h.subscribers[channel] = conns
		}
		conns[conn] = struct{}{}
	}
}

// Unsubscribe removes the connection from every channel it is registered on.
func (h *Hub) Unsubscribe(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for channel, conns := range h.subscribers {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.subscribers, channel)
		}
	}
}

// Publish pushes the event to every subscriber of the channel. Connections
// that fail to accept the write are evicted on the spot; the persisted
// notification remains the durable record, so nothing is retried.
func (h *Hub) Publish(channel string, event string, payload any) {
	frame, err := json.Marshal(Envelope{
		Event:   event,
		Channel: channel,
		Payload: payload,
	})
	if err != nil {
		h.logger.Error("marshal push frame", "event", event, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.subscribers[channel] {
		if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			h.logger.Info("dropping subscriber", "channel", channel, "error", err)
			delete(h.subscribers[channel], conn)
			conn.Close()
		}
	}

	if len(h.subscribers[channel]) == 0 {
		delete(h.subscribers, channel)
	}
}

// SubscriberCount reports how many connections are registered on a channel.
func (h *Hub) SubscriberCount(channel string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers[channel])
}
