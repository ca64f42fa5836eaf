package push

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/rs/zerolog"
)

type envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Hub fans events out to a user's connected websocket sessions. Publishing
// is strictly best-effort: a dead connection is dropped and logged, never
// surfaced to the caller.
type Hub struct {
	mu       sync.RWMutex
	sessions map[int64]map[*websocket.Conn]struct{}
	logger   zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		sessions: make(map[int64]map[*websocket.Conn]struct{}),
		logger:   logger.With().Str("component", "push").Logger(),
	}
}

// Attach registers the connection on the user's channel and blocks reading
// until the peer goes away, then deregisters.
func (h *Hub) Attach(userID int64, conn *websocket.Conn) {
	h.mu.Lock()
	if h.sessions[userID] == nil {
		h.sessions[userID] = make(map[*websocket.Conn]struct{})
	}
	h.sessions[userID][conn] = struct{}{}
	h.mu.Unlock()

	h.logger.Debug().Int64("user_id", userID).Msg("session attached")

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.detach(userID, conn)
}

func (h *Hub) detach(userID int64, conn *websocket.Conn) {
	h.mu.Lock()
	if conns, ok := h.sessions[userID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.sessions, userID)
		}
	}
	h.mu.Unlock()

	_ = conn.Close()
	h.logger.Debug().Int64("user_id", userID).Msg("session detached")
}

// Publish sends a named event to every session of the target user.
func (h *Hub) Publish(userID int64, event string, payload any) {
	raw, err := json.Marshal(envelope{Event: event, Data: payload})
	if err != nil {
		h.logger.Error().Err(err).Str("event", event).Msg("marshal push event")
		return
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.sessions[userID]))
	for conn := range h.sessions[userID] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
			h.logger.Warn().Err(err).Int64("user_id", userID).Msg("push write failed, dropping session")
			h.detach(userID, conn)
		}
	}
}

// SessionCount reports how many live sessions a user has. Used by tests and
// the health endpoint.
func (h *Hub) SessionCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[userID])
}
