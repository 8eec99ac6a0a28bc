package websocket

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrClientClosed is returned when sending to a closed or saturated client
var ErrClientClosed = errors.New("client is closed")

// ClientInterface is what the hub needs from a connection.
// Send must not block; a saturated client reports ErrClientClosed instead.
type ClientInterface interface {
	ID() string
	UserID() string
	Send(data []byte) error
	Close() error
}

// userFeed holds one user's connections. Its lock serializes delivery so every
// connection of the user sees events in the order they were broadcast.
type userFeed struct {
	mu      sync.Mutex
	clients map[string]ClientInterface
}

// Hub tracks live connections per user. It is safe for concurrent use.
type Hub struct {
	feeds map[string]*userFeed
	mu    sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		feeds: make(map[string]*userFeed),
	}
}

// Register adds a client under its user
func (h *Hub) Register(client ClientInterface) {
	userID := client.UserID()

	h.mu.Lock()
	feed, ok := h.feeds[userID]
	if !ok {
		feed = &userFeed{clients: make(map[string]ClientInterface)}
		h.feeds[userID] = feed
	}
	feed.mu.Lock()
	feed.clients[client.ID()] = client
	feed.mu.Unlock()
	h.mu.Unlock()

	log.Debug().
		Str("user_id", userID).
		Str("client_id", client.ID()).
		Msg("WebSocket client registered")
}

// Unregister removes a client; unknown clients are ignored
func (h *Hub) Unregister(client ClientInterface) {
	userID := client.UserID()

	h.mu.Lock()
	defer h.mu.Unlock()

	feed, ok := h.feeds[userID]
	if !ok {
		return
	}

	feed.mu.Lock()
	_, exists := feed.clients[client.ID()]
	delete(feed.clients, client.ID())
	empty := len(feed.clients) == 0
	feed.mu.Unlock()

	if !exists {
		return
	}
	if empty {
		delete(h.feeds, userID)
	}

	log.Debug().
		Str("user_id", userID).
		Str("client_id", client.ID()).
		Msg("WebSocket client unregistered")
}

// Broadcast sends an event to every connection of one user. Events broadcast
// to the same user are delivered to each of their connections in call order.
func (h *Hub) Broadcast(userID string, event Event) {
	data, err := event.ToJSON()
	if err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Str("event_type", event.Type).
			Msg("Failed to serialize event")
		return
	}

	h.mu.RLock()
	feed, ok := h.feeds[userID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	feed.mu.Lock()
	defer feed.mu.Unlock()

	delivered := 0
	for _, client := range feed.clients {
		if err := client.Send(data); err != nil {
			log.Warn().
				Err(err).
				Str("user_id", userID).
				Str("client_id", client.ID()).
				Msg("Failed to send to client")
			continue
		}
		delivered++
	}

	log.Debug().
		Str("user_id", userID).
		Str("event_type", event.Type).
		Int("client_count", len(feed.clients)).
		Int("delivered", delivered).
		Msg("Broadcast event")
}

// ClientCount returns the number of connections a user has open
func (h *Hub) ClientCount(userID string) int {
	h.mu.RLock()
	feed, ok := h.feeds[userID]
	h.mu.RUnlock()
	if !ok {
		return 0
	}

	feed.mu.Lock()
	defer feed.mu.Unlock()
	return len(feed.clients)
}

// TotalClientCount returns the number of connections across all users
func (h *Hub) TotalClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, feed := range h.feeds {
		feed.mu.Lock()
		total += len(feed.clients)
		feed.mu.Unlock()
	}
	return total
}
