package websocket

// EventPublisher pushes change events to one user's connected clients
type EventPublisher interface {
	Publish(userID string, event Event)
}

var _ EventPublisher = (*Hub)(nil)

// Publish broadcasts the event to the user's connections
func (h *Hub) Publish(userID string, event Event) {
	h.Broadcast(userID, event)
}

// NoOpPublisher discards every event
type NoOpPublisher struct{}

func (n *NoOpPublisher) Publish(userID string, event Event) {}
