package ws

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/medipresence/presence-api/pkg/messaging"
	"github.com/medipresence/presence-api/pkg/metrics"
)

// Hub owns the set of connected dashboard clients and fans events out to
// them. All membership changes go through the register/unregister
// channels; Run is the only goroutine that touches the client set for
// writes.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan messaging.Event
	register   chan *Client
	unregister chan *Client
	metrics    *metrics.Metrics
	mu         sync.RWMutex
}

func NewHub(m *metrics.Metrics) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan messaging.Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		metrics:    m,
	}
}

// Run processes registrations and broadcasts until ctx is canceled, then
// closes every remaining client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			h.metrics.ConnectedClients.Set(float64(count))
			log.Info().Int("clients", count).Msg("websocket client connected")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			h.metrics.ConnectedClients.Set(float64(count))
			log.Info().Int("clients", count).Msg("websocket client disconnected")

		case event := <-h.broadcast:
			h.deliver(event)
		}
	}
}

// Broadcast queues an event for delivery to all clients. Drops the event
// when the queue is full rather than blocking the caller.
func (h *Hub) Broadcast(event messaging.Event) {
	select {
	case h.broadcast <- event:
	default:
		log.Warn().Str("event_type", event.Type).Msg("broadcast queue full, dropping event")
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// deliver pushes the event onto each client's send queue. A client whose
// queue is full is disconnected; a stalled reader must not hold up the
// rest of the dashboard.
func (h *Hub) deliver(event messaging.Event) {
	h.mu.Lock()
	for client := range h.clients {
		select {
		case client.send <- event:
		default:
			close(client.send)
			delete(h.clients, client)
		}
	}
	count := len(h.clients)
	h.mu.Unlock()
	h.metrics.ConnectedClients.Set(float64(count))
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
	h.mu.Unlock()
	h.metrics.ConnectedClients.Set(0)
	log.Info().Msg("websocket hub stopped")
}
