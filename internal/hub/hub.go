// Package hub owns the websocket subscriber registry. Registration,
// deregistration, and broadcast all go through the hub's loop; a failed
// send to one subscriber never aborts delivery to the rest.
package hub

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/XavierBriggs/fortuna/services/livesports-api/pkg/models"
)

// UpdateMessage is the periodic feed payload pushed to subscribers.
type UpdateMessage struct {
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      models.Snapshot `json:"data"`
}

// NewUpdate wraps a snapshot in the wire envelope.
func NewUpdate(snap models.Snapshot) UpdateMessage {
	return UpdateMessage{
		Type:      "update",
		Timestamp: time.Now(),
		Data:      snap,
	}
}

// Hub maintains the set of active subscribers and broadcasts updates
// to them.
type Hub struct {
	clients   map[*Client]bool
	clientsMu sync.RWMutex

	broadcast  chan UpdateMessage
	register   chan *Client
	unregister chan *Client
}

// New creates a hub. Run must be started before clients connect.
func New() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan UpdateMessage, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run drives the hub until ctx is canceled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return
		case c := <-h.register:
			h.registerClient(c)
		case c := <-h.unregister:
			h.unregisterClient(c)
		case msg := <-h.broadcast:
			h.broadcastUpdate(msg)
		}
	}
}

// Register adds a subscriber to the hub.
func (h *Hub) Register(c *Client) {
	h.register <- c
}

// Unregister removes a subscriber from the hub.
func (h *Hub) Unregister(c *Client) {
	h.unregister <- c
}

// Broadcast queues an update for all subscribers. Drops the message when
// the hub's buffer is full rather than blocking the caller.
func (h *Hub) Broadcast(msg UpdateMessage) {
	select {
	case h.broadcast <- msg:
	default:
		log.Println("[hub] broadcast buffer full, dropping update")
	}
}

// ClientCount returns the number of active subscribers.
func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

func (h *Hub) registerClient(c *Client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()
	h.clients[c] = true
	log.Printf("[hub] client %s connected (total: %d)", c.ID, len(h.clients))
}

func (h *Hub) unregisterClient(c *Client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.Send)
		log.Printf("[hub] client %s disconnected (total: %d)", c.ID, len(h.clients))
	}
}

func (h *Hub) broadcastUpdate(msg UpdateMessage) {
	h.clientsMu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clientsMu.RUnlock()

	for _, c := range clients {
		if !c.TrySend(msg) {
			// Subscriber can't keep up; cut it loose without touching
			// the others.
			log.Printf("[hub] client %s buffer full, disconnecting", c.ID)
			go h.Unregister(c)
		}
	}
}

func (h *Hub) shutdown() {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()
	log.Printf("[hub] shutting down (%d active clients)", len(h.clients))
	for c := range h.clients {
		close(c.Send)
		delete(h.clients, c)
	}
}
