package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/kiwari-pos/qrcounter/internal/enum"
)

// Event types pushed to display clients.
const (
	EventOrderSummary = enum.EventOrderSummary
	EventResetOrder   = enum.EventResetOrder
)

// Event represents a WebSocket message to be broadcast
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Hub maintains the set of connected display clients and broadcasts to all of them.
// There are no rooms: every client sees every event.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client

	// Outbound messages to broadcast
	broadcast chan Event

	// Closed when Run returns
	done chan struct{}

	// Guards clients for ClientCount; Run is the only writer.
	mu sync.RWMutex

	// Called with the client count after every change; optional.
	onChange func(n int)
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 256),
		done:       make(chan struct{}),
	}
}

// OnClientCountChange registers a callback, e.g. a metrics gauge. Call before Run.
func (h *Hub) OnClientCountChange(fn func(n int)) {
	h.onChange = fn
}

// Run is the hub's main loop. It returns when ctx is cancelled, after
// closing every client's send channel.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.notifyCount()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.notifyCount()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.notifyCount()

		case event := <-h.broadcast:
			// Marshal event to JSON once
			message, err := json.Marshal(event)
			if err != nil {
				log.Printf("ERROR: marshal %s event: %v", event.Type, err)
				continue
			}

			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Client's send buffer is full, drop it
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
			h.notifyCount()
		}
	}
}

func (h *Hub) addClient(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) removeClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Broadcast queues an event for every connected client. It never blocks:
// when the queue is full the event is dropped.
func (h *Hub) Broadcast(event Event) {
	select {
	case h.broadcast <- event:
	default:
		log.Printf("WARNING: broadcast queue full, dropping %s event", event.Type)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) notifyCount() {
	if h.onChange != nil {
		h.onChange(h.ClientCount())
	}
}
