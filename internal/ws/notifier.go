package ws

import (
	"encoding/json"
	"log"

	"github.com/kiwari-pos/qrcounter/internal/pos"
)

// Notifier turns order-flow signals into hub events. Calls return immediately.
type Notifier struct {
	hub *Hub
}

// NewNotifier creates a Notifier that publishes on hub.
func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

// BroadcastOrder pushes an order_summary event to every display.
func (n *Notifier) BroadcastOrder(summary pos.OrderSummary) {
	payload, err := json.Marshal(summary)
	if err != nil {
		log.Printf("ERROR: marshal order summary: %v", err)
		return
	}
	n.hub.Broadcast(Event{Type: EventOrderSummary, Payload: payload})
}

// BroadcastReset tells every display to clear.
func (n *Notifier) BroadcastReset() {
	n.hub.Broadcast(Event{Type: EventResetOrder})
}
