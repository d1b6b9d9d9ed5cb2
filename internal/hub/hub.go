package hub

import (
	"encoding/json"
	"sync"
)

// Event represents a real-time feed event to be sent to clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Client represents a single client connection (a user watching their feed).
// It's essentially a channel that the SSE handler will listen to.
type Client chan []byte

// Hub fans feed events out to the users currently streaming their feed.
// Events are keyed by user ID: when someone posts, every friend who is
// subscribed gets the event on their own channel.
type Hub struct {
	feeds map[uint]map[Client]bool
	mu    sync.RWMutex
}

// GlobalHub is the singleton instance of our Hub.
var GlobalHub = NewHub()

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		feeds: make(map[uint]map[Client]bool),
	}
}

// Subscribe adds a new client to a user's feed stream.
func (h *Hub) Subscribe(userID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.feeds[userID]; !ok {
		h.feeds[userID] = make(map[Client]bool)
	}
	h.feeds[userID][client] = true
}

// Unsubscribe removes a client from a user's feed stream.
func (h *Hub) Unsubscribe(userID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.feeds[userID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client) // Close the channel to signal the SSE handler to stop.
			if len(clients) == 0 {
				delete(h.feeds, userID)
			}
		}
	}
}

// Broadcast sends an event to all clients streaming a user's feed.
func (h *Hub) Broadcast(userID uint, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.feeds[userID]; ok {
		messageBytes, err := json.Marshal(event)
		if err != nil {
			return
		}

		for client := range clients {
			// Use a non-blocking send to prevent a slow client from blocking the hub.
			select {
			case client <- messageBytes:
			default:
				// Client channel is full, maybe they are disconnected or slow.
				// The unsubscribe logic will handle cleaning this up eventually.
			}
		}
	}
}
