package feed

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/realworldcase/challenge-engine/internal/models"
)

const subscriberBuffer = 16

// Subscription receives encoded challenges published to a Hub
type Subscription struct {
	ID string
	C  <-chan []byte
}

// Hub fans out newly generated challenges to live subscribers.
// Slow subscribers miss messages rather than blocking publishers.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]chan []byte
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]chan []byte),
	}
}

// Subscribe registers a new subscriber
func (h *Hub) Subscribe() *Subscription {
	ch := make(chan []byte, subscriberBuffer)
	id := uuid.NewString()

	h.mu.Lock()
	h.subscribers[id] = ch
	h.mu.Unlock()

	slog.Debug("feed subscriber added", "subscriber_id", id)
	return &Subscription{ID: id, C: ch}
}

// Unsubscribe removes a subscriber and closes its channel
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	ch, ok := h.subscribers[id]
	delete(h.subscribers, id)
	h.mu.Unlock()

	if ok {
		close(ch)
		slog.Debug("feed subscriber removed", "subscriber_id", id)
	}
}

// Publish sends c to every subscriber
func (h *Hub) Publish(c *models.Challenge) {
	data, err := json.Marshal(c)
	if err != nil {
		slog.Error("failed to encode challenge for feed", "error", err, "id", c.ID)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, ch := range h.subscribers {
		select {
		case ch <- data:
		default:
			slog.Warn("feed subscriber too slow, dropping message", "subscriber_id", id)
		}
	}
}

// Len returns the number of subscribers
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
