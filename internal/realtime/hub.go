// Package realtime fans table-change notifications out to subscribers.
// The dashboard keeps registration and attendance views live by holding a
// websocket open per table; services publish a change after every write.
package realtime

import (
	"sync"
	"time"

	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/clock"
)

// Change describes one mutation of a table row.
type Change struct {
	Table  string    `json:"table"`
	Action string    `json:"action"`
	ID     string    `json:"id"`
	At     time.Time `json:"at"`
}

const subscriberBuffer = 16

// Hub routes published changes to table subscribers. Publish never
// blocks: a subscriber that stops draining its channel loses changes
// rather than stalling the write path.
type Hub struct {
	clock clock.Clock

	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]chan Change
}

func NewHub(clk clock.Clock) *Hub {
	return &Hub{
		clock: clk,
		subs:  make(map[string]map[int]chan Change),
	}
}

// Publish notifies every subscriber of the given table.
func (h *Hub) Publish(table, action, id string) {
	change := Change{
		Table:  table,
		Action: action,
		ID:     id,
		At:     h.clock.Now(),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs[table] {
		select {
		case ch <- change:
		default:
		}
	}
}

// Subscribe registers interest in one table. The returned cancel
// function removes the subscription and closes the channel; it is safe
// to call more than once.
func (h *Hub) Subscribe(table string) (<-chan Change, func()) {
	ch := make(chan Change, subscriberBuffer)

	h.mu.Lock()
	h.nextID++
	id := h.nextID
	if h.subs[table] == nil {
		h.subs[table] = make(map[int]chan Change)
	}
	h.subs[table][id] = ch
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[table], id)
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}
