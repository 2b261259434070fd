// Package notify provides the in-process observer registry behind the
// live occupancy streams. The store publishes the new count after every
// committed event; observers register per gym and receive coalesced
// updates through a channel until they cancel.
package notify

import "sync"

// Update pairs a gym with its new count, for observers watching the whole
// directory rather than one gym.
type Update struct {
	GymID string
	Count int
}

// Hub fans occupancy counts out to registered observers.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[int]chan int
	all  map[int]chan Update
	next int
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[int]chan int),
		all:  make(map[int]chan Update),
	}
}

// Subscribe registers an observer for one gym. The returned channel
// carries the count after each committed event; cancel unregisters the
// observer and closes the channel. Each call is a fresh registration.
func (h *Hub) Subscribe(gymID string) (<-chan int, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[gymID] == nil {
		h.subs[gymID] = make(map[int]chan int)
	}

	id := h.next
	h.next++
	ch := make(chan int, 1)
	h.subs[gymID][id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[gymID][id]; ok {
			delete(h.subs[gymID], id)
			if len(h.subs[gymID]) == 0 {
				delete(h.subs, gymID)
			}
			close(sub)
		}
	}
	return ch, cancel
}

// SubscribeAll registers an observer for every gym. Updates that arrive
// faster than the observer drains them are dropped, never queued without
// bound, and publishing never blocks.
func (h *Hub) SubscribeAll() (<-chan Update, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	ch := make(chan Update, 16)
	h.all[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.all[id]; ok {
			delete(h.all, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers the latest count to every observer of a gym. A slow
// per-gym observer only ever sees the most recent value: pending updates
// are replaced, never queued, and publishing never blocks.
func (h *Hub) Publish(gymID string, count int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs[gymID] {
		select {
		case ch <- count:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- count
		}
	}

	for _, ch := range h.all {
		select {
		case ch <- Update{GymID: gymID, Count: count}:
		default:
		}
	}
}
