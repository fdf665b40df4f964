package sse

import "sync"

// Event is one server-sent payload addressed to a recipient.
type Event struct {
	RecipientID string
	Name        string
	Data        interface{}
}

// Hub fans events out to the open streams of each recipient. A recipient
// may hold several streams at once (multiple tabs); every stream gets
// every event.
type Hub struct {
	mu      sync.RWMutex
	streams map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{streams: make(map[string]map[chan Event]struct{})}
}

// Subscribe opens a stream for the recipient. The caller must invoke the
// returned cleanup exactly once; after cleanup the channel is closed.
func (h *Hub) Subscribe(recipientID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)
	if h.streams[recipientID] == nil {
		h.streams[recipientID] = make(map[chan Event]struct{})
	}
	h.streams[recipientID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.streams[recipientID], ch)
		close(ch)
		if len(h.streams[recipientID]) == 0 {
			delete(h.streams, recipientID)
		}
	}
	return ch, cleanup
}

// Publish delivers the event to every open stream of the recipient. A
// stream that cannot keep up loses the event; publishing never blocks.
func (h *Hub) Publish(recipientID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.streams[recipientID] {
		select {
		case ch <- event:
		default:
		}
	}
}
