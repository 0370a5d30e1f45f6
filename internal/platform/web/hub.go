package web

import (
	"sync"

	"gameforge/internal/session"
)

// clientBufferSize is how many events a feed client may fall behind
// before it is disconnected.
const clientBufferSize = 64

// feedClient is one subscribed WebSocket consumer.
type feedClient struct {
	events   chan session.Event
	done     chan struct{}
	doneOnce sync.Once
}

// close marks the client as finished. Safe to call multiple times.
func (c *feedClient) close() {
	c.doneOnce.Do(func() {
		close(c.done)
	})
}

// push delivers an event without blocking. A consumer that cannot keep
// up with the buffer is closed rather than allowed to stall the hub.
func (c *feedClient) push(evt session.Event) {
	select {
	case <-c.done:
		return
	default:
	}

	select {
	case c.events <- evt:
	default:
		c.close()
	}
}

// Hub fans session events out to subscribed feed clients.
// It implements session.Sink, so a Recorder can announce straight
// into it. Announce never blocks regardless of client state.
type Hub struct {
	mu      sync.RWMutex
	clients map[*feedClient]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*feedClient]struct{}),
	}
}

// Announce delivers the event to every subscribed client.
func (h *Hub) Announce(evt session.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		c.push(evt)
	}
}

// subscribe registers a new feed client.
func (h *Hub) subscribe() *feedClient {
	c := &feedClient{
		events: make(chan session.Event, clientBufferSize),
		done:   make(chan struct{}),
	}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	return c
}

// unsubscribe removes a client and closes it.
func (h *Hub) unsubscribe(c *feedClient) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.close()
}

// ClientCount returns the number of subscribed clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

var _ session.Sink = (*Hub)(nil)
