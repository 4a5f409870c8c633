// Package realtime implements the broadcast channel relaying text messages
// between connected clients.
package realtime

import (
	"log/slog"
	"sync"
)

// sendBuffer is the per-client outbound queue size. A client that falls
// this far behind is disconnected rather than allowed to stall the hub.
const sendBuffer = 64

// Client is one registered connection. Messages for the client arrive on
// its send channel in the order they were relayed.
type Client struct {
	id   string
	send chan string

	// closed guards against double-closing send; owned by the hub mutex.
	closed bool
}

// ID returns the identifier the client registered under.
func (c *Client) ID() string {
	return c.id
}

// Receive returns the channel of messages relayed to this client.
// The channel is closed when the client is unregistered.
func (c *Client) Receive() <-chan string {
	return c.send
}

// Hub tracks open connections and relays messages between them. The
// registry is shared mutable state touched by every connection handler, so
// all access goes through the mutex.
type Hub struct {
	mu      sync.Mutex
	clients map[string]*Client
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[string]*Client)}
}

// Register adds a connection under the client-supplied identifier and
// returns its Client. A previous registration under the same identifier is
// closed first.
func (h *Hub) Register(id string) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()

	if prev, ok := h.clients[id]; ok {
		h.closeLocked(prev)
	}

	c := &Client{id: id, send: make(chan string, sendBuffer)}
	h.clients[id] = c
	slog.Info("realtime client connected", "client_id", id, "connected", len(h.clients))
	return c
}

// Unregister removes the connection and broadcasts a departure notice to
// the remaining clients. Safe to call more than once.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if cur, ok := h.clients[c.id]; !ok || cur != c {
		// Already replaced or removed.
		h.closeLocked(c)
		h.mu.Unlock()
		return
	}
	delete(h.clients, c.id)
	h.closeLocked(c)
	remaining := len(h.clients)
	h.relayLocked(c.id, c.id+" left the chat")
	h.mu.Unlock()

	slog.Info("realtime client disconnected", "client_id", c.id, "connected", remaining)
}

// Broadcast relays a text message from sender to every other open client,
// prefixed with the sender's identifier. The sender never receives its own
// message back.
func (h *Hub) Broadcast(sender *Client, text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.relayLocked(sender.id, sender.id+": "+text)
}

// relayLocked delivers msg to every client except excludeID. A client whose
// buffer is full is dropped from the registry. Caller must hold h.mu.
func (h *Hub) relayLocked(excludeID, msg string) {
	for id, c := range h.clients {
		if id == excludeID {
			continue
		}
		select {
		case c.send <- msg:
		default:
			// Receiver is not draining its queue; cut it loose.
			slog.Warn("realtime client too slow, dropping", "client_id", id)
			delete(h.clients, id)
			h.closeLocked(c)
		}
	}
}

// closeLocked closes a client's send channel exactly once.
// Caller must hold h.mu.
func (h *Hub) closeLocked(c *Client) {
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}
