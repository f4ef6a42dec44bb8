package events

import (
	"context"
	"sync"

	"itemsvc/internal/model"
)

// Client receives events of a single kind, or every event when Kind is empty.
type Client struct {
	Kind string
	Ch   chan model.Event
}

type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan model.Event
	clients    map[*Client]struct{}
	done       chan struct{}
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan model.Event, 64),
		clients:    make(map[*Client]struct{}),
		done:       make(chan struct{}),
	}
}

// Register and Unregister return immediately once Run has exited.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast never blocks the caller; events are dropped when the queue is full.
func (h *Hub) Broadcast(event model.Event) {
	select {
	case h.broadcast <- event:
	default:
	}
}

// Run owns the subscriber set until ctx is done. It must be called at most once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case event := <-h.broadcast:
			h.fanOut(event)
		}
	}
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, client)
}

func (h *Hub) fanOut(event model.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	kind := event.Kind()
	for client := range h.clients {
		if client.Kind != "" && client.Kind != kind {
			continue
		}
		select {
		case client.Ch <- event:
		default:
			// Drop if the client is too slow.
		}
	}
}
