package ws

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
)

type connRecorder interface {
	ClientConnected()
	ClientDisconnected()
}

type delivery struct {
	profileID uuid.UUID
	message   []byte
}

// Hub routes events to the connections of one profile. A profile may hold
// several connections; a connection whose buffer is full is dropped.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]struct{}
	deliver    chan delivery
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mutex      sync.RWMutex
	logger     *log.Logger
	metrics    connRecorder
}

func NewHub(logger *log.Logger, metrics connRecorder) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		deliver:    make(chan delivery, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		done:       make(chan struct{}),
		logger:     logger,
		metrics:    metrics,
	}
}

// Run serves the hub until ctx is done, then closes every connection.
// Run must be called at most once.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			close(h.done)
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			set, ok := h.clients[client.profileID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.profileID] = set
			}
			set[client] = struct{}{}
			h.mutex.Unlock()
			if h.metrics != nil {
				h.metrics.ClientConnected()
			}
			h.logf("[WS] connected profile=%s connections=%d", client.profileID, len(set))

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			if h.remove(client) {
				h.logf("[WS] disconnected profile=%s", client.profileID)
			}

		case d := <-h.deliver:
			h.mutex.RLock()
			targets := make([]*Client, 0, len(h.clients[d.profileID]))
			for c := range h.clients[d.profileID] {
				targets = append(targets, c)
			}
			h.mutex.RUnlock()

			for _, client := range targets {
				select {
				case client.send <- d.message:
				default:
					if h.remove(client) {
						h.logf("[WS] dropped slow client profile=%s", client.profileID)
					}
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) bool {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	set, ok := h.clients[client.profileID]
	if !ok {
		return false
	}
	if _, ok := set[client]; !ok {
		return false
	}
	delete(set, client)
	if len(set) == 0 {
		delete(h.clients, client.profileID)
	}
	close(client.send)
	if h.metrics != nil {
		h.metrics.ClientDisconnected()
	}
	return true
}

func (h *Hub) closeAll() {
	h.mutex.RLock()
	all := make([]*Client, 0)
	for _, set := range h.clients {
		for c := range set {
			all = append(all, c)
		}
	}
	h.mutex.RUnlock()

	for _, c := range all {
		h.remove(c)
	}
}

// Register and Unregister return without effect once Run has stopped.
func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) send(profileID uuid.UUID, message []byte) {
	select {
	case h.deliver <- delivery{profileID: profileID, message: message}:
	default:
		h.logf("[WS] event dropped profile=%s reason=buffer_full", profileID)
	}
}

func (h *Hub) ClientCount(profileID uuid.UUID) int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients[profileID])
}

func (h *Hub) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}
