package ws

import (
	"encoding/json"
	"time"

	"tha-drop/internal/delivery/http/dto"
	"tha-drop/internal/domain/user"

	"github.com/google/uuid"
)

// Event is the frame written to WebSocket clients.
type Event struct {
	Type      string `json:"type"`
	Data      any    `json:"data"`
	Timestamp string `json:"timestamp"`
}

// Notify queues an event for every connection of profileID. It never blocks.
func (h *Hub) Notify(profileID uuid.UUID, event string, payload any) {
	if h == nil {
		return
	}

	b, err := json.Marshal(Event{
		Type:      event,
		Data:      payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		h.logf("[WS] encode event=%s: %v", event, err)
		return
	}
	h.send(profileID, b)
}

// NotifyRequest sends req in the same shape the REST endpoints return.
func (h *Hub) NotifyRequest(profileID uuid.UUID, event string, req user.HiringRequest) {
	h.Notify(profileID, event, dto.NewRequestView(req))
}
