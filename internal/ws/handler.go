package ws

import (
	"log"
	"net/http"

	"tha-drop/internal/delivery/http/middleware"
	"tha-drop/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gorilla/websocket"
)

// Authenticator turns a raw access token into a Caller or an HTTP error.
type Authenticator interface {
	Resolve(c fiber.Ctx, token string) (usecase.Caller, error)
}

type Handler struct {
	hub    *Hub
	auth   Authenticator
	logger *log.Logger
}

func NewHandler(hub *Hub, auth Authenticator, logger *log.Logger) *Handler {
	return &Handler{hub: hub, auth: auth, logger: logger}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (h *Handler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/ws", h.HandleHiringWS)
}

// HandleHiringWS authenticates with the token query parameter, falling back
// to the Authorization header, then upgrades the connection.
func (h *Handler) HandleHiringWS(c fiber.Ctx) error {
	if h == nil || h.hub == nil || h.auth == nil {
		return fiber.ErrServiceUnavailable
	}

	token := c.Query("token")
	if token == "" {
		token, _ = middleware.BearerToken(c.Get(fiber.HeaderAuthorization))
	}
	if token == "" {
		return middleware.NewAppError(fiber.StatusUnauthorized, middleware.MsgNotAuthorized, nil, nil)
	}
	caller, err := h.auth.Resolve(c, token)
	if err != nil {
		return err
	}

	upgrade := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			if h.logger != nil {
				h.logger.Printf("[WS] upgrade failed profile=%s: %v", caller.ProfileID, err)
			}
			return
		}

		client := NewClient(h.hub, conn, caller.ProfileID)
		h.hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	})

	return upgrade(c)
}
