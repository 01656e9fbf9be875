package routes

import (
	"tha-drop/internal/delivery/http/handler"
	"tha-drop/internal/delivery/http/middleware"
	"tha-drop/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Health *handler.HealthHandler
	Auth   *handler.AuthHandler
	Hiring *handler.HiringHandler
	User   *handler.UserHandler
	Review *handler.ReviewHandler
	WS     *ws.Handler
}

type Registry struct {
	handlers Handlers
	auth     *middleware.AuthMiddleware
}

func NewRegistry(h Handlers, auth *middleware.AuthMiddleware) *Registry {
	return &Registry{handlers: h, auth: auth}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerPublic(app)
	r.registerProtected(app)
}

func (r *Registry) registerPublic(app *fiber.App) {
	if r.handlers.Health != nil {
		r.handlers.Health.RegisterRoutes(app)
	}
	if r.handlers.Auth != nil {
		r.handlers.Auth.RegisterRoutes(app.Group("/auth"))
	}
	if r.handlers.WS != nil {
		r.handlers.WS.RegisterRoutes(app)
	}
}

func (r *Registry) registerProtected(app *fiber.App) {
	authMw := r.auth.Middleware()

	if r.handlers.Hiring != nil {
		r.handlers.Hiring.RegisterRoutes(app.Group("/hiring", authMw))
	}
	if r.handlers.User != nil {
		r.handlers.User.RegisterRoutes(app.Group("/user", authMw))
	}
	if r.handlers.Review != nil {
		r.handlers.Review.RegisterRoutes(app.Group("/review", authMw))
	}
}
