package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"tha-drop/internal/config"
	"tha-drop/internal/delivery/http/handler"
	"tha-drop/internal/delivery/http/middleware"
	"tha-drop/internal/delivery/http/routes"
	"tha-drop/internal/pkg/validate"
	"tha-drop/internal/usecase"
	"tha-drop/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber *fiber.App
	Hub   *ws.Hub
}

// New wires use cases, handlers and middleware over an initialized container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	store := c.Store
	hub := ws.NewHub(c.Logger, c.Metrics)
	v := validate.New()

	availabilityUC := usecase.NewAvailabilityUsecase(store.Profiles(), c.Cache, c.Metrics, c.Logger)
	hiringUC := usecase.NewHiringUsecase(store.Profiles(), store.Requests(), hub, c.Metrics, c.Logger)
	authUC := usecase.NewAuthUsecase(store.Accounts(), c.JWT, c.Logger)
	accountUC := usecase.NewAccountUsecase(store.Accounts(), availabilityUC, c.Logger)
	profileUC := usecase.NewProfileUsecase(store.Accounts(), store.Profiles(), store.Requests(), availabilityUC, c.Logger)
	reviewUC := usecase.NewReviewUsecase(store.Profiles(), store.Reviews(), availabilityUC, c.Logger)
	identity := usecase.NewIdentityResolver(c.JWT, store.Accounts(), store.Profiles())

	authMw := middleware.NewAuthMiddleware(identity)

	registerGlobalMiddleware(f, c)
	routes.NewRegistry(routes.Handlers{
		Health: handler.NewHealthHandler(store, c.Metrics.Handler()),
		Auth:   handler.NewAuthHandler(authUC, v),
		Hiring: handler.NewHiringHandler(availabilityUC, hiringUC, v),
		User:   handler.NewUserHandler(profileUC, accountUC, v),
		Review: handler.NewReviewHandler(reviewUC, v),
		WS:     ws.NewHandler(hub, authMw, c.Logger),
	}, authMw).Register(f)

	return &App{Fiber: f, Hub: hub}
}

// Bootstrap builds the container, migrates the store and starts the hub.
// The returned cleanup stops the hub and releases the container.
func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	migCtx, migCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer migCancel()
	if err := c.Migrate(migCtx); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	app := New(c)
	hubCtx, stopHub := context.WithCancel(context.Background())
	go app.Hub.Run(hubCtx)

	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(c.Logger, c.Metrics).Middleware())
	app.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
