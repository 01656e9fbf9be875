package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"tha-drop/internal/config"
	"tha-drop/internal/database"
	"tha-drop/internal/database/migration"
	"tha-drop/internal/database/migrations"
	dbpostgres "tha-drop/internal/database/postgres"
	"tha-drop/internal/domain/user"
	"tha-drop/internal/infrastructure/cache"
	"tha-drop/internal/metrics"
	"tha-drop/internal/pkg/jwt"
	"tha-drop/internal/repository"
	"tha-drop/internal/repository/memory"
	"tha-drop/internal/repository/mongodb"
)

// Container owns the long-lived dependencies: the store selected by
// STORE_DRIVER, the Redis cache, the JWT service and the metrics registry.
type Container struct {
	Config  config.Config
	Logger  *log.Logger
	Store   user.Store
	DB      database.DB
	Cache   *cache.Redis
	JWT     jwt.Service
	Metrics *metrics.Metrics
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		JWT:     jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessExpiresIn, cfg.JWT.RefreshExpiresIn),
		Metrics: metrics.New(),
	}

	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		db, err := dbpostgres.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		c.DB = db
		c.Store = repository.NewPostgresStore(db)
	case config.StoreDriverMongo:
		s, err := mongodb.New(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		c.Store = s
	case config.StoreDriverMemory:
		c.Store = memory.New()
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
	logger.Printf("[App] store ready driver=%s", cfg.Store.Driver)

	c.Cache = cache.NewRedis(cfg.Redis, logger)
	return c, nil
}

// Migrate applies the embedded SQL migrations. Other drivers need none.
func (c *Container) Migrate(ctx context.Context) error {
	if c == nil || c.DB == nil {
		return nil
	}
	r := migration.Runner{FS: migrations.FS, Dir: ".", Logger: c.Logger}
	return r.Run(ctx, c.DB.SQLDB())
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.Store != nil {
		errs = append(errs, c.Store.Close())
	}
	return errors.Join(errs...)
}
