package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"tha-drop/internal/app"
	"tha-drop/internal/config"
	"tha-drop/internal/database/seeder"
)

func main() {
	seed := flag.Bool("seed", false, "seed development accounts after migrating")
	fixture := flag.String("fixture", "", "YAML fixture to seed instead of the built-in one")
	flag.Parse()

	logger := log.New(os.Stdout, "", log.LstdFlags|log.LUTC)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	c, err := app.NewContainer(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()

	migCtx, migCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer migCancel()
	if err := c.Migrate(migCtx); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}

	if !*seed {
		return
	}

	seeders := seeder.Defaults()
	if *fixture != "" {
		data, err := os.ReadFile(*fixture)
		if err != nil {
			logger.Fatalf("read fixture: %v", err)
		}
		seeders = []seeder.Seeder{seeder.FixtureSeeder{Label: *fixture, Data: data}}
	}

	seedCtx, seedCancel := context.WithTimeout(context.Background(), time.Minute)
	defer seedCancel()
	r := seeder.Runner{Seeders: seeders, Logger: logger}
	if err := r.Run(seedCtx, c.Store); err != nil {
		logger.Fatalf("seed failed: %v", err)
	}
}
