package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"beacon-port/internal/config"
	"beacon-port/internal/database"
	"beacon-port/internal/database/migration"
	dbpostgres "beacon-port/internal/database/postgres"
	"beacon-port/internal/database/seeder"
	"beacon-port/internal/infrastructure/cache"
	"beacon-port/internal/infrastructure/storage"
	"beacon-port/internal/ws"
)

// Container owns the process-wide infrastructure: the Postgres pool (after
// migrations and seeding), the résumé cache, photo storage, and the preview
// hub.
type Container struct {
	Config  config.Config
	DB      database.DB
	Cache   *cache.Redis
	Storage *storage.Minio
	Hub     *ws.Hub
	Logger  *log.Logger
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	runner := migration.Runner{Dir: cfg.Database.MigrationsDir}
	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	seedRunner := seeder.Runner{Seeders: seeder.Defaults()}
	if err := seedRunner.Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed: %w", err)
	}

	rds := cache.NewRedis(cfg.Redis, logger)

	st, err := storage.NewMinio(ctx, cfg.Storage, logger)
	if err != nil {
		_ = rds.Close()
		_ = db.Close()
		return nil, err
	}

	hub := ws.NewHub(logger)
	go hub.Run()
	ws.SetDefaultHub(hub)

	return &Container{
		Config:  cfg,
		DB:      db,
		Cache:   rds,
		Storage: st,
		Hub:     hub,
		Logger:  logger,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
