package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spec-kit/nexushub/internal/config"
	"github.com/spec-kit/nexushub/internal/observability"
	"github.com/spec-kit/nexushub/internal/persistence"
)

func runMigrate(ctx context.Context, dir string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if dir == "" {
		dir = cfg.Postgres.MigrationsDir
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pg.Close()
	if !pg.Enabled() {
		return errors.New("POSTGRES_DSN is required to run migrations")
	}
	return persistence.RunMigrations(ctx, pg.PoolHandle(), dir, logger)
}
