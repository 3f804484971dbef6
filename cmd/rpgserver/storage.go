package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/udisondev/rpgcore/internal/config"
	"github.com/udisondev/rpgcore/internal/db"
)

// openStorage builds the configured attribute repository. The returned
// func releases its connections.
func openStorage(ctx context.Context, cfg config.Server) (db.AttributeRepository, func(), error) {
	switch cfg.Storage {
	case config.StoragePostgres:
		dsn := cfg.Database.DSN()
		pool, err := db.Connect(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("database connected")

		if err := db.RunMigrations(ctx, dsn); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")
		return db.NewPostgresAttributeRepository(pool), pool.Close, nil

	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("pinging redis %s: %w", cfg.Redis.Addr, err)
		}
		slog.Info("redis connected", "addr", cfg.Redis.Addr, "prefix", cfg.Redis.Prefix)
		closeFn := func() {
			if err := client.Close(); err != nil {
				slog.Warn("closing redis client", "error", err)
			}
		}
		return db.NewRedisAttributeRepository(client, cfg.Redis.Prefix), closeFn, nil

	default:
		return db.NewMemoryAttributeRepository(), func() {}, nil
	}
}
