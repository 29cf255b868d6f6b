package container

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/recipe-links/internal/store"
	"go.uber.org/zap"
)

var (
	errNoDatabaseURL = errors.New("database url is required")
	errNoRedisAddr   = errors.New("redis address is required")
)

// Redis owns the shared client so the injector closes it on shutdown.
type Redis struct {
	Client *redis.Client
}

func (r *Redis) Shutdown() error {
	return r.Client.Close()
}

// Postgres owns the connection pool so the injector closes it on shutdown.
type Postgres struct {
	Pool *pgxpool.Pool
}

func (p *Postgres) Shutdown() error {
	p.Pool.Close()

	return nil
}

// RedisPackage provides *Redis. The client connects lazily.
func RedisPackage(injector *do.Injector, addr string) {
	do.Provide(injector, func(_ *do.Injector) (*Redis, error) {
		if addr == "" {
			return nil, errNoRedisAddr
		}

		return &Redis{Client: redis.NewClient(&redis.Options{Addr: addr})}, nil
	})
}

// PostgresPackage provides *Postgres after applying pending migrations.
func PostgresPackage(injector *do.Injector, databaseURL string) {
	do.Provide(injector, func(i *do.Injector) (*Postgres, error) {
		if databaseURL == "" {
			return nil, errNoDatabaseURL
		}

		logger := do.MustInvoke[*zap.Logger](i)

		if err := store.Migrate(databaseURL); err != nil {
			return nil, err
		}

		pool, err := pgxpool.New(context.Background(), databaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}

		logger.Info("postgres connected", zap.String("host", pool.Config().ConnConfig.Host))

		return &Postgres{Pool: pool}, nil
	})
}
