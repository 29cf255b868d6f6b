package container

import (
	"fmt"
	"time"

	"github.com/samber/do"
	"github.com/serroba/recipe-links/internal/shortlink"
	"github.com/serroba/recipe-links/internal/store"
	"go.uber.org/zap"
)

// RepositoryPackage provides the shortlink.Repository selected by Options.Storage.
// PostgreSQL gets a Redis read-through cache when Redis is configured.
func RepositoryPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (shortlink.Repository, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		switch opts.Storage {
		case StorageMemory:
			logger.Warn("using in-memory link storage; links are lost on restart")

			return store.NewMemoryStore(), nil
		case StorageRedis:
			rdb, err := do.Invoke[*Redis](i)
			if err != nil {
				return nil, err
			}

			return store.NewRedisStore(rdb.Client), nil
		case StoragePostgres:
			pg, err := do.Invoke[*Postgres](i)
			if err != nil {
				return nil, err
			}

			var repo shortlink.Repository = store.NewPostgresStore(pg.Pool)

			if opts.RedisAddr != "" && opts.CacheTTL > 0 {
				rdb, err := do.Invoke[*Redis](i)
				if err != nil {
					return nil, err
				}

				repo = store.NewRedisCacheRepository(repo, rdb.Client, time.Duration(opts.CacheTTL)*time.Second, logger)
			}

			return repo, nil
		default:
			return nil, fmt.Errorf("unknown storage %q", opts.Storage)
		}
	})
}

// RegistryPackage provides *shortlink.Registry.
func RegistryPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*shortlink.Registry, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		repo, err := do.Invoke[shortlink.Repository](i)
		if err != nil {
			return nil, err
		}

		generator, err := shortlink.NewCodeGenerator(shortlink.DefaultAlphabet, opts.CodeLength)
		if err != nil {
			return nil, err
		}

		return shortlink.NewRegistry(repo, generator,
			shortlink.WithMaxAttempts(opts.MaxAttempts),
			shortlink.WithLogger(logger),
		), nil
	})
}
