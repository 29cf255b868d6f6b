package container

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/samber/do"
	"github.com/serroba/recipe-links/internal/analytics"
	"github.com/serroba/recipe-links/internal/handlers"
	"github.com/serroba/recipe-links/internal/health"
	"github.com/serroba/recipe-links/internal/messaging"
	mw "github.com/serroba/recipe-links/internal/middleware"
	"github.com/serroba/recipe-links/internal/ratelimit"
	"github.com/serroba/recipe-links/internal/shortlink"
	"go.uber.org/zap"
)

// HTTPPackage provides the chi router and the huma API with every route registered.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		router := chi.NewMux()
		router.Use(middleware.RequestID, middleware.Recoverer)

		return router, nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		router := do.MustInvoke[*chi.Mux](i)

		registry, err := do.Invoke[*shortlink.Registry](i)
		if err != nil {
			return nil, err
		}

		limiter, err := do.Invoke[*ratelimit.PolicyLimiter](i)
		if err != nil {
			return nil, err
		}

		resolver := do.MustInvoke[ratelimit.ScopeResolver](i)

		publishCreated := messaging.Discard[analytics.LinkCreatedEvent]()
		publishResolved := messaging.Discard[analytics.LinkResolvedEvent]()

		if opts.PublishEvents {
			group, err := do.Invoke[*messaging.PublisherGroup](i)
			if err != nil {
				return nil, err
			}

			publishCreated = messaging.NewPublishFunc[analytics.LinkCreatedEvent](
				group.Publisher(), analytics.TopicLinkCreated)
			publishResolved = messaging.NewPublishFunc[analytics.LinkResolvedEvent](
				group.Publisher(), analytics.TopicLinkResolved)
		}

		api := humachi.New(router, huma.DefaultConfig("Recipe Links", "1.0.0"))
		api.UseMiddleware(
			mw.RequestMeta(api),
			mw.RateLimiter(api, limiter, resolver, logger),
		)

		linkHandler := handlers.NewLinkHandler(registry, handlers.Config{
			BaseURL:     opts.BaseURL,
			FrontendURL: opts.FrontendURL,
		}, publishCreated, publishResolved, logger)
		handlers.RegisterRoutes(api, linkHandler)

		health.RegisterRoutes(api, newHealthHandler(i, opts))

		return api, nil
	})
}

// newHealthHandler only checks dependencies the server was configured to use.
func newHealthHandler(i *do.Injector, opts *Options) *health.Handler {
	var redisChecker, postgresChecker health.Checker

	if opts.RedisAddr != "" {
		if rdb, err := do.Invoke[*Redis](i); err == nil {
			redisChecker = health.NewRedisChecker(rdb.Client)
		}
	}

	if opts.Storage == StoragePostgres {
		if pg, err := do.Invoke[*Postgres](i); err == nil {
			postgresChecker = pg.Pool
		}
	}

	return health.NewHandler(redisChecker, postgresChecker)
}
