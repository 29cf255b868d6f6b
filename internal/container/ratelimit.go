package container

import (
	"github.com/samber/do"
	"github.com/serroba/recipe-links/internal/ratelimit"
	"github.com/serroba/recipe-links/internal/store"
)

// RateLimitPackage provides *ratelimit.PolicyLimiter and the scope resolver.
// Counters live in Redis when it is configured so replicas share budgets.
func RateLimitPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*ratelimit.PolicyLimiter, error) {
		opts := do.MustInvoke[*Options](i)

		var rlStore ratelimit.Store = store.NewRateLimitMemoryStore()

		if opts.RedisAddr != "" {
			rdb, err := do.Invoke[*Redis](i)
			if err != nil {
				return nil, err
			}

			rlStore = store.NewRateLimitRedisStore(rdb.Client)
		}

		return ratelimit.NewPolicyLimiter(rlStore, ratelimit.DefaultPolicy()), nil
	})

	do.Provide(injector, func(_ *do.Injector) (ratelimit.ScopeResolver, error) {
		return ratelimit.NewOperationScopeResolver(), nil
	})
}
