package middleware

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/recipe-links/internal/handlers"
)

// RequestMeta stores client and addressing details in the request context
// for analytics events and short link building.
func RequestMeta(_ huma.API) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		meta := handlers.RequestMeta{
			ClientIP:  clientIP(ctx),
			UserAgent: ctx.Header("User-Agent"),
			Referrer:  ctx.Header("Referer"),
			Scheme:    requestScheme(ctx),
			Host:      requestHost(ctx),
		}

		next(huma.WithContext(ctx, handlers.ContextWithRequestMeta(ctx.Context(), meta)))
	}
}
