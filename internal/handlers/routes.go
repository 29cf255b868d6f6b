package handlers

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/recipe-links/internal/ratelimit"
)

// mintLimits apply to both link-minting endpoints.
var mintLimits = ratelimit.EndpointConfig{
	Limits: []ratelimit.LimitConfig{
		{Window: time.Minute, Max: 10},
		{Window: time.Hour, Max: 100},
		{Window: 24 * time.Hour, Max: 500},
	},
}

// RegisterRoutes registers the short link routes with per-endpoint rate limit configuration.
func RegisterRoutes(api huma.API, h *LinkHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "create-short-link",
		Method:      http.MethodPost,
		Path:        "/api/short-links",
		Summary:     "Create short link",
		Description: "Returns the short link for an absolute URL, minting one on first request.",
		Tags:        []string{"Links"},
		Metadata:    map[string]any{ratelimit.MetadataKey: mintLimits},
	}, h.CreateShortLink)

	huma.Register(api, huma.Operation{
		OperationID: "get-recipe-link",
		Method:      http.MethodGet,
		Path:        "/api/recipes/{id}/get-link",
		Summary:     "Get recipe short link",
		Description: "Returns the short link for a recipe page.",
		Tags:        []string{"Links"},
		Metadata:    map[string]any{ratelimit.MetadataKey: mintLimits},
	}, h.RecipeShortLink)

	// Redirects are high-traffic reads.
	huma.Register(api, huma.Operation{
		OperationID: "follow-short-link",
		Method:      http.MethodGet,
		Path:        RedirectPath + "{code}",
		Summary:     "Follow short link",
		Description: "Redirects to the URL associated with the short code.",
		Tags:        []string{"Links"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 1000},
				},
			},
		},
	}, h.Redirect)
}
