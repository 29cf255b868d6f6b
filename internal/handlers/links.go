package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/recipe-links/internal/analytics"
	"github.com/serroba/recipe-links/internal/messaging"
	"github.com/serroba/recipe-links/internal/shortlink"
	"go.uber.org/zap"
)

// RedirectPath is the path prefix short links are served under.
const RedirectPath = "/s/"

// Registry mints and resolves short links.
type Registry interface {
	GetOrCreate(ctx context.Context, fullURL string) (*shortlink.Link, bool, error)
	Resolve(ctx context.Context, code shortlink.Code) (string, error)
}

// Config holds the public addresses used to build links.
type Config struct {
	// BaseURL prefixes short links. Empty means derive it from the request.
	BaseURL string
	// FrontendURL prefixes recipe pages. Empty means use the short link base.
	FrontendURL string
}

// LinkHandler handles short link operations.
type LinkHandler struct {
	registry            Registry
	cfg                 Config
	publishLinkCreated  messaging.Publish[analytics.LinkCreatedEvent]
	publishLinkResolved messaging.Publish[analytics.LinkResolvedEvent]
	logger              *zap.Logger
}

// NewLinkHandler creates a new link handler.
func NewLinkHandler(
	registry Registry,
	cfg Config,
	publishLinkCreated messaging.Publish[analytics.LinkCreatedEvent],
	publishLinkResolved messaging.Publish[analytics.LinkResolvedEvent],
	logger *zap.Logger,
) *LinkHandler {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.FrontendURL = strings.TrimRight(cfg.FrontendURL, "/")

	return &LinkHandler{
		registry:            registry,
		cfg:                 cfg,
		publishLinkCreated:  publishLinkCreated,
		publishLinkResolved: publishLinkResolved,
		logger:              logger,
	}
}

func (h *LinkHandler) CreateShortLink(ctx context.Context, req *CreateShortLinkRequest) (*ShortLinkResponse, error) {
	return h.shorten(ctx, req.Body.URL, analytics.SourceAPI, 0)
}

func (h *LinkHandler) RecipeShortLink(ctx context.Context, req *RecipeShortLinkRequest) (*ShortLinkResponse, error) {
	target := fmt.Sprintf("%s/recipes/%d/", h.frontendBase(ctx), req.ID)

	return h.shorten(ctx, target, analytics.SourceRecipe, req.ID)
}

func (h *LinkHandler) shorten(
	ctx context.Context, fullURL string, source analytics.Source, recipeID int64,
) (*ShortLinkResponse, error) {
	link, created, err := h.registry.GetOrCreate(ctx, fullURL)
	if err != nil {
		if errors.Is(err, shortlink.ErrInvalidURL) {
			return nil, huma.Error400BadRequest(err.Error())
		}

		h.logger.Error("failed to create short link",
			zap.String("url", fullURL),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to create short link")
	}

	if created {
		meta := RequestMetaFromContext(ctx)
		event := &analytics.LinkCreatedEvent{
			Code:      string(link.Code),
			FullURL:   link.FullURL,
			Source:    source,
			RecipeID:  recipeID,
			CreatedAt: link.CreatedAt,
			ClientIP:  meta.ClientIP,
			UserAgent: meta.UserAgent,
		}

		if err = h.publishLinkCreated(event); err != nil {
			h.logger.Error("failed to publish analytics event",
				zap.String("code", event.Code),
				zap.Error(err),
			)
		}
	}

	resp := &ShortLinkResponse{}
	resp.Body.ShortLink = h.shortBase(ctx) + RedirectPath + string(link.Code)

	return resp, nil
}

func (h *LinkHandler) Redirect(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	target, err := h.registry.Resolve(ctx, shortlink.Code(req.Code))
	if err != nil {
		if errors.Is(err, shortlink.ErrNotFound) {
			return nil, huma.Error404NotFound("short link not found")
		}

		h.logger.Error("failed to resolve short link",
			zap.String("code", req.Code),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to resolve short link")
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.LinkResolvedEvent{
		Code:       req.Code,
		ResolvedAt: time.Now().UTC(),
		ClientIP:   meta.ClientIP,
		UserAgent:  meta.UserAgent,
		Referrer:   meta.Referrer,
	}

	if err = h.publishLinkResolved(event); err != nil {
		h.logger.Error("failed to publish access event",
			zap.String("code", event.Code),
			zap.Error(err),
		)
	}

	return &RedirectResponse{
		Status:   http.StatusFound,
		Location: target,
	}, nil
}

func (h *LinkHandler) shortBase(ctx context.Context) string {
	if h.cfg.BaseURL != "" {
		return h.cfg.BaseURL
	}

	return RequestMetaFromContext(ctx).BaseURL()
}

func (h *LinkHandler) frontendBase(ctx context.Context) string {
	if h.cfg.FrontendURL != "" {
		return h.cfg.FrontendURL
	}

	return h.shortBase(ctx)
}
