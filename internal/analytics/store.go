package analytics

import (
	"context"

	"github.com/serroba/recipe-links/internal/messaging"
)

// Store defines the interface for persisting analytics events.
type Store interface {
	SaveLinkCreated(ctx context.Context, event *LinkCreatedEvent) error
	SaveLinkResolved(ctx context.Context, event *LinkResolvedEvent) error
}

// LinkCreatedHandler returns a consumer handler persisting created events.
func LinkCreatedHandler(store Store) messaging.Handler[LinkCreatedEvent] {
	return store.SaveLinkCreated
}

// LinkResolvedHandler returns a consumer handler persisting resolved events.
func LinkResolvedHandler(store Store) messaging.Handler[LinkResolvedEvent] {
	return store.SaveLinkResolved
}
