package store

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/recipe-links/internal/analytics"
)

const (
	kindCreated  = "created"
	kindResolved = "resolved"
)

// Postgres is an analytics.Store that appends rows to short_link_events.
type Postgres struct {
	pool *pgxpool.Pool
	sb   squirrel.StatementBuilderType
}

// NewPostgres creates a new PostgreSQL analytics store.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{
		pool: pool,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (p *Postgres) SaveLinkCreated(ctx context.Context, event *analytics.LinkCreatedEvent) error {
	return p.insert(ctx, event.Code, kindCreated, &event.FullURL,
		event.ClientIP, event.UserAgent, "", event.CreatedAt)
}

func (p *Postgres) SaveLinkResolved(ctx context.Context, event *analytics.LinkResolvedEvent) error {
	return p.insert(ctx, event.Code, kindResolved, nil,
		event.ClientIP, event.UserAgent, event.Referrer, event.ResolvedAt)
}

func (p *Postgres) insert(
	ctx context.Context,
	code, kind string,
	fullURL *string,
	clientIP, userAgent, referrer string,
	occurredAt time.Time,
) error {
	query, args, err := p.sb.
		Insert("short_link_events").
		Columns("id", "code", "kind", "full_url", "client_ip", "user_agent", "referrer", "occurred_at").
		Values(uuid.NewString(), code, kind, fullURL, clientIP, userAgent, referrer, occurredAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err = p.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert %s event: %w", kind, err)
	}

	return nil
}

var _ analytics.Store = (*Postgres)(nil)
