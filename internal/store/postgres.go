package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/recipe-links/internal/shortlink"
)

const (
	linksTable        = "short_links"
	codeConstraint    = "short_links_code_key"
	urlHashConstraint = "short_links_url_hash_key"
)

var linkColumns = []string{"code", "full_url", "url_hash", "created_at"}

// PostgresStore is a PostgreSQL implementation of shortlink.Repository.
// Uniqueness is enforced by the short_links constraints, not by reads.
type PostgresStore struct {
	pool *pgxpool.Pool
	sb   squirrel.StatementBuilderType
}

// NewPostgresStore creates a new PostgreSQL-backed link store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		pool: pool,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (p *PostgresStore) Insert(ctx context.Context, link *shortlink.Link) error {
	query, args, err := p.sb.
		Insert(linksTable).
		Columns(linkColumns...).
		Values(string(link.Code), link.FullURL, string(link.URLHash), link.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err = p.pool.Exec(ctx, query, args...); err != nil {
		return translateInsertError(err)
	}

	return nil
}

func (p *PostgresStore) GetByCode(ctx context.Context, code shortlink.Code) (*shortlink.Link, error) {
	return p.getOne(ctx, squirrel.Eq{"code": string(code)})
}

func (p *PostgresStore) GetByHash(ctx context.Context, hash shortlink.URLHash) (*shortlink.Link, error) {
	return p.getOne(ctx, squirrel.Eq{"url_hash": string(hash)})
}

func (p *PostgresStore) getOne(ctx context.Context, where squirrel.Eq) (*shortlink.Link, error) {
	query, args, err := p.sb.
		Select(linkColumns...).
		From(linksTable).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var (
		link          shortlink.Link
		code, urlHash string
	)

	err = p.pool.QueryRow(ctx, query, args...).Scan(&code, &link.FullURL, &urlHash, &link.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortlink.ErrNotFound
		}

		return nil, fmt.Errorf("query link: %w", err)
	}

	link.Code = shortlink.Code(code)
	link.URLHash = shortlink.URLHash(urlHash)

	return &link, nil
}

func translateInsertError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return fmt.Errorf("insert link: %w", err)
	}

	switch pgErr.ConstraintName {
	case codeConstraint:
		return shortlink.ErrCodeTaken
	case urlHashConstraint:
		return shortlink.ErrTargetTaken
	default:
		return fmt.Errorf("insert link: unexpected unique violation on %q: %w",
			pgErr.ConstraintName, shortlink.ErrConstraintViolation)
	}
}

// Ping checks PostgreSQL connectivity.
func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

var _ shortlink.Repository = (*PostgresStore)(nil)
