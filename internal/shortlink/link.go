package shortlink

import (
	"context"
	"time"
)

// Code is the short token a link is addressed by.
type Code string

// URLHash is the hex SHA-256 of a link's exact target URL.
type URLHash string

// Link maps a short code to the target URL it redirects to.
// Links are immutable once stored.
type Link struct {
	Code      Code
	FullURL   string
	URLHash   URLHash
	CreatedAt time.Time
}

// Repository persists links. Insert must never overwrite an existing row:
// it fails with ErrCodeTaken or ErrTargetTaken when either unique key is
// already present.
type Repository interface {
	GetByCode(ctx context.Context, code Code) (*Link, error)
	GetByHash(ctx context.Context, hash URLHash) (*Link, error)
	Insert(ctx context.Context, link *Link) error
}
