package shortlink

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultMaxAttempts caps code draws per GetOrCreate call.
const DefaultMaxAttempts = 10

// Registry mints and resolves short links on top of a Repository.
type Registry struct {
	store        Repository
	generateCode CodeGenerator
	alphabet     string
	maxAttempts  int
	now          func() time.Time
	logger       *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithAlphabet sets the alphabet codes are checked against on Resolve.
// It must match the generator's alphabet.
func WithAlphabet(alphabet string) Option {
	return func(r *Registry) {
		r.alphabet = alphabet
	}
}

// WithMaxAttempts sets how many codes are drawn before giving up.
func WithMaxAttempts(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

// WithLogger sets the registry logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates a registry drawing codes from generator.
func NewRegistry(store Repository, generator CodeGenerator, opts ...Option) *Registry {
	r := &Registry{
		store:        store,
		generateCode: generator,
		alphabet:     DefaultAlphabet,
		maxAttempts:  DefaultMaxAttempts,
		now:          time.Now,
		logger:       zap.NewNop(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// GetOrCreate returns the link for fullURL, minting one if none exists.
// The bool reports whether a new code was minted by this call.
func (r *Registry) GetOrCreate(ctx context.Context, fullURL string) (*Link, bool, error) {
	if err := ValidateURL(fullURL); err != nil {
		return nil, false, err
	}

	hash := HashURL(fullURL)

	existing, err := r.store.GetByHash(ctx, hash)
	if err == nil {
		return existing, false, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, false, fmt.Errorf("lookup target: %w", err)
	}

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		link := &Link{
			Code:      Code(r.generateCode()),
			FullURL:   fullURL,
			URLHash:   hash,
			CreatedAt: r.now().UTC(),
		}

		err = r.store.Insert(ctx, link)

		switch {
		case err == nil:
			return link, true, nil
		case errors.Is(err, ErrCodeTaken):
			r.logger.Debug("short code collision",
				zap.String("code", string(link.Code)),
				zap.Int("attempt", attempt),
			)
		case errors.Is(err, ErrTargetTaken):
			// Another caller registered the same target first.
			winner, lookupErr := r.store.GetByHash(ctx, hash)
			if lookupErr != nil {
				return nil, false, fmt.Errorf("reload target after conflict: %w", lookupErr)
			}

			return winner, false, nil
		default:
			return nil, false, fmt.Errorf("insert link: %w", err)
		}
	}

	r.logger.Warn("short code generation exhausted",
		zap.Int("attempts", r.maxAttempts),
	)

	return nil, false, ErrRetriesExhausted
}

// Resolve returns the target URL stored for code.
func (r *Registry) Resolve(ctx context.Context, code Code) (string, error) {
	if !IsValidCode(code, r.alphabet) {
		return "", ErrNotFound
	}

	link, err := r.store.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrNotFound
		}

		return "", fmt.Errorf("lookup code: %w", err)
	}

	return link.FullURL, nil
}
