package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/recipe-links/internal/shortlink"
	"go.uber.org/zap"
)

// RedisCacheRepository wraps a Repository with Redis caching for reads.
type RedisCacheRepository struct {
	store   shortlink.Repository
	client  *redis.Client
	prefix  string
	hashKey string
	ttl     time.Duration
	logger  *zap.Logger
}

// NewRedisCacheRepository creates a new Redis-cached repository decorator.
func NewRedisCacheRepository(
	store shortlink.Repository, client *redis.Client, ttl time.Duration, logger *zap.Logger,
) *RedisCacheRepository {
	return &RedisCacheRepository{
		store:   store,
		client:  client,
		prefix:  "cache:link:",
		hashKey: "cache:link_hashes",
		ttl:     ttl,
		logger:  logger,
	}
}

// Insert stores a link in the underlying store and updates the cache.
func (r *RedisCacheRepository) Insert(ctx context.Context, link *shortlink.Link) error {
	if err := r.store.Insert(ctx, link); err != nil {
		return err
	}

	r.cacheLink(ctx, link)

	return nil
}

// GetByCode retrieves a link by its code, checking cache first.
func (r *RedisCacheRepository) GetByCode(ctx context.Context, code shortlink.Code) (*shortlink.Link, error) {
	if link, ok := r.getFromCache(ctx, code); ok {
		return link, nil
	}

	link, err := r.store.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	r.cacheLink(ctx, link)

	return link, nil
}

// GetByHash retrieves a link by its target hash, checking cache first.
func (r *RedisCacheRepository) GetByHash(ctx context.Context, hash shortlink.URLHash) (*shortlink.Link, error) {
	code, err := r.client.HGet(ctx, r.hashKey, string(hash)).Result()
	if err == nil {
		if link, ok := r.getFromCache(ctx, shortlink.Code(code)); ok {
			return link, nil
		}
	}

	link, err := r.store.GetByHash(ctx, hash)
	if err != nil {
		return nil, err
	}

	r.cacheLink(ctx, link)

	return link, nil
}

func (r *RedisCacheRepository) getFromCache(ctx context.Context, code shortlink.Code) (*shortlink.Link, bool) {
	result, err := r.client.HGetAll(ctx, r.prefix+string(code)).Result()
	if err != nil {
		r.logger.Debug("cache read failed", zap.String("code", string(code)), zap.Error(err))

		return nil, false
	}

	if result["full_url"] == "" {
		return nil, false
	}

	return linkFromHash(result), true
}

func (r *RedisCacheRepository) cacheLink(ctx context.Context, link *shortlink.Link) {
	pipe := r.client.Pipeline()
	key := r.prefix + string(link.Code)

	pipe.HSet(ctx, key, map[string]interface{}{
		"code":       string(link.Code),
		"full_url":   link.FullURL,
		"url_hash":   string(link.URLHash),
		"created_at": link.CreatedAt.UnixNano(),
	})

	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}

	pipe.HSet(ctx, r.hashKey, string(link.URLHash), string(link.Code))

	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Warn("cache write failed", zap.String("code", string(link.Code)), zap.Error(err))
	}
}

// Shutdown is a no-op for RedisCacheRepository (client managed externally).
func (r *RedisCacheRepository) Shutdown() error {
	return nil
}

var _ shortlink.Repository = (*RedisCacheRepository)(nil)
