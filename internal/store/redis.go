package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/recipe-links/internal/shortlink"
)

// RedisStore is a Redis implementation of shortlink.Repository.
// Each link lives in its own hash; a shared hash maps url_hash to code.
type RedisStore struct {
	client  *redis.Client
	prefix  string
	hashKey string
}

// NewRedisStore creates a new Redis-backed link store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client:  client,
		prefix:  "link:",
		hashKey: "link_hashes",
	}
}

// insertScript writes a link only if neither its code nor its target exists.
// Returns 0 on insert, 1 when the code is taken, 2 when the target is taken.
var insertScript = redis.NewScript(`
if redis.call('HEXISTS', KEYS[2], ARGV[2]) == 1 then
	return 2
end
if redis.call('EXISTS', KEYS[1]) == 1 then
	return 1
end
redis.call('HSET', KEYS[1], 'code', ARGV[1], 'url_hash', ARGV[2], 'full_url', ARGV[3], 'created_at', ARGV[4])
redis.call('HSET', KEYS[2], ARGV[2], ARGV[1])
return 0
`)

// Insert stores link atomically, never overwriting an existing code or target.
func (r *RedisStore) Insert(ctx context.Context, link *shortlink.Link) error {
	keys := []string{r.prefix + string(link.Code), r.hashKey}

	result, err := insertScript.Run(ctx, r.client, keys,
		string(link.Code),
		string(link.URLHash),
		link.FullURL,
		link.CreatedAt.UnixNano(),
	).Int()
	if err != nil {
		return fmt.Errorf("insert link: %w", err)
	}

	switch result {
	case 0:
		return nil
	case 1:
		return shortlink.ErrCodeTaken
	default:
		return shortlink.ErrTargetTaken
	}
}

func (r *RedisStore) GetByCode(ctx context.Context, code shortlink.Code) (*shortlink.Link, error) {
	result, err := r.client.HGetAll(ctx, r.prefix+string(code)).Result()
	if err != nil {
		return nil, fmt.Errorf("get link: %w", err)
	}

	if len(result) == 0 {
		return nil, shortlink.ErrNotFound
	}

	return linkFromHash(result), nil
}

func (r *RedisStore) GetByHash(ctx context.Context, hash shortlink.URLHash) (*shortlink.Link, error) {
	code, err := r.client.HGet(ctx, r.hashKey, string(hash)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shortlink.ErrNotFound
		}

		return nil, fmt.Errorf("get code by hash: %w", err)
	}

	return r.GetByCode(ctx, shortlink.Code(code))
}

func linkFromHash(fields map[string]string) *shortlink.Link {
	var createdAt time.Time

	if ts, ok := fields["created_at"]; ok {
		if nanos, err := strconv.ParseInt(ts, 10, 64); err == nil {
			createdAt = time.Unix(0, nanos).UTC()
		}
	}

	return &shortlink.Link{
		Code:      shortlink.Code(fields["code"]),
		FullURL:   fields["full_url"],
		URLHash:   shortlink.URLHash(fields["url_hash"]),
		CreatedAt: createdAt,
	}
}

var _ shortlink.Repository = (*RedisStore)(nil)
