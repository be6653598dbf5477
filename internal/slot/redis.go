package slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
)

const keyNamespace = "storefront"

type cmdable interface {
	Get(context.Context, string) *redis.StringCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// Redis keeps slots under a namespaced key with an optional TTL (0 keeps them forever).
type Redis struct {
	store cmdable
	raw   *redis.Client
	ttl   time.Duration
}

// NewRedis connects to url (redis://...) and verifies connectivity.
func NewRedis(ctx context.Context, url string, ttl time.Duration) (*Redis, error) {
	if url == "" {
		return nil, errors.New("redis url is required")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}

	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Redis{store: raw, raw: raw, ttl: ttl}, nil
}

func (r *Redis) key(key string) string {
	return keyNamespace + ":" + key
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.store.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis.Get: %w", err)
	}
	return value, nil
}

func (r *Redis) Put(ctx context.Context, key string, value []byte) error {
	if err := r.store.Set(ctx, r.key(key), value, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis.Set: %w", err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.store.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("redis.Del: %w", err)
	}
	return nil
}

func (r *Redis) Close() error {
	if r.raw == nil {
		return nil
	}
	return r.raw.Close()
}

var _ port.SlotStore = (*Redis)(nil)
