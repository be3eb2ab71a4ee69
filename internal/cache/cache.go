// cache — Redis-кэш ответов каталога профилей.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pribylovaa/icebreaker-frame/internal/models"
	"github.com/redis/go-redis/v9"
)

// DefaultPrefix — префикс ключей, если в конфиге пусто.
const DefaultPrefix = "icebreaker:profile:"

// ProfileCache — минимальный контракт кэша профилей.
type ProfileCache interface {
	// Get возвращает профиль и признак его наличия в кэше.
	Get(ctx context.Context, key string) (*models.Profile, bool, error)
	// Set сохраняет профиль с TTL.
	Set(ctx context.Context, key string, p *models.Profile, ttl time.Duration) error
	// Close закрывает клиент Redis.
	Close() error
}

type redisCache struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisCache создаёт клиент Redis из URL (например, redis://:pass@host:6379/0)
// и проверяет соединение.
func NewRedisCache(ctx context.Context, redisURL, prefix string) (ProfileCache, error) {
	const op = "cache.NewRedisCache"

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: parse url: %w", op, err)
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	return NewFromClient(rdb, prefix), nil
}

// NewFromClient оборачивает готовый клиент. Пустой prefix — DefaultPrefix.
func NewFromClient(rdb *redis.Client, prefix string) ProfileCache {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	return &redisCache{rdb: rdb, prefix: prefix}
}

func (c *redisCache) key(k string) string { return c.prefix + k }

// Профиль хранится строкой с JSON в том виде, в каком его отдал каталог.
func (c *redisCache) Get(ctx context.Context, key string) (*models.Profile, bool, error) {
	const op = "cache.Get"

	raw, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	var p models.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, false, fmt.Errorf("%s: unmarshal: %w", op, err)
	}

	return &p, true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, p *models.Profile, ttl time.Duration) error {
	const op = "cache.Set"

	if p == nil {
		return nil
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("%s: marshal: %w", op, err)
	}

	if err := c.rdb.Set(ctx, c.key(key), raw, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (c *redisCache) Close() error { return c.rdb.Close() }
