package icebreaker

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/pribylovaa/icebreaker-frame/internal/cache"
	"github.com/pribylovaa/icebreaker-frame/internal/metrics"
	"github.com/pribylovaa/icebreaker-frame/internal/models"
	"github.com/pribylovaa/icebreaker-frame/pkg/log"
)

// Source — то, что умеет искать профиль (Client или другой декоратор).
type Source interface {
	ByUsername(ctx context.Context, name string) *models.Profile
	ByFID(ctx context.Context, fid uint64) *models.Profile
	ByAddress(ctx context.Context, address string) *models.Profile
	ByENS(ctx context.Context, name string) *models.Profile
}

// Cached — декоратор Source с кэшем найденных профилей.
// Промахи каталога не кэшируются. Ошибки кэша логируются и не влияют на lookup.
type Cached struct {
	next  Source
	cache cache.ProfileCache
	ttl   time.Duration
}

func NewCached(next Source, c cache.ProfileCache, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = time.Minute
	}

	return &Cached{next: next, cache: c, ttl: ttl}
}

func (c *Cached) ByUsername(ctx context.Context, name string) *models.Profile {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	return c.through(ctx, ByFname, strings.ToLower(name), func() *models.Profile {
		return c.next.ByUsername(ctx, name)
	})
}

func (c *Cached) ByFID(ctx context.Context, fid uint64) *models.Profile {
	if fid == 0 {
		return nil
	}

	return c.through(ctx, ByFID, strconv.FormatUint(fid, 10), func() *models.Profile {
		return c.next.ByFID(ctx, fid)
	})
}

func (c *Cached) ByAddress(ctx context.Context, address string) *models.Profile {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil
	}

	return c.through(ctx, ByAddress, strings.ToLower(address), func() *models.Profile {
		return c.next.ByAddress(ctx, address)
	})
}

func (c *Cached) ByENS(ctx context.Context, name string) *models.Profile {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	return c.through(ctx, ByENS, strings.ToLower(name), func() *models.Profile {
		return c.next.ByENS(ctx, name)
	})
}

func (c *Cached) through(ctx context.Context, by, value string, load func() *models.Profile) *models.Profile {
	const op = "icebreaker.Cached"

	key := by + "/" + value
	lg := log.From(ctx)

	p, ok, err := c.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.Cache.WithLabelValues(metrics.CacheError).Inc()
		lg.Warn("cache_get_failed", slog.String("op", op), slog.String("key", key), slog.String("err", err.Error()))
	case ok:
		metrics.Cache.WithLabelValues(metrics.CacheHit).Inc()
		return p
	default:
		metrics.Cache.WithLabelValues(metrics.CacheMiss).Inc()
	}

	p = load()
	if p == nil {
		return nil
	}

	if err := c.cache.Set(ctx, key, p, c.ttl); err != nil {
		lg.Warn("cache_set_failed", slog.String("op", op), slog.String("key", key), slog.String("err", err.Error()))
	}

	return p
}
