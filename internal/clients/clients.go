package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pribylovaa/icebreaker-frame/internal/analytics"
	"github.com/pribylovaa/icebreaker-frame/internal/cache"
	"github.com/pribylovaa/icebreaker-frame/internal/clients/transport"
	"github.com/pribylovaa/icebreaker-frame/internal/config"
	"github.com/pribylovaa/icebreaker-frame/internal/icebreaker"
)

const userAgent = "icebreaker-frame"

// Clients агрегирует внешние зависимости фрейма: каталог профилей
// (опционально за Redis-кэшем) и приёмник аналитики.
type Clients struct {
	Directory icebreaker.Source
	Tracker   analytics.Tracker

	closers []func() error
}

// New создаёт HTTP-клиент каталога, кэш и трекер аналитики по конфигурации.
func New(ctx context.Context, cfg config.Config, log *slog.Logger) (*Clients, error) {
	const op = "internal/clients/New"

	// Цепочка исходящих обёрток: metadata -> timeout -> logging.
	// Логгер nil: запись берёт request-scoped логгер из контекста.
	rt := transport.Chain(http.DefaultTransport,
		transport.WithMetadata(userAgent),
		transport.WithTimeout(cfg.Timeouts.Upstream),
		transport.WithLogging(nil),
	)

	c := &Clients{}

	var dir icebreaker.Source = icebreaker.New(cfg.Directory.BaseURL, &http.Client{Transport: rt})

	if cfg.Cache.RedisURL != "" {
		pc, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL, cfg.Cache.Prefix)
		if err != nil {
			return nil, fmt.Errorf("%s: cache: %w", op, err)
		}

		c.closers = append(c.closers, pc.Close)
		dir = icebreaker.NewCached(dir, pc, cfg.Cache.TTL)
		log.Info("directory_cache_enabled", slog.Duration("ttl", cfg.Cache.TTL))
	}

	c.Directory = dir

	tracker, err := newTracker(cfg.Analytics, rt, log)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("%s: analytics: %w", op, err)
	}

	c.Tracker = tracker
	c.closers = append(c.closers, tracker.Close)

	return c, nil
}

func newTracker(cfg config.AnalyticsConfig, rt http.RoundTripper, log *slog.Logger) (analytics.Tracker, error) {
	switch cfg.Sink {
	case config.SinkPostHog:
		log.Info("analytics_sink", slog.String("sink", cfg.Sink))
		return analytics.NewPostHog(analytics.PostHogOptions{
			APIKey:    cfg.PostHogKey,
			Endpoint:  cfg.PostHogHost,
			Transport: rt,
			Logger:    log,
		})

	case config.SinkAMQP:
		log.Info("analytics_sink", slog.String("sink", cfg.Sink))
		return analytics.NewAMQP(cfg.AMQPURL, cfg.AMQPExchange, log)

	default:
		return analytics.Noop{}, nil
	}
}

// Close закрывает кэш и сбрасывает очередь аналитики (в обратном порядке создания).
func (c *Clients) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
