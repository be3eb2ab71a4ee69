package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/posthog/posthog-go"
	"github.com/pribylovaa/icebreaker-frame/internal/metrics"
)

// PostHogOptions — параметры PostHog-клиента.
type PostHogOptions struct {
	APIKey string
	// Endpoint — пусто: облачный PostHog по умолчанию.
	Endpoint  string
	Interval  time.Duration
	BatchSize int
	Transport http.RoundTripper
	Logger    *slog.Logger
}

// PostHog — Tracker поверх posthog-go. Capture только ставит событие в очередь
// клиента; фактическая отправка идёт батчами, сбои приходят в callback.
type PostHog struct {
	client posthog.Client
}

func NewPostHog(opts PostHogOptions) (*PostHog, error) {
	const op = "analytics.NewPostHog"

	if opts.APIKey == "" {
		return nil, fmt.Errorf("%s: empty api key", op)
	}

	lg := opts.Logger
	if lg == nil {
		lg = slog.Default()
	}
	lg = lg.With(slog.String("component", "posthog"))

	client, err := posthog.NewWithConfig(opts.APIKey, posthog.Config{
		Endpoint:  opts.Endpoint,
		Interval:  opts.Interval,
		BatchSize: opts.BatchSize,
		Transport: opts.Transport,
		Logger:    slogAdapter{l: lg},
		Callback:  failureCallback{l: lg},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &PostHog{client: client}, nil
}

func (p *PostHog) Capture(_ context.Context, e Event) error {
	const op = "analytics.PostHog.Capture"

	if err := validate(&e); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	props := posthog.NewProperties()
	for k, v := range e.Properties {
		props.Set(k, v)
	}

	err := p.client.Enqueue(posthog.Capture{
		Uuid:       uuid.NewString(),
		DistinctId: e.DistinctID,
		Event:      e.Name,
		Timestamp:  e.Timestamp,
		Properties: props,
	})
	if err != nil {
		return fmt.Errorf("%s: enqueue: %w", op, err)
	}

	return nil
}

// Close дожидается отправки накопленного батча.
func (p *PostHog) Close() error { return p.client.Close() }

// slogAdapter — posthog.Logger поверх slog.
type slogAdapter struct{ l *slog.Logger }

func (a slogAdapter) Debugf(format string, args ...interface{}) {
	a.l.Debug(fmt.Sprintf(format, args...))
}

func (a slogAdapter) Logf(format string, args ...interface{}) {
	a.l.Info(fmt.Sprintf(format, args...))
}

func (a slogAdapter) Warnf(format string, args ...interface{}) {
	a.l.Warn(fmt.Sprintf(format, args...))
}

func (a slogAdapter) Errorf(format string, args ...interface{}) {
	a.l.Error(fmt.Sprintf(format, args...))
}

// failureCallback считает события, которые клиент отбросил.
type failureCallback struct{ l *slog.Logger }

func (failureCallback) Success(posthog.APIMessage) {}

func (c failureCallback) Failure(_ posthog.APIMessage, err error) {
	metrics.AnalyticsFailures.Inc()
	c.l.Warn("analytics_delivery_failed", slog.String("sink", "posthog"), slog.String("err", err.Error()))
}
