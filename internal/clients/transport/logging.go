package transport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/pribylovaa/icebreaker-frame/pkg/log"
)

// WithLogging — одна финальная запись на исходящий вызов:
// msg="upstream", request_id, method, host, path, status, dur.
// base == nil — логгер берётся из контекста запроса (pkg/log).
//
// Безопасность: не логирует тело и заголовки.
func WithLogging(base *slog.Logger) Wrapper {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()

			l := base
			if l == nil {
				l = log.From(r.Context())
			}

			l = l.With(
				slog.String("request_id", r.Header.Get(HeaderRequestID)),
				slog.String("method", r.Method),
				slog.String("host", r.URL.Host),
				slog.String("path", r.URL.Path),
			)

			resp, err := next.RoundTrip(r)
			if err != nil {
				l.Warn("upstream",
					slog.String("err", err.Error()),
					slog.Duration("dur", time.Since(start)),
				)
				return nil, err
			}

			l.Info("upstream",
				slog.Int("status", resp.StatusCode),
				slog.Duration("dur", time.Since(start)),
			)

			return resp, nil
		})
	}
}
