package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout ограничивает запрос дедлайном d, если дедлайна ещё нет. d <= 0 — no-op.
// Дедлайн видят поиск в каталоге и синхронная доставка аналитики.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := r.Context().Deadline(); ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
