package transport

import (
	"net/http"

	"github.com/google/uuid"
)

type CtxKey string

// CtxRequestID — ключ контекста с id входящего запроса (кладёт middleware.RequestID).
const CtxRequestID CtxKey = "request_id"

const HeaderRequestID = "X-Request-Id"

// WithMetadata — добавляет в исходящий запрос заголовки:
//   - X-Request-Id (из контекста, иначе новый UUID),
//   - User-Agent (если передан параметром).
//
// Исходный запрос не модифицируется.
func WithMetadata(userAgent string) Wrapper {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			r = r.Clone(r.Context())

			if r.Header.Get(HeaderRequestID) == "" {
				rid, _ := r.Context().Value(CtxRequestID).(string)
				if rid == "" {
					rid = uuid.NewString()
				}
				r.Header.Set(HeaderRequestID, rid)
			}

			if userAgent != "" {
				r.Header.Set("User-Agent", userAgent)
			}

			return next.RoundTrip(r)
		})
	}
}
