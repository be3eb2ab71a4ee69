package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/pribylovaa/icebreaker-frame/internal/clients/transport"
)

// RequestID обеспечивает X-Request-Id у каждого запроса: берёт входящий
// или генерирует hex-id (32 символа). Id уходит в ответ, в заголовок запроса
// (для errors.WriteError) и в контекст по transport.CtxRequestID, откуда его
// забирает исходящая цепочка к каталогу.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(transport.HeaderRequestID)
			if id == "" || len(id) > 128 {
				id = genID()
				r.Header.Set(transport.HeaderRequestID, id)
			}
			w.Header().Set(transport.HeaderRequestID, id)

			ctx := context.WithValue(r.Context(), transport.CtxRequestID, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
