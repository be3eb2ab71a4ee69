package middleware

import "net/http"

// CacheControlNoStore — Cache-Control для всех динамических ответов фрейма.
const CacheControlNoStore = "no-cache, no-store, max-age=0"

// NoCache выставляет Cache-Control до вызова обработчика.
func NoCache() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", CacheControlNoStore)
			next.ServeHTTP(w, r)
		})
	}
}
