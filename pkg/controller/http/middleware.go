package http

import (
	"crypto/subtle"
	"net/http"
)

// appKeyHeader carries the shared application key for callers such as agent
// actions that cannot hold a real credential flow.
const appKeyHeader = "X-App-Key"

// appKeyMiddleware validates the X-App-Key header when a key is configured.
// When no key is set the endpoints are open.
func appKeyMiddleware(appKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if appKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			got := r.Header.Get(appKeyHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(appKey)) != 1 {
				http.Error(w, "invalid or missing X-App-Key", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// corsMiddleware allows cross-origin calls from browser-hosted agents.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+appKeyHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
