package middleware

import "net/http"

// WithNoStore keeps responses out of browser caches so a back-navigation
// never shows a stale portfolio.
func WithNoStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Expires", "0")
		w.Header().Set("Pragma", "no-cache")

		next.ServeHTTP(w, r)
	})
}
