package middleware

import "net/http"

// ForceJSON marks every request as asking for JSON, so API routes never
// answer with a page.
func ForceJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Header.Set("Accept", "application/json")
		next.ServeHTTP(w, r)
	})
}
