package middleware

import "net/http"

// MaxBody caps request body reads at limit bytes. Handlers reading a
// larger body get an error from the decoder instead of accumulating
// unbounded input.
func MaxBody(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}

			next.ServeHTTP(w, r)
		})
	}
}
