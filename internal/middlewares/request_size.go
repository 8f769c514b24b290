package middlewares

import (
	"net/http"
)

// RequestSizeLimitMiddleware caps request body size in bytes. The cap is set
// high enough for assignment submission uploads; oversized bodies get a 413
// before the handler reads anything.
func RequestSizeLimitMiddleware(maxRequestSize int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxRequestSize {
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				w.Write([]byte(`{"error":"request body too large"}`))
				return
			}

			// Chunked bodies omit Content-Length; MaxBytesReader catches those
			r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)
			next.ServeHTTP(w, r)
		})
	}
}
