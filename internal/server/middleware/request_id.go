package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"jobmanager/internal/logger"
)

// RequestID attaches a correlation ID to each request. Incoming
// X-Request-ID headers are trusted so IDs survive proxy hops; absent
// ones get a fresh UUID. The ID is echoed in the response and stored
// in the context for the logger.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set("X-Request-ID", requestID)
		ctx := logger.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
