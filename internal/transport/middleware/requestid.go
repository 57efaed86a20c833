package middleware

import (
	"net/http"

	"github.com/opencivic/civic-reporter/pkg/logger"

	"github.com/google/uuid"
)

// RequestID honors an inbound X-Request-ID, minting a UUID otherwise, and
// threads it through the context logger and the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := logger.With(r.Context(), "request_id", requestID)

		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
