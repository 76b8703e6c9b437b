package middleware

import (
	"net/http"

	"pto-tracker/pkg/logger"

	"github.com/google/uuid"
)

// TraceID propagates an X-Trace-ID header through the request-scoped logger
// and back on the response, minting one when the caller did not send any.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := logger.With(r.Context(), "traceID", traceID)
		w.Header().Set("X-Trace-ID", traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
