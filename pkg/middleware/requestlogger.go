package middleware

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/artfolio/pkg/logger"
)

// RequestLogger stores a logger carrying correlation_id, user_id, trace_id
// and span_id in the request context for logger.FromContext. Mount it after
// RequestLogging, Tracing and Auth so those fields exist.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if userID := UserIDFromContext(ctx); userID != "" {
				ctx = logger.WithUserID(ctx, userID)
			}
			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
