package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/msmebridge/marketplace/pkg/observability"
)

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs every HTTP request with method, path, status,
// duration, and remote address, and records the request duration histogram
// when metrics are wired.
func LoggingMiddleware(logger *slog.Logger, metrics *observability.MarketplaceMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)
			elapsed := time.Since(start)

			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rw.statusCode,
				"duration_ms", elapsed.Milliseconds(),
				"remote_addr", r.RemoteAddr,
			)

			if metrics != nil {
				metrics.RequestDuration.Record(context.WithoutCancel(r.Context()), elapsed.Seconds())
			}
		})
	}
}
