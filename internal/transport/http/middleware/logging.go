package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"hradmin/internal/platform/metrics"
	"hradmin/internal/requestctx"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Logger writes one access log line per request and feeds the metrics
// collector. It also attaches a logger tagged with the request id to the
// request context.
func Logger(logger *zap.Logger, collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLogger := logger.With(zap.String("request_id", GetRequestID(r.Context())))
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r.WithContext(requestctx.WithLogger(r.Context(), reqLogger)))

			latency := time.Since(start)
			collector.Record(recorder.status, latency)

			fields := []zap.Field{
				zap.Int("status", recorder.status),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
				zap.String("ip", clientIPKey(r)),
				zap.Duration("latency", latency),
			}
			if user, ok := GetUser(r.Context()); ok && user.UserID > 0 {
				fields = append(fields, zap.Int64("user_id", user.UserID))
			}
			switch {
			case recorder.status >= 500:
				reqLogger.Error("server error", fields...)
			case recorder.status >= 400:
				reqLogger.Warn("client error", fields...)
			default:
				reqLogger.Info("request", fields...)
			}
		})
	}
}
