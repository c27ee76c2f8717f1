package middleware

import (
	"net/http"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// RequestLogger returns a middleware that logs every HTTP request with
// method, path, status, duration and chi request ID. 5xx responses are
// logged at error level, 4xx at warn. The logger is also attached to the
// request context for the response helpers.
func RequestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Create a response writer wrapper to capture status code
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			// Handlers reach the logger through zerolog.Ctx.
			reqLogger := logger.With().Str("request_id", chimw.GetReqID(r.Context())).Logger()
			next.ServeHTTP(wrapped, r.WithContext(reqLogger.WithContext(r.Context())))

			// Strip CR/LF from user-supplied values before logging.
			sanitize := strings.NewReplacer("\n", "", "\r", "").Replace

			var event *zerolog.Event
			switch {
			case wrapped.statusCode >= http.StatusInternalServerError:
				event = logger.Error()
			case wrapped.statusCode >= http.StatusBadRequest:
				event = logger.Warn()
			default:
				event = logger.Info()
			}
			event.
				Str("method", sanitize(r.Method)).
				Str("path", sanitize(r.URL.Path)).
				Int("status", wrapped.statusCode).
				Dur("duration", time.Since(start)).
				Str("request_id", chimw.GetReqID(r.Context())).
				Msg("http request")
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
