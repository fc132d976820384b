package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/bnema/thumbd/internal/infrastructure/logger"
)

// RequestLogger writes one access log line per request. Health probes are
// logged at debug level.
func RequestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	log = logger.Component(log, "http")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}

				ev := log.Info()
				switch {
				case status >= http.StatusInternalServerError:
					ev = log.Error()
				case r.URL.Path == "/healthz":
					ev = log.Debug()
				}
				ev.
					Str("method", r.Method).
					Str("path", logger.SanitizeForLog(r.URL.Path)).
					Int("status", status).
					Int("bytes", ww.BytesWritten()).
					Dur("duration", time.Since(start)).
					Str("request_id", chimw.GetReqID(r.Context())).
					Msg("request")
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
