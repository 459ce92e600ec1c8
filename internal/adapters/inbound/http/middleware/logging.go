package middleware

import (
	"net/http"
	"time"

	"github.com/architeacher/storetools/pkg/logger"
)

const healthPath = "/health"

// AccessLogger logs one line per request, at warn for 4xx and error for 5xx.
// Webhook deliveries also name the store that sent them. Health checks are
// skipped unless logHealthChecks is set.
func AccessLogger(log logger.Logger, logHealthChecks bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == healthPath && !logHealthChecks {
				next.ServeHTTP(w, r)

				return
			}

			start := time.Now()
			recorder := &deliveryRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			reqLogger := log.WithContext(r.Context()).
				With().
				Str("component", "webhook_server").
				Logger()

			event := reqLogger.Info()

			switch {
			case recorder.status >= http.StatusInternalServerError:
				event = reqLogger.Error()
			case recorder.status >= http.StatusBadRequest:
				event = reqLogger.Warn()
			}

			if source := r.Header.Get(WebhookSourceHeader); source != "" {
				event = event.Str("webhook_source", source)
			}

			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("remote_addr", r.RemoteAddr).
				Int("status", recorder.status).
				Int("bytes", recorder.written).
				Dur("duration", time.Since(start)).
				Msg("request handled")
		})
	}
}

// deliveryRecorder remembers the status and size of a response.
type deliveryRecorder struct {
	http.ResponseWriter

	status      int
	written     int
	wroteHeader bool
}

func (w *deliveryRecorder) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}

	w.status = status
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *deliveryRecorder) Write(b []byte) (int, error) {
	w.wroteHeader = true

	n, err := w.ResponseWriter.Write(b)
	w.written += n

	return n, err
}

func (w *deliveryRecorder) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
