package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/architeacher/storetools/pkg/logger"
)

// Recovery returns a middleware that recovers from panics.
func Recovery(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}

				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				reqLogger := log.WithContext(r.Context())
				reqLogger.Error().
					Str("error", fmt.Sprint(rvr)).
					Str("stack", string(debug.Stack())).
					Str("path", r.URL.Path).
					Str("method", r.Method).
					Msg("panic recovered")

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)

				_, _ = w.Write([]byte(`{"code":"INTERNAL_ERROR","message":"internal server error"}`))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
