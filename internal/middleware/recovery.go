package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/petween/backend/pkg/errors"
	"github.com/petween/backend/pkg/logger"
)

// Recovery turns a panicking handler into a 500 response.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("Panic in handler",
					"request_id", RequestIDFrom(r.Context()),
					"path", r.URL.Path,
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				writeError(w, http.StatusInternalServerError, errors.ErrCodeInternalError, "internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
