package middleware

import (
	"net/http"

	"github.com/petween/backend/pkg/errors"
)

// CORS handles Cross-Origin Resource Sharing
type CORS struct {
	allowedOrigins map[string]struct{}
	allowAll       bool
}

// NewCORS creates a CORS middleware. "*" allows every origin.
func NewCORS(allowedOrigins []string) *CORS {
	c := &CORS{allowedOrigins: make(map[string]struct{}, len(allowedOrigins))}
	for _, origin := range allowedOrigins {
		if origin == "*" {
			c.allowAll = true
		}
		c.allowedOrigins[origin] = struct{}{}
	}
	return c
}

// Handler returns the CORS middleware handler
func (c *CORS) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		allowed := origin != "" && c.isOriginAllowed(origin)

		if allowed {
			if c.allowAll {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)
			w.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)
			w.Header().Set("Access-Control-Max-Age", "3600")
		}

		// Preflight: answered here for allowed origins, refused otherwise.
		if r.Method == http.MethodOptions && origin != "" && r.Header.Get("Access-Control-Request-Method") != "" {
			if !allowed {
				writeError(w, http.StatusForbidden, errors.ErrCodeForbidden, "origin not allowed")
				return
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (c *CORS) isOriginAllowed(origin string) bool {
	if c.allowAll {
		return true
	}
	_, ok := c.allowedOrigins[origin]
	return ok
}
