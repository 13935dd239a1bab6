package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/nonutti-ng/web/internal/config"
)

// Maintenance rejects API calls with 503 while maintenance mode is on.
// Paths outside /api/ and the exempt paths keep working so health checks
// and the gate can still answer.
func Maintenance(cfg config.MaintenanceConfig, exempt ...string) Middleware {
	return func(next http.Handler) http.Handler {
		if !cfg.Enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if !strings.HasPrefix(path, "/api/") || slices.Contains(exempt, path) {
				next.ServeHTTP(w, r)
				return
			}

			msg := cfg.Reason
			if msg == "" {
				msg = "The site is under maintenance."
			}
			w.Header().Set("Retry-After", "300")
			writeError(w, http.StatusServiceUnavailable, msg, "maintenance")
		})
	}
}
