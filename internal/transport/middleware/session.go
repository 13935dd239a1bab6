package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/nonutti-ng/web/pkg/ctxutil"
)

// Session collects the auth-service cookies named in names and stores them
// in the context as a Cookie header value for the remote API client. Other
// cookies are never forwarded.
func Session(names []string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var parts []string
			for _, c := range r.Cookies() {
				if c.Value == "" || !slices.Contains(names, c.Name) {
					continue
				}
				parts = append(parts, c.Name+"="+c.Value)
			}

			if len(parts) > 0 {
				r = r.WithContext(ctxutil.WithSession(r.Context(), strings.Join(parts, "; ")))
			}
			next.ServeHTTP(w, r)
		})
	}
}
