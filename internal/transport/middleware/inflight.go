package middleware

import (
	"net/http"
	"sync"

	"github.com/nonutti-ng/web/pkg/ctxutil"
)

// InFlight allows one mutating request per device at a time. A second
// request arriving while the first is still running gets 409 busy, which
// keeps a double-clicked action from reaching the remote API twice.
func InFlight() Middleware {
	var active sync.Map // map[uuid.UUID]struct{}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := ctxutil.DeviceIDFromCtx(r.Context())
			if !ok || !isMutating(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			if _, busy := active.LoadOrStore(id, struct{}{}); busy {
				writeError(w, http.StatusConflict, "A request is already in progress.", "busy")
				return
			}
			defer active.Delete(id)

			next.ServeHTTP(w, r)
		})
	}
}

func isMutating(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}
