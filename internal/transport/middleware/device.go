package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/nonutti-ng/web/pkg/ctxutil"
)

// DeviceCookie identifies a browser across requests. It scopes local
// preferences and confirmation tokens; it is not an authentication factor.
const DeviceCookie = "nnn_device"

const deviceCookieMaxAge = 400 * 24 * time.Hour

// Device loads the device ID from its cookie, issuing a new one when the
// cookie is missing or malformed.
func Device() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := uuid.Nil
			if c, err := r.Cookie(DeviceCookie); err == nil {
				if parsed, err := uuid.Parse(c.Value); err == nil {
					id = parsed
				}
			}

			if id == uuid.Nil {
				id = uuid.New()
				http.SetCookie(w, &http.Cookie{
					Name:     DeviceCookie,
					Value:    id.String(),
					Path:     "/",
					MaxAge:   int(deviceCookieMaxAge.Seconds()),
					HttpOnly: true,
					Secure:   isHTTPS(r),
					SameSite: http.SameSiteLaxMode,
				})
			}

			next.ServeHTTP(w, r.WithContext(ctxutil.WithDeviceID(r.Context(), id)))
		})
	}
}

func isHTTPS(r *http.Request) bool {
	return r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
}
