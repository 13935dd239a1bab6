package rest

import "net/http"

// Handlers groups every HTTP handler the server exposes.
type Handlers struct {
	Health      *HealthHandler
	Gate        *GateHandler
	Dashboard   *DashboardHandler
	Onboarding  *OnboardingHandler
	Preferences *PreferencesHandler
	Changelog   *ChangelogHandler
	Account     *AccountHandler
	Auth        *AuthHandler

	// Metrics is mounted at MetricsPath when set.
	Metrics     http.Handler
	MetricsPath string
}

// NewMux registers all routes.
func NewMux(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)
	if h.Metrics != nil && h.MetricsPath != "" {
		mux.Handle("GET "+h.MetricsPath, h.Metrics)
	}

	mux.HandleFunc("GET /api/gate", h.Gate.Resolve)

	mux.HandleFunc("GET /api/dashboard", h.Dashboard.Get)
	mux.HandleFunc("POST /api/dashboard/today", h.Dashboard.Today)
	mux.HandleFunc("POST /api/dashboard/confirm", h.Dashboard.Confirm)
	mux.HandleFunc("POST /api/dashboard/days/{day}", h.Dashboard.PreviousDay)
	mux.HandleFunc("POST /api/dashboard/days/{day}/fail", h.Dashboard.FailDay)

	mux.HandleFunc("GET /api/onboarding/steps", h.Onboarding.Steps)
	mux.HandleFunc("POST /api/onboarding", h.Onboarding.Submit)

	mux.HandleFunc("GET /api/preferences", h.Preferences.Get)
	mux.HandleFunc("PUT /api/preferences/timezone", h.Preferences.SetTimezone)
	mux.HandleFunc("DELETE /api/preferences/timezone", h.Preferences.ClearTimezone)
	mux.HandleFunc("POST /api/preferences/dev-override", h.Preferences.ToggleDevOverride)

	mux.HandleFunc("GET /api/changelog", h.Changelog.List)
	mux.HandleFunc("POST /api/changelog/{id}/seen", h.Changelog.MarkSeen)

	mux.HandleFunc("GET /api/account", h.Account.Get)

	mux.HandleFunc("GET /auth/redirect", h.Auth.Redirect)
	mux.HandleFunc("GET /auth/callback", h.Auth.Callback)
	mux.HandleFunc("GET /auth/popup", h.Auth.Popup)

	return mux
}
