package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/nonutti-ng/web/internal/service/preferences"
)

type preferencesService interface {
	Timezone(ctx context.Context, scope string) (string, error)
	SetTimezone(ctx context.Context, scope, spec string) (string, error)
	ClearTimezone(ctx context.Context, scope string) error
	DevOverride(ctx context.Context, scope string) (bool, error)
	ToggleDevOverride(ctx context.Context, scope string) (bool, error)
}

// PreferencesHandler serves per-device settings.
type PreferencesHandler struct {
	svc preferencesService
	log *slog.Logger
}

// NewPreferencesHandler creates a PreferencesHandler.
func NewPreferencesHandler(svc preferencesService, logger *slog.Logger) *PreferencesHandler {
	return &PreferencesHandler{svc: svc, log: logger.With("handler", "preferences")}
}

type preferencesResponse struct {
	Timezone        string                       `json:"timezone"`
	TimezoneLabel   string                       `json:"timezoneLabel"`
	CommonTimezones []preferences.TimezoneOption `json:"commonTimezones"`
	DevOverride     bool                         `json:"devOverride"`
}

type timezoneRequest struct {
	Timezone string `json:"timezone"`
}

type timezoneResponse struct {
	Timezone string `json:"timezone"`
	Label    string `json:"label"`
}

// Get handles GET /api/preferences.
func (h *PreferencesHandler) Get(w http.ResponseWriter, r *http.Request) {
	scope, ok := deviceScope(w, r)
	if !ok {
		return
	}

	tz, err := h.svc.Timezone(r.Context(), scope)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	override, err := h.svc.DevOverride(r.Context(), scope)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, preferencesResponse{
		Timezone:        tz,
		TimezoneLabel:   preferences.Label(tz),
		CommonTimezones: preferences.CommonTimezones(),
		DevOverride:     override,
	})
}

// SetTimezone handles PUT /api/preferences/timezone.
func (h *PreferencesHandler) SetTimezone(w http.ResponseWriter, r *http.Request) {
	scope, ok := deviceScope(w, r)
	if !ok {
		return
	}

	var req timezoneRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	tz, err := h.svc.SetTimezone(r.Context(), scope, req.Timezone)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, timezoneResponse{Timezone: tz, Label: preferences.Label(tz)})
}

// ClearTimezone handles DELETE /api/preferences/timezone and returns the
// timezone now in effect.
func (h *PreferencesHandler) ClearTimezone(w http.ResponseWriter, r *http.Request) {
	scope, ok := deviceScope(w, r)
	if !ok {
		return
	}

	if err := h.svc.ClearTimezone(r.Context(), scope); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	tz, err := h.svc.Timezone(r.Context(), scope)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, timezoneResponse{Timezone: tz, Label: preferences.Label(tz)})
}

// ToggleDevOverride handles POST /api/preferences/dev-override.
func (h *PreferencesHandler) ToggleDevOverride(w http.ResponseWriter, r *http.Request) {
	scope, ok := deviceScope(w, r)
	if !ok {
		return
	}

	v, err := h.svc.ToggleDevOverride(r.Context(), scope)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"devOverride": v})
}
