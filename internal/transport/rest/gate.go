package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/nonutti-ng/web/internal/service/gate"
	"github.com/nonutti-ng/web/internal/timezone"
)

type gateResolver interface {
	Resolve(ctx context.Context, scope string) (gate.Decision, error)
}

// GateHandler tells the front end which page to render.
type GateHandler struct {
	svc gateResolver
	log *slog.Logger
}

// NewGateHandler creates a GateHandler.
func NewGateHandler(svc gateResolver, logger *slog.Logger) *GateHandler {
	return &GateHandler{svc: svc, log: logger.With("handler", "gate")}
}

type gateResponse struct {
	Page          gate.Page           `json:"page"`
	Reason        string              `json:"reason,omitempty"`
	ContactURL    string              `json:"contactUrl,omitempty"`
	Countdown     *timezone.Countdown `json:"countdown,omitempty"`
	Timezone      string              `json:"timezone,omitempty"`
	DevOverride   bool                `json:"devOverride"`
	User          *userResponse       `json:"user,omitempty"`
	ShowChangelog bool                `json:"showChangelog"`
}

// Resolve handles GET /api/gate.
func (h *GateHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	scope, ok := deviceScope(w, r)
	if !ok {
		return
	}

	d, err := h.svc.Resolve(r.Context(), scope)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := gateResponse{
		Page:          d.Page,
		Reason:        d.Reason,
		ContactURL:    d.ContactURL,
		Countdown:     d.Countdown,
		Timezone:      d.Timezone,
		DevOverride:   d.DevOverride,
		ShowChangelog: d.ShowChangelog,
	}
	if d.User != nil {
		u := toUserResponse(*d.User)
		resp.User = &u
	}
	writeJSON(w, http.StatusOK, resp)
}
