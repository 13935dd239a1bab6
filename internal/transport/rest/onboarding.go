package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/nonutti-ng/web/internal/service/onboarding"
)

type onboardingService interface {
	Submit(ctx context.Context, scope string, in onboarding.SubmitInput) error
}

// OnboardingHandler serves the first-run questionnaire.
type OnboardingHandler struct {
	svc onboardingService
	log *slog.Logger
}

// NewOnboardingHandler creates an OnboardingHandler.
func NewOnboardingHandler(svc onboardingService, logger *slog.Logger) *OnboardingHandler {
	return &OnboardingHandler{svc: svc, log: logger.With("handler", "onboarding")}
}

// Steps handles GET /api/onboarding/steps.
func (h *OnboardingHandler) Steps(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"steps": onboarding.Steps()})
}

// Submit handles POST /api/onboarding.
func (h *OnboardingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	scope, ok := deviceScope(w, r)
	if !ok {
		return
	}

	var in onboarding.SubmitInput
	if err := decodeJSON(w, r, &in); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if err := h.svc.Submit(r.Context(), scope, in); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
