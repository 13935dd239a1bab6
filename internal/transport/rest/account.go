package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/nonutti-ng/web/internal/service/account"
)

type accountService interface {
	Overview(ctx context.Context) (account.Overview, error)
}

// AccountHandler serves the signed-in user's profile.
type AccountHandler struct {
	svc accountService
	log *slog.Logger
}

// NewAccountHandler creates an AccountHandler.
func NewAccountHandler(svc accountService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{svc: svc, log: logger.With("handler", "account")}
}

type accountResponse struct {
	User   userResponse    `json:"user"`
	Reddit *redditResponse `json:"reddit"`
}

// Get handles GET /api/account.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	ov, err := h.svc.Overview(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, accountResponse{
		User:   toUserResponse(ov.User),
		Reddit: toRedditResponse(ov.Reddit),
	})
}
