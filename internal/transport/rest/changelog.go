package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/nonutti-ng/web/internal/domain"
	"github.com/nonutti-ng/web/internal/service/changelog"
)

type changelogService interface {
	All() []domain.ChangelogEntry
	HasUnseen(ctx context.Context, scope string) (bool, error)
	MarkSeen(ctx context.Context, scope, id string) error
}

// ChangelogHandler serves release notes and their seen state.
type ChangelogHandler struct {
	svc   changelogService
	prefs timezoneReader
	log   *slog.Logger
}

// NewChangelogHandler creates a ChangelogHandler.
func NewChangelogHandler(svc changelogService, prefs timezoneReader, logger *slog.Logger) *ChangelogHandler {
	return &ChangelogHandler{svc: svc, prefs: prefs, log: logger.With("handler", "changelog")}
}

type changelogEntryResponse struct {
	domain.ChangelogEntry
	FormattedDate string `json:"formattedDate"`
}

type changelogResponse struct {
	Entries   []changelogEntryResponse `json:"entries"`
	HasUnseen bool                     `json:"hasUnseen"`
}

// List handles GET /api/changelog.
func (h *ChangelogHandler) List(w http.ResponseWriter, r *http.Request) {
	scope, ok := deviceScope(w, r)
	if !ok {
		return
	}

	tz, err := h.prefs.Timezone(r.Context(), scope)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	unseen, err := h.svc.HasUnseen(r.Context(), scope)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	all := h.svc.All()
	resp := changelogResponse{
		Entries:   make([]changelogEntryResponse, 0, len(all)),
		HasUnseen: unseen,
	}
	for _, e := range all {
		resp.Entries = append(resp.Entries, changelogEntryResponse{
			ChangelogEntry: e,
			FormattedDate:  changelog.FormatDate(e.Date, tz),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// MarkSeen handles POST /api/changelog/{id}/seen.
func (h *ChangelogHandler) MarkSeen(w http.ResponseWriter, r *http.Request) {
	scope, ok := deviceScope(w, r)
	if !ok {
		return
	}

	if err := h.svc.MarkSeen(r.Context(), scope, r.PathValue("id")); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
