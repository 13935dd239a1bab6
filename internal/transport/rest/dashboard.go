package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/nonutti-ng/web/internal/confirm"
	"github.com/nonutti-ng/web/internal/domain"
	"github.com/nonutti-ng/web/internal/service/dashboard"
	"github.com/nonutti-ng/web/internal/timezone"
)

type dashboardService interface {
	Load(ctx context.Context, spec string, year int) (dashboard.Board, error)
	Grid(b dashboard.Board, now time.Time) []dashboard.Day
	Summarize(b dashboard.Board, now time.Time) dashboard.Summary
	LogToday(ctx context.Context, b dashboard.Board, status domain.Status, survey *dashboard.OutSurvey) (dashboard.Board, error)
	LogPreviousDay(ctx context.Context, b dashboard.Board, day int, status domain.Status) (dashboard.Board, error)
	FailExistingEntry(ctx context.Context, b dashboard.Board, day int) (dashboard.Board, error)
}

type timezoneReader interface {
	Timezone(ctx context.Context, scope string) (string, error)
}

type confirmer interface {
	Issue(action confirm.Action, subject string, day int) (confirm.Token, error)
	Verify(token string, action confirm.Action, subject string, day int) error
}

// DashboardHandler serves the check-in board. Destructive actions need a
// confirmation token issued by Confirm and presented after its delay.
type DashboardHandler struct {
	svc     dashboardService
	prefs   timezoneReader
	confirm confirmer
	year    int
	now     func() time.Time
	log     *slog.Logger
}

// NewDashboardHandler creates a DashboardHandler. A zero year follows the
// current try. A nil clock means time.Now.
func NewDashboardHandler(
	svc dashboardService,
	prefs timezoneReader,
	confirm confirmer,
	year int,
	now func() time.Time,
	logger *slog.Logger,
) *DashboardHandler {
	if now == nil {
		now = time.Now
	}
	return &DashboardHandler{
		svc:     svc,
		prefs:   prefs,
		confirm: confirm,
		year:    year,
		now:     now,
		log:     logger.With("handler", "dashboard"),
	}
}

type dashboardResponse struct {
	Timezone          string                `json:"timezone"`
	Year              int                   `json:"year"`
	State             domain.ChallengeState `json:"state"`
	HasCheckedInToday bool                  `json:"hasCheckedInToday"`
	CheckIns          []domain.CheckIn      `json:"checkIns"`
	Days              []dashboard.Day       `json:"days"`
	Summary           dashboard.Summary     `json:"summary"`
}

type todayRequest struct {
	Status       domain.Status    `json:"status"`
	ConfirmToken string           `json:"confirmToken,omitempty"`
	Reason       domain.OutReason `json:"reason,omitempty"`
	Other        string           `json:"other,omitempty"`
}

type confirmRequest struct {
	Action confirm.Action `json:"action"`
	Day    int            `json:"day,omitempty"`
}

type previousDayRequest struct {
	Status domain.Status `json:"status"`
}

type failDayRequest struct {
	ConfirmToken string `json:"confirmToken"`
}

// Get handles GET /api/dashboard.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	scope, ok := deviceScope(w, r)
	if !ok {
		return
	}

	b, err := h.load(r.Context(), scope)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(b))
}

// Confirm handles POST /api/dashboard/confirm. It starts the countdown for
// a destructive action.
func (h *DashboardHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	scope, ok := deviceScope(w, r)
	if !ok {
		return
	}

	var req confirmRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	switch req.Action {
	case confirm.ActionOutToday:
		req.Day = 0
	case confirm.ActionFailDay:
		if req.Day < 1 || req.Day > timezone.ChallengeDays {
			handleError(h.log, w, r, domain.NewValidationError("day", "must be between 1 and 30"))
			return
		}
	default:
		handleError(h.log, w, r, domain.NewValidationError("action", "must be out_today or fail_day"))
		return
	}

	tok, err := h.confirm.Issue(req.Action, scope, req.Day)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tok)
}

// Today handles POST /api/dashboard/today.
func (h *DashboardHandler) Today(w http.ResponseWriter, r *http.Request) {
	scope, ok := deviceScope(w, r)
	if !ok {
		return
	}

	var req todayRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var survey *dashboard.OutSurvey
	if req.Status == domain.StatusOut {
		if err := h.confirm.Verify(req.ConfirmToken, confirm.ActionOutToday, scope, 0); err != nil {
			handleError(h.log, w, r, err)
			return
		}
		if req.Reason != "" {
			survey = &dashboard.OutSurvey{Reason: req.Reason, Other: req.Other}
		}
	}

	b, err := h.load(r.Context(), scope)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	next, err := h.svc.LogToday(r.Context(), b, req.Status, survey)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(next))
}

// PreviousDay handles POST /api/dashboard/days/{day}.
func (h *DashboardHandler) PreviousDay(w http.ResponseWriter, r *http.Request) {
	scope, ok := deviceScope(w, r)
	if !ok {
		return
	}

	day, err := pathDay(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req previousDayRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	b, err := h.load(r.Context(), scope)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	next, err := h.svc.LogPreviousDay(r.Context(), b, day, req.Status)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(next))
}

// FailDay handles POST /api/dashboard/days/{day}/fail.
func (h *DashboardHandler) FailDay(w http.ResponseWriter, r *http.Request) {
	scope, ok := deviceScope(w, r)
	if !ok {
		return
	}

	day, err := pathDay(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req failDayRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if err := h.confirm.Verify(req.ConfirmToken, confirm.ActionFailDay, scope, day); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	b, err := h.load(r.Context(), scope)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	next, err := h.svc.FailExistingEntry(r.Context(), b, day)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(next))
}

func (h *DashboardHandler) load(ctx context.Context, scope string) (dashboard.Board, error) {
	tz, err := h.prefs.Timezone(ctx, scope)
	if err != nil {
		return dashboard.Board{}, err
	}
	return h.svc.Load(ctx, tz, h.year)
}

func (h *DashboardHandler) view(b dashboard.Board) dashboardResponse {
	now := h.now()
	checkIns := b.CheckIns
	if checkIns == nil {
		checkIns = []domain.CheckIn{}
	}
	return dashboardResponse{
		Timezone:          b.Timezone,
		Year:              b.Year,
		State:             b.State,
		HasCheckedInToday: b.HasCheckedInToday,
		CheckIns:          checkIns,
		Days:              h.svc.Grid(b, now),
		Summary:           h.svc.Summarize(b, now),
	}
}

func pathDay(r *http.Request) (int, error) {
	day, err := strconv.Atoi(r.PathValue("day"))
	if err != nil {
		return 0, domain.NewValidationError("day", "must be a number")
	}
	return day, nil
}
