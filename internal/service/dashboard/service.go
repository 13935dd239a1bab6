package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/nonutti-ng/web/internal/domain"
	"github.com/nonutti-ng/web/internal/timezone"
)

// apiClient is the part of the remote API the dashboard needs.
type apiClient interface {
	GetCurrentTry(ctx context.Context) (domain.TryWithEntries, error)
	Log(ctx context.Context, status domain.Status) (string, error)
	LogPrevious(ctx context.Context, date string, status domain.Status) (string, error)
	FailEntry(ctx context.Context, entryID string) error
}

// Service reconciles remote entries with the local check-in board.
type Service struct {
	log *slog.Logger
	api apiClient
	now func() time.Time
}

// NewService creates a dashboard service. A nil clock means time.Now.
func NewService(logger *slog.Logger, api apiClient, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		log: logger.With("service", "dashboard"),
		api: api,
		now: now,
	}
}

// OutSurvey is the optional reason given when a user marks themselves out.
type OutSurvey struct {
	Reason domain.OutReason
	Other  string
}

const maxSurveyText = 500

// Validate checks the survey answers.
func (s OutSurvey) Validate() error {
	var errs []domain.FieldError
	if !s.Reason.IsValid() {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "unknown reason"})
	}
	other := strings.TrimSpace(s.Other)
	if s.Reason == domain.OutReasonOther && other == "" {
		errs = append(errs, domain.FieldError{Field: "other", Message: "required when reason is other"})
	}
	if len([]rune(other)) > maxSurveyText {
		errs = append(errs, domain.FieldError{Field: "other", Message: fmt.Sprintf("must be at most %d characters", maxSurveyText)})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Load fetches the current try and builds a board in spec. A zero year
// falls back to the try's year, then to the current year in spec.
func (s *Service) Load(ctx context.Context, spec string, year int) (Board, error) {
	spec = timezone.Canonical(spec)
	if !timezone.IsValid(spec) {
		return Board{}, domain.NewValidationError("timezone", "unknown timezone")
	}

	tw, err := s.api.GetCurrentTry(ctx)
	if err != nil {
		return Board{}, fmt.Errorf("dashboard.Load: %w", domain.AsAPIError(err))
	}

	now := s.now()
	if year == 0 {
		year = tw.Try.Year
	}
	if year == 0 {
		local, _ := timezone.CurrentAt(now, spec)
		year = local.Year()
	}

	state := tw.Try.State
	if !state.IsValid() {
		state = domain.StateIn
	}
	if len(tw.Entries) > 0 {
		latest := slices.MaxFunc(tw.Entries, func(a, b domain.Entry) int { return a.Date.Compare(b.Date) })
		if latest.Status == domain.StatusOut {
			state = domain.StateOut
		}
	}

	checkIns := projectEntries(tw.Entries, spec)
	b := Board{
		Timezone:          spec,
		Year:              year,
		TryID:             tw.Try.TryID,
		State:             state,
		CheckIns:          checkIns,
		Entries:           tw.Entries,
		HasCheckedInToday: CheckedInToday(checkIns, tw.Entries, now, spec),
	}

	s.log.DebugContext(ctx, "board loaded",
		slog.String("try_id", b.TryID),
		slog.Int("entries", len(tw.Entries)),
		slog.String("state", b.State.String()),
	)
	return b, nil
}

// CurrentDay returns the board's challenge day at now: 0 before November,
// 1..30 during it and 31 after it.
func (s *Service) CurrentDay(b Board) int {
	return currentDay(b, s.now())
}

func currentDay(b Board, now time.Time) int {
	day, err := timezone.ChallengeDay(now, b.Year, b.Timezone)
	if err != nil {
		return 0
	}
	return day
}

// LogToday records today's status. Marking in is refused once the challenge
// is lost. Marking out fails today's existing entry when there is one and
// logs a new out entry otherwise. The survey is only logged.
func (s *Service) LogToday(ctx context.Context, b Board, status domain.Status, survey *OutSurvey) (Board, error) {
	if !status.IsValid() {
		return b, domain.NewValidationError("status", "must be in or out")
	}
	if survey != nil {
		if status != domain.StatusOut {
			return b, domain.NewValidationError("reason", "only allowed when marking out")
		}
		if err := survey.Validate(); err != nil {
			return b, err
		}
	}

	today := timezone.DayKey(s.now(), b.Timezone)
	existing, hasToday := b.CheckInByKey(today)

	var next Board
	switch status {
	case domain.StatusIn:
		if b.State == domain.StateOut {
			return b, domain.NewAPIError("The challenge is already over for you this month.", domain.CodeChallengeOver)
		}

		id, err := s.api.Log(ctx, domain.StatusIn)
		if err != nil {
			return b, fmt.Errorf("dashboard.LogToday: %w", domain.AsAPIError(err))
		}
		next = b.withCheckIn(domain.CheckIn{ID: id, Date: today, Status: domain.StatusIn})
		next.State = domain.StateIn

	case domain.StatusOut:
		id := existing.ID
		switch {
		case hasToday && existing.Status == domain.StatusOut:
			return b, domain.NewAPIError("You are already marked out for today.", domain.CodeAlreadyOut)
		case hasToday:
			if err := s.api.FailEntry(ctx, existing.ID); err != nil {
				return b, fmt.Errorf("dashboard.LogToday: %w", domain.AsAPIError(err))
			}
		default:
			var err error
			id, err = s.api.Log(ctx, domain.StatusOut)
			if err != nil {
				return b, fmt.Errorf("dashboard.LogToday: %w", domain.AsAPIError(err))
			}
		}
		next = b.withCheckIn(domain.CheckIn{ID: id, Date: today, Status: domain.StatusOut})
		next.State = domain.StateOut

		if survey != nil {
			s.log.InfoContext(ctx, "out survey",
				slog.String("reason", string(survey.Reason)),
				slog.String("other", strings.TrimSpace(survey.Other)),
			)
		}
	}

	next.HasCheckedInToday = true
	s.log.InfoContext(ctx, "checked in today",
		slog.String("status", status.String()),
		slog.String("day", today),
	)
	return next, nil
}

// LogPreviousDay backfills a past day that has no check-in yet. Once the
// challenge is lost only in-days before the first out day can be filled.
func (s *Service) LogPreviousDay(ctx context.Context, b Board, day int, status domain.Status) (Board, error) {
	if !status.IsValid() {
		return b, domain.NewValidationError("status", "must be in or out")
	}

	cur := currentDay(b, s.now())
	if day < 1 || day > timezone.ChallengeDays || day >= cur {
		return b, domain.NewAPIError("Only past days of the challenge can be logged.", domain.CodeInvalidDay)
	}
	if _, ok := b.CheckInForDay(day); ok {
		return b, domain.NewAPIError("This day already has an entry.", domain.CodeDayHasEntry)
	}
	if b.State == domain.StateOut {
		if status == domain.StatusOut {
			return b, domain.NewAPIError("The challenge is already over for you this month.", domain.CodeChallengeOver)
		}
		if first := b.FirstOutDay(); first > 0 && day >= first {
			return b, domain.NewAPIError("Days after your out day can't be changed.", domain.CodeChallengeOver)
		}
	}

	midnight, err := timezone.CreateDayInMonth(b.Year, day, b.Timezone)
	if err != nil {
		return b, domain.NewAPIError("Only past days of the challenge can be logged.", domain.CodeInvalidDay)
	}

	id, err := s.api.LogPrevious(ctx, timezone.ToUTCISOString(midnight), status)
	if err != nil {
		return b, fmt.Errorf("dashboard.LogPreviousDay: %w", domain.AsAPIError(err))
	}

	next := b.withCheckIn(domain.CheckIn{
		ID:     id,
		Date:   timezone.DayKey(midnight, b.Timezone),
		Status: status,
	})
	if status == domain.StatusOut {
		next.State = domain.StateOut
	}

	s.log.InfoContext(ctx, "previous day logged",
		slog.Int("day", day),
		slog.String("status", status.String()),
	)
	return next, nil
}

// FailExistingEntry turns an existing in-day into an out-day. Past days
// are locked once the challenge is lost.
func (s *Service) FailExistingEntry(ctx context.Context, b Board, day int) (Board, error) {
	cur := currentDay(b, s.now())
	if day < 1 || day > timezone.ChallengeDays || day > cur {
		return b, domain.NewAPIError("Only past days of the challenge can be changed.", domain.CodeInvalidDay)
	}

	c, ok := b.CheckInForDay(day)
	if !ok {
		return b, domain.NewAPIError("No entry found for this day", domain.CodeNoEntry)
	}
	if c.Status == domain.StatusOut {
		return b, domain.NewAPIError("This day is already marked out.", domain.CodeAlreadyOut)
	}
	if b.State == domain.StateOut && day < cur {
		return b, domain.NewAPIError("The challenge is already over for you this month.", domain.CodeChallengeOver)
	}

	if err := s.api.FailEntry(ctx, c.ID); err != nil {
		return b, fmt.Errorf("dashboard.FailExistingEntry: %w", domain.AsAPIError(err))
	}

	c.Status = domain.StatusOut
	next := b.withCheckIn(c)
	next.State = domain.StateOut

	s.log.InfoContext(ctx, "entry failed",
		slog.Int("day", day),
		slog.String("entry_id", c.ID),
	)
	return next, nil
}
