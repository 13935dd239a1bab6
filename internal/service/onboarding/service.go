// Package onboarding validates and submits the first-run questionnaire.
package onboarding

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nonutti-ng/web/internal/domain"
)

type apiClient interface {
	CompleteOnboarding(ctx context.Context, answers domain.OnboardingAnswers) error
}

type timezoneSetter interface {
	SetTimezone(ctx context.Context, scope, spec string) (string, error)
}

// Service submits onboarding answers.
type Service struct {
	log   *slog.Logger
	api   apiClient
	prefs timezoneSetter
}

// NewService creates an onboarding service.
func NewService(logger *slog.Logger, api apiClient, prefs timezoneSetter) *Service {
	return &Service{
		log:   logger.With("service", "onboarding"),
		api:   api,
		prefs: prefs,
	}
}

// Submit validates the answers, stores the chosen timezone for scope and
// sends the questionnaire. Invalid input never reaches the remote API.
func (s *Service) Submit(ctx context.Context, scope string, in SubmitInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	if tz := strings.TrimSpace(in.Timezone); tz != "" {
		if _, err := s.prefs.SetTimezone(ctx, scope, tz); err != nil {
			return fmt.Errorf("onboarding.Submit: %w", err)
		}
	}

	if err := s.api.CompleteOnboarding(ctx, in.answers()); err != nil {
		return fmt.Errorf("onboarding.Submit: %w", domain.AsAPIError(err))
	}

	s.log.InfoContext(ctx, "onboarding completed",
		slog.String("age_group", string(in.AgeGroup)),
		slog.Bool("has_reason", strings.TrimSpace(in.Reason) != ""),
	)
	return nil
}

// Step is one screen of the questionnaire.
type Step struct {
	Number   int    `json:"number"`
	ID       string `json:"id"`
	Title    string `json:"title"`
	Optional bool   `json:"optional"`
}

var steps = []Step{
	{Number: 1, ID: "age", Title: "What's your age group?"},
	{Number: 2, ID: "gender", Title: "What's your gender?"},
	{Number: 3, ID: "participation", Title: "Have you done NNN before?"},
	{Number: 4, ID: "reason", Title: "Why are you doing NNN?", Optional: true},
	{Number: 5, ID: "timezone", Title: "Set your timezone", Optional: true},
	{Number: 6, ID: "reddit", Title: "Link your Reddit account", Optional: true},
	{Number: 7, ID: "done", Title: "You're all set!"},
}

// Steps returns the questionnaire screens in order.
func Steps() []Step {
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}
