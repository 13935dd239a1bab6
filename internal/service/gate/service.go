// Package gate decides which page a visitor lands on.
package gate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nonutti-ng/web/internal/config"
	"github.com/nonutti-ng/web/internal/domain"
	"github.com/nonutti-ng/web/internal/timezone"
	"github.com/nonutti-ng/web/pkg/ctxutil"
)

// Page is the screen the visitor should see.
type Page string

const (
	PageMaintenance Page = "maintenance"
	PageCountdown   Page = "countdown"
	PageLanding     Page = "landing"
	PageOnboarding  Page = "onboarding"
	PageDashboard   Page = "dashboard"
)

const (
	defaultMaintenanceReason = "Major timezone refactoring"
	defaultContactURL        = "https://reddit.com/r/nonutnovember"
)

type userGetter interface {
	GetMe(ctx context.Context) (domain.User, error)
}

type prefsReader interface {
	Timezone(ctx context.Context, scope string) (string, error)
	DevOverride(ctx context.Context, scope string) (bool, error)
}

type changelogs interface {
	HasUnseen(ctx context.Context, scope string) (bool, error)
}

// Decision is the outcome of Resolve. Only the fields relevant to Page are set.
type Decision struct {
	Page          Page
	Reason        string
	ContactURL    string
	Countdown     *timezone.Countdown
	Timezone      string
	DevOverride   bool
	User          *domain.User
	ShowChangelog bool
}

// Service resolves page decisions.
type Service struct {
	log         *slog.Logger
	users       userGetter
	prefs       prefsReader
	changelogs  changelogs
	maintenance config.MaintenanceConfig
	challenge   config.ChallengeConfig
	now         func() time.Time
}

// NewService creates a gate service. A nil clock means time.Now.
func NewService(
	logger *slog.Logger,
	users userGetter,
	prefs prefsReader,
	changelogs changelogs,
	maintenance config.MaintenanceConfig,
	challenge config.ChallengeConfig,
	now func() time.Time,
) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		log:         logger.With("service", "gate"),
		users:       users,
		prefs:       prefs,
		changelogs:  changelogs,
		maintenance: maintenance,
		challenge:   challenge,
		now:         now,
	}
}

// Resolve picks the page for scope in order: maintenance, countdown,
// landing, onboarding, dashboard.
func (s *Service) Resolve(ctx context.Context, scope string) (Decision, error) {
	if s.maintenance.Enabled {
		d := Decision{
			Page:       PageMaintenance,
			Reason:     s.maintenance.Reason,
			ContactURL: s.maintenance.RedditURL,
		}
		if d.Reason == "" {
			d.Reason = defaultMaintenanceReason
		}
		if d.ContactURL == "" {
			d.ContactURL = defaultContactURL
		}
		return d, nil
	}

	tz, err := s.prefs.Timezone(ctx, scope)
	if err != nil {
		return Decision{}, fmt.Errorf("gate.Resolve: %w", err)
	}
	override, err := s.prefs.DevOverride(ctx, scope)
	if err != nil {
		return Decision{}, fmt.Errorf("gate.Resolve: %w", err)
	}

	d := Decision{Timezone: tz, DevOverride: override}
	now := s.now()

	if !timezone.InChallengeMonth(now, tz) && !s.challenge.DisableCountdown && !override {
		cd, err := timezone.UntilChallenge(now, tz)
		if err != nil {
			return Decision{}, fmt.Errorf("gate.Resolve: %w", err)
		}
		d.Page = PageCountdown
		d.Countdown = &cd
		return d, nil
	}

	if _, ok := ctxutil.SessionFromCtx(ctx); !ok {
		d.Page = PageLanding
		return d, nil
	}

	user, err := s.users.GetMe(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrUnauthorized) {
			s.log.WarnContext(ctx, "fetch user failed", slog.String("error", err.Error()))
		}
		d.Page = PageLanding
		return d, nil
	}
	d.User = &user

	if !user.HasCompletedOnboarding {
		d.Page = PageOnboarding
		return d, nil
	}

	d.Page = PageDashboard
	unseen, err := s.changelogs.HasUnseen(ctx, scope)
	if err != nil {
		s.log.WarnContext(ctx, "changelog lookup failed", slog.String("error", err.Error()))
	}
	d.ShowChangelog = unseen
	return d, nil
}
