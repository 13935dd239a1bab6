package gate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/nonutti-ng/web/internal/adapter/memory"
	"github.com/nonutti-ng/web/internal/config"
	"github.com/nonutti-ng/web/internal/domain"
	"github.com/nonutti-ng/web/internal/service/preferences"
	"github.com/nonutti-ng/web/pkg/ctxutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:generate moq -out mocks_test.go -pkg gate . userGetter changelogs

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

const scope = "dev-1"

var _ prefsReader = (*preferences.Service)(nil)

var (
	inNovember  = time.Date(2025, time.November, 10, 15, 0, 0, 0, time.UTC)
	inSeptember = time.Date(2025, time.September, 30, 4, 0, 0, 0, time.UTC)
)

type fixture struct {
	users       *userGetterMock
	prefs       *preferences.Service
	changelogs  *changelogsMock
	maintenance config.MaintenanceConfig
	challenge   config.ChallengeConfig
	now         time.Time
}

func newFixture() *fixture {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &fixture{
		users: &userGetterMock{
			GetMeFunc: func(ctx context.Context) (domain.User, error) {
				return domain.User{ID: "u1", Name: "Sam", HasCompletedOnboarding: true}, nil
			},
		},
		prefs: preferences.NewService(logger, memory.NewStore(), nil),
		changelogs: &changelogsMock{
			HasUnseenFunc: func(ctx context.Context, scope string) (bool, error) { return true, nil },
		},
		now: inNovember,
	}
}

func (f *fixture) service() *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	now := f.now
	return NewService(logger, f.users, f.prefs, f.changelogs, f.maintenance, f.challenge, func() time.Time { return now })
}

func signedIn() context.Context {
	return ctxutil.WithSession(context.Background(), "better-auth.session_token=abc")
}

// ---------------------------------------------------------------------------
// Resolve
// ---------------------------------------------------------------------------

func TestService_Resolve_Maintenance(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.maintenance = config.MaintenanceConfig{Enabled: true}

	d, err := f.service().Resolve(signedIn(), scope)

	require.NoError(t, err)
	assert.Equal(t, PageMaintenance, d.Page)
	assert.Equal(t, "Major timezone refactoring", d.Reason)
	assert.Equal(t, "https://reddit.com/r/nonutnovember", d.ContactURL)
	assert.Empty(t, f.users.GetMeCalls())
}

func TestService_Resolve_Countdown(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.now = inSeptember

	d, err := f.service().Resolve(signedIn(), scope)

	require.NoError(t, err)
	assert.Equal(t, PageCountdown, d.Page)
	require.NotNil(t, d.Countdown)
	// 2025-09-30 00:00 EDT until 2025-11-01 00:00 EDT.
	assert.Equal(t, 32, d.Countdown.Days)
	assert.Equal(t, 0, d.Countdown.Hours)
	assert.Equal(t, "America/New_York", d.Timezone)
}

func TestService_Resolve_CountdownBypassed(t *testing.T) {
	t.Parallel()

	t.Run("config", func(t *testing.T) {
		t.Parallel()
		f := newFixture()
		f.now = inSeptember
		f.challenge.DisableCountdown = true

		d, err := f.service().Resolve(signedIn(), scope)
		require.NoError(t, err)
		assert.Equal(t, PageDashboard, d.Page)
	})

	t.Run("dev override", func(t *testing.T) {
		t.Parallel()
		f := newFixture()
		f.now = inSeptember
		_, err := f.prefs.ToggleDevOverride(context.Background(), scope)
		require.NoError(t, err)

		d, err := f.service().Resolve(signedIn(), scope)
		require.NoError(t, err)
		assert.Equal(t, PageDashboard, d.Page)
		assert.True(t, d.DevOverride)
	})
}

func TestService_Resolve_MonthFollowsPreferredZone(t *testing.T) {
	t.Parallel()

	// 2025-11-01 02:00 UTC is still October 31 in New York.
	f := newFixture()
	f.now = time.Date(2025, time.November, 1, 2, 0, 0, 0, time.UTC)

	d, err := f.service().Resolve(signedIn(), scope)
	require.NoError(t, err)
	assert.Equal(t, PageCountdown, d.Page)

	_, err = f.prefs.SetTimezone(context.Background(), scope, "+00:00")
	require.NoError(t, err)

	d, err = f.service().Resolve(signedIn(), scope)
	require.NoError(t, err)
	assert.Equal(t, PageDashboard, d.Page)
}

func TestService_Resolve_Landing(t *testing.T) {
	t.Parallel()

	t.Run("no session", func(t *testing.T) {
		t.Parallel()
		f := newFixture()

		d, err := f.service().Resolve(context.Background(), scope)

		require.NoError(t, err)
		assert.Equal(t, PageLanding, d.Page)
		assert.Empty(t, f.users.GetMeCalls())
	})

	t.Run("user lookup fails", func(t *testing.T) {
		t.Parallel()
		f := newFixture()
		f.users.GetMeFunc = func(ctx context.Context) (domain.User, error) {
			return domain.User{}, &domain.APIError{Message: "Unauthorized", Status: 401}
		}

		d, err := f.service().Resolve(signedIn(), scope)

		require.NoError(t, err)
		assert.Equal(t, PageLanding, d.Page)
		assert.Nil(t, d.User)
	})
}

func TestService_Resolve_Onboarding(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.users.GetMeFunc = func(ctx context.Context) (domain.User, error) {
		return domain.User{ID: "u1", HasCompletedOnboarding: false}, nil
	}

	d, err := f.service().Resolve(signedIn(), scope)

	require.NoError(t, err)
	assert.Equal(t, PageOnboarding, d.Page)
	require.NotNil(t, d.User)
	assert.Equal(t, "u1", d.User.ID)
}

func TestService_Resolve_Dashboard(t *testing.T) {
	t.Parallel()

	f := newFixture()

	d, err := f.service().Resolve(signedIn(), scope)

	require.NoError(t, err)
	assert.Equal(t, PageDashboard, d.Page)
	assert.True(t, d.ShowChangelog)
	assert.Nil(t, d.Countdown)
}

func TestService_Resolve_ChangelogErrorIgnored(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.changelogs.HasUnseenFunc = func(ctx context.Context, scope string) (bool, error) {
		return false, errors.New("store down")
	}

	d, err := f.service().Resolve(signedIn(), scope)

	require.NoError(t, err)
	assert.Equal(t, PageDashboard, d.Page)
	assert.False(t, d.ShowChangelog)
}
