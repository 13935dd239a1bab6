// Package cli implements nnnctl, the terminal client for daily check-ins.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/spf13/cobra"

	"github.com/nonutti-ng/web/internal/adapter/api"
	"github.com/nonutti-ng/web/internal/adapter/sqlite"
	"github.com/nonutti-ng/web/internal/config"
	"github.com/nonutti-ng/web/internal/confirm"
	"github.com/nonutti-ng/web/internal/service/changelog"
	"github.com/nonutti-ng/web/internal/service/dashboard"
	"github.com/nonutti-ng/web/internal/service/preferences"
	"github.com/nonutti-ng/web/pkg/ctxutil"
)

// Scope is the settings scope used for local preferences.
const Scope = "local"

// Settings is the CLI configuration, read from the environment.
type Settings struct {
	API           config.APIConfig
	SQLite        config.SQLiteConfig
	Challenge     config.ChallengeConfig
	Session       string `env:"NNN_SESSION"`
	SessionCookie string `env:"NNN_SESSION_COOKIE" env-default:"better-auth.session_token"`
	LogLevel      string `env:"LOG_LEVEL"          env-default:"warn"`
}

// Options override process-wide defaults. Zero values use the real ones.
type Options struct {
	Out   io.Writer
	Now   func() time.Time
	Sleep func(ctx context.Context, d time.Duration) error
}

// runner holds what one invocation needs. open fills it before any command runs.
type runner struct {
	settings  Settings
	out       io.Writer
	now       func() time.Time
	sleep     func(ctx context.Context, d time.Duration) error
	store     *sqlite.Store
	prefs     *preferences.Service
	changelog *changelog.Service
	dashboard *dashboard.Service
	confirm   *confirm.Manager
}

var errNoSession = errors.New("not signed in: set NNN_SESSION to your session cookie value")

// Execute runs nnnctl with args and releases the local store afterwards.
func Execute(ctx context.Context, args []string, opts Options) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Sleep == nil {
		opts.Sleep = sleep
	}

	rt := &runner{out: opts.Out, now: opts.Now, sleep: opts.Sleep}
	defer rt.close()

	root := newRootCmd(rt)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCmd(rt *runner) *cobra.Command {
	root := &cobra.Command{
		Use:           "nnnctl",
		Short:         "Check in to No Nut November from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.open(cmd.Context())
		},
	}
	root.SetOut(rt.out)

	root.AddCommand(
		newStatusCmd(rt),
		newCheckInCmd(rt),
		newBackfillCmd(rt),
		newFailCmd(rt),
		newTimezoneCmd(rt),
		newCountdownCmd(rt),
		newChangelogCmd(rt),
	)
	return root
}

func (rt *runner) open(ctx context.Context) error {
	if err := cleanenv.ReadEnv(&rt.settings); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(rt.settings.LogLevel)); err != nil {
		level = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	store, err := sqlite.Open(ctx, rt.settings.SQLite, logger)
	if err != nil {
		return err
	}
	rt.store = store

	rt.prefs = preferences.NewService(logger, store, rt.now)
	rt.changelog = changelog.NewService(logger, rt.prefs)
	rt.dashboard = dashboard.NewService(logger, api.NewClient(rt.settings.API, logger), rt.now)
	// Tokens never leave the process, so a per-run secret is enough.
	rt.confirm = confirm.NewManager(uuid.NewString(), "nnnctl",
		rt.settings.Challenge.ConfirmDelay, rt.settings.Challenge.ConfirmTTL, rt.now)
	return nil
}

func (rt *runner) close() error {
	if rt.store == nil {
		return nil
	}
	err := rt.store.Close()
	rt.store = nil
	return err
}

// signedIn attaches the session cookie the remote API expects.
func (rt *runner) signedIn(ctx context.Context) (context.Context, error) {
	if rt.settings.Session == "" {
		return nil, errNoSession
	}
	return ctxutil.WithSession(ctx, rt.settings.SessionCookie+"="+rt.settings.Session), nil
}

func (rt *runner) board(ctx context.Context) (dashboard.Board, error) {
	tz, err := rt.prefs.Timezone(ctx, Scope)
	if err != nil {
		return dashboard.Board{}, err
	}
	return rt.dashboard.Load(ctx, tz, rt.settings.Challenge.Year)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
