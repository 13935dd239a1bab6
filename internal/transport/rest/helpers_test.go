package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/nonutti-ng/web/internal/adapter/memory"
	"github.com/nonutti-ng/web/internal/auth"
	"github.com/nonutti-ng/web/internal/config"
	"github.com/nonutti-ng/web/internal/confirm"
	"github.com/nonutti-ng/web/internal/domain"
	"github.com/nonutti-ng/web/internal/service/account"
	"github.com/nonutti-ng/web/internal/service/changelog"
	"github.com/nonutti-ng/web/internal/service/dashboard"
	"github.com/nonutti-ng/web/internal/service/gate"
	"github.com/nonutti-ng/web/internal/service/onboarding"
	"github.com/nonutti-ng/web/internal/service/preferences"
	"github.com/nonutti-ng/web/internal/transport/middleware"
)

const (
	testSecret     = "test-secret-at-least-32-chars-long-for-security"
	sessionCookie  = "better-auth.session_token"
	confirmDelay   = 5 * time.Second
	testPollWindow = 50 * time.Millisecond
)

// ---------------------------------------------------------------------------
// Clock
// ---------------------------------------------------------------------------

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func nov(day, hour int) time.Time {
	return time.Date(2025, time.November, day, hour, 0, 0, 0, time.UTC)
}

// ---------------------------------------------------------------------------
// Fake remote API
// ---------------------------------------------------------------------------

type fakeAPI struct {
	clock *testClock

	mu        sync.Mutex
	user      domain.User
	userErr   error
	reddit    *domain.RedditAccount
	tryErr    error
	entries   []domain.Entry
	nextID    int
	onboarded []domain.OnboardingAnswers
	failedIDs []string
	logCalls  int
}

func (f *fakeAPI) GetMe(context.Context) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.user, f.userErr
}

func (f *fakeAPI) GetLinkedReddit(context.Context) (*domain.RedditAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reddit, nil
}

func (f *fakeAPI) CompleteOnboarding(_ context.Context, answers domain.OnboardingAnswers) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onboarded = append(f.onboarded, answers)
	f.user.HasCompletedOnboarding = true
	return nil
}

func (f *fakeAPI) GetCurrentTry(context.Context) (domain.TryWithEntries, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tryErr != nil {
		return domain.TryWithEntries{}, f.tryErr
	}
	return domain.TryWithEntries{
		Try:     domain.Try{TryID: "try-1", Year: 2025, State: domain.StateIn},
		Entries: slices.Clone(f.entries),
	}, nil
}

func (f *fakeAPI) Log(_ context.Context, status domain.Status) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logCalls++
	return f.addLocked(f.clock.Now(), status), nil
}

func (f *fakeAPI) LogPrevious(_ context.Context, date string, status domain.Status) (string, error) {
	at, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return "", &domain.APIError{Message: "bad date", Status: http.StatusBadRequest}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addLocked(at, status), nil
}

func (f *fakeAPI) FailEntry(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.entries {
		if f.entries[i].EntryID == id {
			f.entries[i].Status = domain.StatusOut
			f.failedIDs = append(f.failedIDs, id)
			return nil
		}
	}
	return &domain.APIError{Message: "No entry found for this day", Code: domain.CodeNoEntry, Status: http.StatusNotFound}
}

func (f *fakeAPI) addLocked(at time.Time, status domain.Status) string {
	f.nextID++
	id := fmt.Sprintf("e%d", f.nextID)
	f.entries = append(f.entries, domain.Entry{EntryID: id, TryID: "try-1", Date: at, Status: status, CreatedAt: at})
	return id
}

// seed logs an entry for a November day at noon UTC.
func (f *fakeAPI) seed(day int, status domain.Status) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addLocked(nov(day, 12), status)
}

// ---------------------------------------------------------------------------
// Fake auth service
// ---------------------------------------------------------------------------

func newFakeAuthServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Provider string `json:"provider"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		http.SetCookie(w, &http.Cookie{Name: "better-auth.state", Value: "st-" + req.Provider, Path: "/"})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"url":"https://` + req.Provider + `.example/authorize","redirect":true}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// ---------------------------------------------------------------------------
// Test environment
// ---------------------------------------------------------------------------

type testEnv struct {
	t       *testing.T
	clock   *testClock
	api     *fakeAPI
	prefs   *preferences.Service
	device  uuid.UUID
	handler http.Handler
}

type envOption func(*envConfig)

type envConfig struct {
	maintenance config.MaintenanceConfig
	challenge   config.ChallengeConfig
}

func withMaintenance(m config.MaintenanceConfig) envOption {
	return func(cfg *envConfig) { cfg.maintenance = m }
}

func withChallenge(c config.ChallengeConfig) envOption {
	return func(cfg *envConfig) { cfg.challenge = c }
}

func newTestEnv(t *testing.T, now time.Time, opts ...envOption) *testEnv {
	t.Helper()

	var cfg envConfig
	for _, o := range opts {
		o(&cfg)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	clock := &testClock{now: now}
	api := &fakeAPI{
		clock: clock,
		user:  domain.User{ID: "u1", Name: "Sam", Email: "sam@example.com", HasCompletedOnboarding: true},
	}
	store := memory.NewStore()

	prefsSvc := preferences.NewService(logger, store, clock.Now)
	changelogSvc := changelog.NewService(logger, prefsSvc)
	dashboardSvc := dashboard.NewService(logger, api, clock.Now)
	gateSvc := gate.NewService(logger, api, prefsSvc, changelogSvc, cfg.maintenance, cfg.challenge, clock.Now)
	onboardingSvc := onboarding.NewService(logger, api, prefsSvc)
	accountSvc := account.NewService(logger, api)

	authCfg := config.AuthConfig{
		BaseURL:         newFakeAuthServer(t).URL,
		FrontendURL:     "http://localhost:8080",
		Secret:          testSecret,
		Issuer:          "nnn-test",
		ProvidersRaw:    "discord,reddit",
		DefaultProvider: "discord",
		PopupTTL:        time.Minute,
		SessionCookies:  sessionCookie,
	}
	broker := auth.NewBroker(logger, authCfg, nil, clock.Now)
	confirmMgr := confirm.NewManager(testSecret, "nnn-test", confirmDelay, 10*time.Minute, clock.Now)

	mux := NewMux(Handlers{
		Health:      NewHealthHandler(store, config.BackendMemory, "test"),
		Gate:        NewGateHandler(gateSvc, logger),
		Dashboard:   NewDashboardHandler(dashboardSvc, prefsSvc, confirmMgr, 0, clock.Now, logger),
		Onboarding:  NewOnboardingHandler(onboardingSvc, logger),
		Preferences: NewPreferencesHandler(prefsSvc, logger),
		Changelog:   NewChangelogHandler(changelogSvc, prefsSvc, logger),
		Account:     NewAccountHandler(accountSvc, logger),
		Auth:        NewAuthHandler(broker, testPollWindow, logger),
	})

	handler := middleware.Chain(
		middleware.Device(),
		middleware.Session(authCfg.SessionCookieNames()),
		middleware.InFlight(),
	)(mux)

	env := &testEnv{
		t:       t,
		clock:   clock,
		api:     api,
		prefs:   prefsSvc,
		device:  uuid.New(),
		handler: handler,
	}

	_, err := prefsSvc.SetTimezone(context.Background(), env.device.String(), "+00:00")
	require.NoError(t, err)
	return env
}

func (e *testEnv) newRequest(method, path string, body any) *http.Request {
	e.t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(e.t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: middleware.DeviceCookie, Value: e.device.String()})
	return req
}

func (e *testEnv) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// do sends a signed-in request.
func (e *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	e.t.Helper()
	req := e.newRequest(method, path, body)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "session-token"})
	return e.serve(req)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), "body: %s", rec.Body.String())
	return v
}

func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	require.Equal(t, status, rec.Code, "body: %s", rec.Body.String())
	got := decode[errorResponse](t, rec)
	require.Equal(t, code, got.Code, "message: %s", got.Message)
}
