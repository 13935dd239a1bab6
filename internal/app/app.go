package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nonutti-ng/web/internal/adapter/api"
	"github.com/nonutti-ng/web/internal/auth"
	"github.com/nonutti-ng/web/internal/config"
	"github.com/nonutti-ng/web/internal/confirm"
	"github.com/nonutti-ng/web/internal/service/account"
	"github.com/nonutti-ng/web/internal/service/changelog"
	"github.com/nonutti-ng/web/internal/service/dashboard"
	"github.com/nonutti-ng/web/internal/service/gate"
	"github.com/nonutti-ng/web/internal/service/onboarding"
	"github.com/nonutti-ng/web/internal/service/preferences"
	"github.com/nonutti-ng/web/internal/transport/middleware"
	"github.com/nonutti-ng/web/internal/transport/rest"
)

// pollWindow is the longest a popup long-poll is held open.
const pollWindow = 25 * time.Second

// Run is the application entry point. It loads configuration, opens the
// settings store, wires the services and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("store", cfg.Store.Backend),
	)

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	apiClient := api.NewClient(cfg.API, logger)

	prefsSvc := preferences.NewService(logger, store, nil)
	changelogSvc := changelog.NewService(logger, prefsSvc)
	dashboardSvc := dashboard.NewService(logger, apiClient, nil)
	gateSvc := gate.NewService(logger, apiClient, prefsSvc, changelogSvc, cfg.Maintenance, cfg.Challenge, nil)
	onboardingSvc := onboarding.NewService(logger, apiClient, prefsSvc)
	accountSvc := account.NewService(logger, apiClient)

	confirmMgr := confirm.NewManager(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Challenge.ConfirmDelay, cfg.Challenge.ConfirmTTL, nil)
	broker := auth.NewBroker(logger, cfg.Auth, &http.Client{Timeout: cfg.API.Timeout}, nil)

	handlers := rest.Handlers{
		Health:      rest.NewHealthHandler(store, cfg.Store.Backend, BuildVersion()),
		Gate:        rest.NewGateHandler(gateSvc, logger),
		Dashboard:   rest.NewDashboardHandler(dashboardSvc, prefsSvc, confirmMgr, cfg.Challenge.Year, nil, logger),
		Onboarding:  rest.NewOnboardingHandler(onboardingSvc, logger),
		Preferences: rest.NewPreferencesHandler(prefsSvc, logger),
		Changelog:   rest.NewChangelogHandler(changelogSvc, prefsSvc, logger),
		Account:     rest.NewAccountHandler(accountSvc, logger),
		Auth:        rest.NewAuthHandler(broker, popupWindow(cfg.Server.WriteTimeout), logger),
	}
	if cfg.Metrics.Enabled {
		handlers.Metrics = promhttp.Handler()
		handlers.MetricsPath = cfg.Metrics.Path
	}
	mux := rest.NewMux(handlers)

	var rateLimit middleware.Middleware
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(5 * time.Minute)
		defer limiter.Stop()
		rateLimit = limiter.Limit(cfg.RateLimit.PerMinute)
	}

	// Device and Session run before Logger so the access log can see them.
	// Metrics wraps the mux directly to read the matched pattern.
	handler := middleware.Chain(
		middleware.RequestID(),
		middleware.Device(),
		middleware.Session(cfg.Auth.SessionCookieNames()),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		rateLimit,
		middleware.Maintenance(cfg.Maintenance, "/api/gate"),
		middleware.InFlight(),
		middleware.Metrics(),
	)(mux)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	logger.Info("stopped")
	return nil
}

// popupWindow keeps the long-poll inside the write deadline.
func popupWindow(writeTimeout time.Duration) time.Duration {
	if writeTimeout > 0 && writeTimeout/2 < pollWindow {
		return writeTimeout / 2
	}
	return pollWindow
}
