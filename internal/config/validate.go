package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.Secret) < 32 {
		return fmt.Errorf("auth.secret must be at least 32 characters (got %d)", len(c.Auth.Secret))
	}

	if err := c.Auth.validate(); err != nil {
		return fmt.Errorf("auth: %w", err)
	}

	if err := validateURL(c.API.BaseURL); err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}

	if err := c.Challenge.validate(); err != nil {
		return fmt.Errorf("challenge: %w", err)
	}

	switch c.Store.Backend {
	case BackendMemory:
	case BackendSQLite:
		if strings.TrimSpace(c.SQLite.Path) == "" {
			return fmt.Errorf("sqlite.path is required for the sqlite store")
		}
	case BackendPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for the postgres store")
		}
	default:
		return fmt.Errorf("store.backend must be one of memory, sqlite, postgres (got %q)", c.Store.Backend)
	}

	if c.RateLimit.Enabled && c.RateLimit.PerMinute <= 0 {
		return fmt.Errorf("rate_limit.per_minute must be > 0 (got %d)", c.RateLimit.PerMinute)
	}

	return nil
}

func (a *AuthConfig) validate() error {
	if err := validateURL(a.BaseURL); err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if err := validateURL(a.FrontendURL); err != nil {
		return fmt.Errorf("frontend_url: %w", err)
	}
	if len(a.AllowedProviders()) == 0 {
		return fmt.Errorf("at least one OAuth provider must be configured")
	}
	if !a.IsProviderAllowed(a.DefaultProvider) {
		return fmt.Errorf("default_provider %q is not in providers", a.DefaultProvider)
	}
	if a.PopupTTL <= 0 {
		return fmt.Errorf("popup_ttl must be > 0 (got %v)", a.PopupTTL)
	}
	return nil
}

func (c *ChallengeConfig) validate() error {
	if c.Year < 0 {
		return fmt.Errorf("year must be >= 0 (got %d)", c.Year)
	}
	if c.ConfirmDelay < 0 {
		return fmt.Errorf("confirm_delay must be >= 0 (got %v)", c.ConfirmDelay)
	}
	if c.ConfirmTTL <= c.ConfirmDelay {
		return fmt.Errorf("confirm_ttl must exceed confirm_delay (got %v <= %v)", c.ConfirmTTL, c.ConfirmDelay)
	}
	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https (got %q)", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("host is required (got %q)", raw)
	}
	return nil
}
