package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("AUTH_SECRET", "this-is-a-very-long-auth-secret-for-testing-32+")
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
  write_timeout: "15s"
  idle_timeout: "30s"
  shutdown_timeout: "5s"

api:
  base_url: "https://api.nonutnovember.example/api/v1"
  timeout: "3s"

auth:
  base_url: "https://api.nonutnovember.example/api/auth"
  frontend_url: "https://nonutnovember.example"
  secret: "this-is-a-very-long-auth-secret-for-testing-32+"
  providers: "discord, reddit"

maintenance:
  enabled: true
  reason: "Database upgrade"

challenge:
  year: 2025
  disable_countdown: true

store:
  backend: "postgres"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 4

log:
  level: "debug"
  format: "text"

rate_limit:
  per_minute: 30
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Server
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want %v", cfg.Server.ReadTimeout, 5*time.Second)
	}

	// API
	if cfg.API.BaseURL != "https://api.nonutnovember.example/api/v1" {
		t.Errorf("api.base_url = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 3*time.Second {
		t.Errorf("api.timeout = %v, want 3s", cfg.API.Timeout)
	}

	// Auth
	if got := cfg.Auth.AllowedProviders(); len(got) != 2 || got[1] != "reddit" {
		t.Errorf("auth.providers = %v", got)
	}
	if cfg.Auth.DefaultProvider != "discord" {
		t.Errorf("auth.default_provider = %q, want discord (default)", cfg.Auth.DefaultProvider)
	}
	if cfg.Auth.PopupTTL != 5*time.Minute {
		t.Errorf("auth.popup_ttl = %v, want 5m (default)", cfg.Auth.PopupTTL)
	}

	// Maintenance
	if !cfg.Maintenance.Enabled || cfg.Maintenance.Reason != "Database upgrade" {
		t.Errorf("maintenance = %+v", cfg.Maintenance)
	}
	if cfg.Maintenance.RedditURL != "https://reddit.com/r/nonutnovember" {
		t.Errorf("maintenance.reddit_url = %q (default)", cfg.Maintenance.RedditURL)
	}

	// Challenge
	if cfg.Challenge.Year != 2025 || !cfg.Challenge.DisableCountdown {
		t.Errorf("challenge = %+v", cfg.Challenge)
	}
	if cfg.Challenge.ConfirmDelay != 5*time.Second {
		t.Errorf("challenge.confirm_delay = %v, want 5s", cfg.Challenge.ConfirmDelay)
	}

	// Store
	if cfg.Store.Backend != BackendPostgres {
		t.Errorf("store.backend = %q", cfg.Store.Backend)
	}
	if cfg.Database.MaxConns != 4 {
		t.Errorf("database.max_conns = %d, want 4", cfg.Database.MaxConns)
	}

	// Log
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "text")
	}

	// Rate limit + metrics
	if cfg.RateLimit.PerMinute != 30 || !cfg.RateLimit.Enabled {
		t.Errorf("rate_limit = %+v", cfg.RateLimit)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Path != "/metrics" {
		t.Errorf("metrics = %+v", cfg.Metrics)
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("MAINTENANCE_MODE", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
	if cfg.Maintenance.Enabled {
		t.Error("maintenance.enabled should be overridden to false")
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	validEnv(t)
	t.Setenv("CONFIG_PATH", "")

	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080 (default)", cfg.Server.Port)
	}
	if cfg.API.BaseURL != "http://localhost:3000/api/v1" {
		t.Errorf("api.base_url = %q (default)", cfg.API.BaseURL)
	}
	if cfg.Store.Backend != BackendMemory {
		t.Errorf("store.backend = %q, want memory (default)", cfg.Store.Backend)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("AUTH_SECRET", "")

	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	if _, err := Load(); err == nil {
		t.Fatal("expected error without AUTH_SECRET")
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

// unsetEnv clears key for the test and restores it afterwards.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	_ = os.Unsetenv(key)
}

func TestLoad_DotEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	unsetEnv(t, "ENV_FILE")
	unsetEnv(t, "AUTH_SECRET")
	unsetEnv(t, "SERVER_PORT")
	t.Setenv("STORE_BACKEND", "memory")

	dir := t.TempDir()
	env := "AUTH_SECRET=this-is-a-very-long-auth-secret-for-testing-32+\nSERVER_PORT=9090\nSTORE_BACKEND=sqlite\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want 9090 from .env", cfg.Server.Port)
	}
	if cfg.Store.Backend != BackendMemory {
		t.Errorf("store.backend = %q, the environment must win over .env", cfg.Store.Backend)
	}
}

func TestLoad_ExplicitEnvFileNotFound(t *testing.T) {
	validEnv(t)
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ENV_FILE", "/nonexistent/.env")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing explicit env file")
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"short secret", func(c *Config) { c.Auth.Secret = "short" }},
		{"empty secret", func(c *Config) { c.Auth.Secret = "" }},
		{"no providers", func(c *Config) { c.Auth.ProvidersRaw = " , " }},
		{"default provider not listed", func(c *Config) { c.Auth.DefaultProvider = "google" }},
		{"zero popup ttl", func(c *Config) { c.Auth.PopupTTL = 0 }},
		{"relative frontend url", func(c *Config) { c.Auth.FrontendURL = "/callback" }},
		{"bad api scheme", func(c *Config) { c.API.BaseURL = "ftp://api.example" }},
		{"negative year", func(c *Config) { c.Challenge.Year = -1 }},
		{"ttl shorter than delay", func(c *Config) { c.Challenge.ConfirmTTL = time.Second }},
		{"unknown backend", func(c *Config) { c.Store.Backend = "redis" }},
		{"postgres without dsn", func(c *Config) { c.Store.Backend = BackendPostgres }},
		{"sqlite without path", func(c *Config) { c.Store.Backend = BackendSQLite; c.SQLite.Path = "" }},
		{"zero rate limit", func(c *Config) { c.RateLimit.PerMinute = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestValidate_RateLimitDisabled(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit = RateLimitConfig{Enabled: false}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error with rate limit disabled: %v", err)
	}
}

func TestChallengeConfig_ChallengeYear(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	if got := (ChallengeConfig{}).ChallengeYear(now); got != 2026 {
		t.Errorf("ChallengeYear = %d, want 2026", got)
	}
	if got := (ChallengeConfig{Year: 2025}).ChallengeYear(now); got != 2025 {
		t.Errorf("ChallengeYear = %d, want 2025", got)
	}
}

func validConfig() Config {
	return Config{
		API: APIConfig{BaseURL: "http://localhost:3000/api/v1", Timeout: 10 * time.Second},
		Auth: AuthConfig{
			BaseURL:         "http://localhost:3000/api/auth",
			FrontendURL:     "http://localhost:8080",
			Secret:          "this-is-a-very-long-auth-secret-for-testing-32+",
			ProvidersRaw:    "discord,reddit",
			DefaultProvider: "discord",
			PopupTTL:        5 * time.Minute,
		},
		Challenge: ChallengeConfig{ConfirmDelay: 5 * time.Second, ConfirmTTL: 10 * time.Minute},
		Store:     StoreConfig{Backend: BackendMemory},
		SQLite:    SQLiteConfig{Path: "nnn.db"},
		RateLimit: RateLimitConfig{Enabled: true, PerMinute: 120},
	}
}
