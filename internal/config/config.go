package config

import (
	"slices"
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	API         APIConfig         `yaml:"api"`
	Auth        AuthConfig        `yaml:"auth"`
	Maintenance MaintenanceConfig `yaml:"maintenance"`
	Challenge   ChallengeConfig   `yaml:"challenge"`
	Store       StoreConfig       `yaml:"store"`
	Database    DatabaseConfig    `yaml:"database"`
	SQLite      SQLiteConfig      `yaml:"sqlite"`
	Log         LogConfig         `yaml:"log"`
	CORS        CORSConfig        `yaml:"cors"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"http://localhost:3001"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// APIConfig points at the remote tries/users API.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"API_URL"     env-default:"http://localhost:3000/api/v1"`
	Timeout time.Duration `yaml:"timeout"  env:"API_TIMEOUT" env-default:"10s"`
}

// AuthConfig holds the external auth service and popup sign-in settings.
type AuthConfig struct {
	BaseURL         string        `yaml:"base_url"         env:"AUTH_URL"              env-default:"http://localhost:3000/api/auth"`
	FrontendURL     string        `yaml:"frontend_url"     env:"FRONTEND_URL"          env-default:"http://localhost:8080"`
	Secret          string        `yaml:"secret"           env:"AUTH_SECRET"           env-required:"true"`
	Issuer          string        `yaml:"issuer"           env:"AUTH_ISSUER"           env-default:"nnn-web"`
	ProvidersRaw    string        `yaml:"providers"        env:"AUTH_PROVIDERS"        env-default:"discord,reddit"`
	DefaultProvider string        `yaml:"default_provider" env:"AUTH_DEFAULT_PROVIDER" env-default:"discord"`
	PopupTTL        time.Duration `yaml:"popup_ttl"        env:"AUTH_POPUP_TTL"        env-default:"5m"`
	SessionCookies  string        `yaml:"session_cookies"  env:"AUTH_SESSION_COOKIES"  env-default:"better-auth.session_token,__Secure-better-auth.session_token"`
}

// MaintenanceConfig switches every page to the maintenance notice.
type MaintenanceConfig struct {
	Enabled   bool   `yaml:"enabled"    env:"MAINTENANCE_MODE"       env-default:"false"`
	Reason    string `yaml:"reason"     env:"MAINTENANCE_REASON"     env-default:"Major timezone refactoring"`
	RedditURL string `yaml:"reddit_url" env:"MAINTENANCE_REDDIT_URL" env-default:"https://reddit.com/r/nonutnovember"`
}

// ChallengeConfig holds the challenge calendar and confirmation settings.
// Year 0 means the current year in UTC.
type ChallengeConfig struct {
	Year             int           `yaml:"year"              env:"CHALLENGE_YEAR"         env-default:"0"`
	DisableCountdown bool          `yaml:"disable_countdown" env:"DISABLE_COUNTDOWN_PAGE" env-default:"false"`
	ConfirmDelay     time.Duration `yaml:"confirm_delay"     env:"CONFIRM_DELAY"          env-default:"5s"`
	ConfirmTTL       time.Duration `yaml:"confirm_ttl"       env:"CONFIRM_TTL"            env-default:"10m"`
}

// StoreConfig selects the settings store backend: memory, sqlite or postgres.
type StoreConfig struct {
	Backend string `yaml:"backend" env:"STORE_BACKEND" env-default:"memory"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// SQLiteConfig holds the local database file settings.
type SQLiteConfig struct {
	Path string `yaml:"path" env:"SQLITE_PATH" env-default:"nnn.db"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-IP request limits.
type RateLimitConfig struct {
	Enabled   bool `yaml:"enabled"    env:"RATE_LIMIT_ENABLED"    env-default:"true"`
	PerMinute int  `yaml:"per_minute" env:"RATE_LIMIT_PER_MINUTE" env-default:"120"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED" env-default:"true"`
	Path    string `yaml:"path"    env:"METRICS_PATH"    env-default:"/metrics"`
}

// Store backends.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// AllowedProviders returns the configured OAuth providers.
func (c AuthConfig) AllowedProviders() []string {
	return splitList(c.ProvidersRaw)
}

// IsProviderAllowed checks if the given provider string is configured.
func (c AuthConfig) IsProviderAllowed(provider string) bool {
	return slices.Contains(c.AllowedProviders(), provider)
}

// SessionCookieNames returns the cookie names forwarded to the remote API.
func (c AuthConfig) SessionCookieNames() []string {
	return splitList(c.SessionCookies)
}

// ChallengeYear resolves Year against now.
func (c ChallengeConfig) ChallengeYear(now time.Time) int {
	if c.Year > 0 {
		return c.Year
	}
	return now.UTC().Year()
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
