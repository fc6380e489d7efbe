// Package config loads server settings from the environment. Every field has
// a default, so an empty environment yields a working in-memory server.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all server configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	Rate     RateLimitConfig
	Preview  PreviewConfig
	Session  SessionConfig
	Run      RunConfig
	Security SecurityConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`
	Port int    `env:"SERVER_PORT" default:"8080"`

	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"15s"`

	// RequestTimeout bounds each handler via chi's Timeout middleware.
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"20s"`
}

// DatabaseConfig configures the optional submission ledger. With no URL,
// submissions are only logged.
type DatabaseConfig struct {
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	MaxConns        int           `env:"DB_MAX_CONNS" default:"4"`
	MinConns        int           `env:"DB_MIN_CONNS" default:"0"`
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// Enabled reports whether a database URL was given.
func (d DatabaseConfig) Enabled() bool { return d.URL != "" }

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is text or json.
	Format string `env:"LOG_FORMAT" default:"text"`
}

// RateLimitConfig holds per-IP request limits.
type RateLimitConfig struct {
	Enabled           bool `env:"RATE_LIMIT_ENABLED" default:"true"`
	RequestsPerMinute int  `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"120"`
}

// PreviewConfig bounds preview work.
type PreviewConfig struct {
	// MaxRows caps caller-provided sample records.
	MaxRows int `env:"PREVIEW_MAX_ROWS" default:"500"`

	// GeneratedRows is the default count for generated samples.
	GeneratedRows int `env:"PREVIEW_GENERATED_ROWS" default:"8"`

	// MaxBodyBytes caps the preview request body.
	MaxBodyBytes int64 `env:"PREVIEW_MAX_BODY_BYTES" default:"1048576"`

	// MaxConcurrent is how many previews may run at once.
	MaxConcurrent int           `env:"PREVIEW_MAX_CONCURRENT" default:"8"`
	MaxWait       time.Duration `env:"PREVIEW_MAX_WAIT" default:"5s"`
}

// SessionConfig controls wizard session expiry.
type SessionConfig struct {
	IdleTimeout   time.Duration `env:"SESSION_IDLE_TIMEOUT" default:"2h"`
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" default:"10m"`
}

// RunConfig controls how scheduled runs are resolved.
type RunConfig struct {
	Timezone   string `env:"RUN_TIMEZONE" default:"America/Los_Angeles"`
	AfterHours string `env:"RUN_AFTER_HOURS" default:"20:00"`
}

// Location loads the configured timezone.
func (r RunConfig) Location() (*time.Location, error) {
	return time.LoadLocation(r.Timezone)
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies lists CIDRs whose forwarded-for headers are honoured.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`
}

// Addr returns the listen address in host:port form.
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
