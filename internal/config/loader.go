package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/JonMunkholm/fieldmap/internal/run"
)

// Load reads configuration from the process environment, applies defaults
// and validates the result.
func Load() (*Config, error) {
	return loadFrom(os.Getenv)
}

// MustLoad is Load for main; it panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("load configuration: %v", err))
	}
	return cfg
}

func loadFrom(getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	if err := populate(reflect.ValueOf(cfg).Elem(), getenv); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

var durationType = reflect.TypeOf(time.Duration(0))

// populate walks v's fields, recursing into section structs, and fills
// every field that carries an env tag.
func populate(v reflect.Value, getenv func(string) string) error {
	t := v.Type()
	var errs []error

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		fv := v.Field(i)
		if !fv.CanSet() {
			continue
		}

		name := sf.Tag.Get("env")
		if name == "" {
			if sf.Type.Kind() == reflect.Struct {
				if err := populate(fv, getenv); err != nil {
					errs = append(errs, err)
				}
			}
			continue
		}

		raw := getenv(name)
		if raw == "" {
			if alt := sf.Tag.Get("envAlt"); alt != "" {
				raw = getenv(alt)
			}
		}
		if raw == "" {
			if sf.Tag.Get("required") == "true" {
				errs = append(errs, fmt.Errorf("%s is required", name))
				continue
			}
			raw = sf.Tag.Get("default")
		}
		if raw == "" {
			continue
		}

		if err := assign(fv, raw); err != nil {
			errs = append(errs, fmt.Errorf("%s=%q: %w", name, raw, err))
		}
	}
	return errors.Join(errs...)
}

// assign parses raw into field according to its type.
func assign(field reflect.Value, raw string) error {
	switch {
	case field.Type() == durationType:
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))

	case field.Kind() == reflect.String:
		field.SetString(raw)

	case field.Kind() >= reflect.Int && field.Kind() <= reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)

	case field.Kind() == reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		field.SetBool(b)

	case field.Kind() == reflect.Slice && field.Type().Elem().Kind() == reflect.String:
		var items []string
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				items = append(items, p)
			}
		}
		field.Set(reflect.ValueOf(items))

	default:
		return fmt.Errorf("unsupported field type %s", field.Type())
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []string
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Sprintf(format, args...))
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		fail("SERVER_PORT (%d) must be 1-65535", c.Server.Port)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.IdleTimeout < 0 {
		fail("server timeouts must be non-negative")
	}
	if c.Server.ShutdownTimeout <= 0 {
		fail("SERVER_SHUTDOWN_TIMEOUT must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		fail("SERVER_REQUEST_TIMEOUT must be positive")
	}

	if c.Database.Enabled() {
		if c.Database.MaxConns <= 0 {
			fail("DB_MAX_CONNS must be positive")
		}
		if c.Database.MinConns < 0 {
			fail("DB_MIN_CONNS must be non-negative")
		}
		if c.Database.MaxConns < c.Database.MinConns {
			fail("DB_MAX_CONNS (%d) must be >= DB_MIN_CONNS (%d)", c.Database.MaxConns, c.Database.MinConns)
		}
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		fail("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		fail("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format)
	}

	if c.Rate.Enabled && c.Rate.RequestsPerMinute <= 0 {
		fail("RATE_LIMIT_REQUESTS_PER_MINUTE must be positive when rate limiting is enabled")
	}

	if c.Preview.MaxRows <= 0 {
		fail("PREVIEW_MAX_ROWS must be positive")
	}
	if c.Preview.GeneratedRows <= 0 || c.Preview.GeneratedRows > c.Preview.MaxRows {
		fail("PREVIEW_GENERATED_ROWS (%d) must be 1-%d", c.Preview.GeneratedRows, c.Preview.MaxRows)
	}
	if c.Preview.MaxBodyBytes <= 0 {
		fail("PREVIEW_MAX_BODY_BYTES must be positive")
	}
	if c.Preview.MaxConcurrent <= 0 {
		fail("PREVIEW_MAX_CONCURRENT must be positive")
	}
	if c.Preview.MaxWait <= 0 {
		fail("PREVIEW_MAX_WAIT must be positive")
	}

	if c.Session.IdleTimeout <= 0 {
		fail("SESSION_IDLE_TIMEOUT must be positive")
	}
	if c.Session.SweepInterval <= 0 {
		fail("SESSION_SWEEP_INTERVAL must be positive")
	}

	if _, err := c.Run.Location(); err != nil {
		fail("RUN_TIMEZONE (%q) is not a known timezone", c.Run.Timezone)
	}
	if _, _, err := run.ParseClock(c.Run.AfterHours); err != nil {
		fail("RUN_AFTER_HOURS (%q) must be HH:MM", c.Run.AfterHours)
	}

	for _, cidr := range c.Security.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil && net.ParseIP(cidr) == nil {
			fail("TRUSTED_PROXIES entry %q is not a CIDR or address", cidr)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// String renders the config for logs with the database URL masked.
func (c *Config) String() string {
	db := "disabled"
	if c.Database.Enabled() {
		db = "[MASKED]"
	}
	return fmt.Sprintf(
		"Config{Server: {Addr: %q}, Database: {URL: %s, MaxConns: %d}, Rate: {Enabled: %v, RequestsPerMinute: %d}, "+
			"Preview: {MaxRows: %d, GeneratedRows: %d}, Session: {IdleTimeout: %s}, Run: {Timezone: %q, AfterHours: %q}, "+
			"Logging: {Level: %q, Format: %q}}",
		c.Server.Addr(), db, c.Database.MaxConns, c.Rate.Enabled, c.Rate.RequestsPerMinute,
		c.Preview.MaxRows, c.Preview.GeneratedRows, c.Session.IdleTimeout, c.Run.Timezone, c.Run.AfterHours,
		c.Logging.Level, c.Logging.Format,
	)
}
