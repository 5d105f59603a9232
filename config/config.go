// Package config loads the panel configuration from the environment
// (optionally seeded from a .env file) and exposes build metadata.
package config

import (
	"context"
	"crypto/tls"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

// SessionStoreType selects where session values (the token pair and the
// language preference) are persisted between requests.
type SessionStoreType string

const (
	SessionStoreCookie   SessionStoreType = "cookie"
	SessionStoreDatabase SessionStoreType = "database"
	SessionStoreRedis    SessionStoreType = "redis"
)

// SupportedLanguages lists the UI languages with a bundled translation file.
var SupportedLanguages = []string{"ar", "en"}

// DefaultLanguage is used when neither the session nor the configuration
// names a language.
const DefaultLanguage = "ar"

// Config is the complete runtime configuration of the panel.
type Config struct {
	APIURL     string        `env:"PARTY_API_URL, default=http://localhost:8000/api"`
	APITimeout time.Duration `env:"PARTY_API_TIMEOUT, default=15s"`

	Listen   string `env:"PARTY_LISTEN"`
	Port     int    `env:"PARTY_PORT, default=2080"`
	Domain   string `env:"PARTY_DOMAIN"`
	BasePath string `env:"PARTY_BASE_PATH, default=/"`
	CertFile string `env:"PARTY_CERT_FILE"`
	KeyFile  string `env:"PARTY_KEY_FILE"`

	LogLevel  LogLevel `env:"PARTY_LOG_LEVEL, default=info"`
	LogFolder string   `env:"PARTY_LOG_FOLDER, default=/var/log"`

	SessionSecret string           `env:"PARTY_SESSION_SECRET"`
	SessionMaxAge int              `env:"PARTY_SESSION_MAX_AGE, default=1440"` // minutes
	SessionStore  SessionStoreType `env:"PARTY_SESSION_STORE, default=database"`

	DefaultLanguage string `env:"PARTY_DEFAULT_LANG, default=ar"`
	PageSize        int    `env:"PARTY_PAGE_SIZE, default=10"`
	HealthCron      string `env:"PARTY_HEALTH_CRON, default=@every 1m"`
	LoginRateLimit  int    `env:"PARTY_LOGIN_RATE_LIMIT, default=10"` // per client and minute, 0 disables
	// /metrics is served only when a key is set.
	MetricsKey      string `env:"PARTY_METRICS_KEY"`

	Database DatabaseConfig
	Redis    RedisConfig
}

// RedisConfig points the redis session store at a server. An empty Addr
// starts an embedded instance.
type RedisConfig struct {
	Addr     string `env:"PARTY_REDIS_ADDR"`
	Password string `env:"PARTY_REDIS_PASSWORD"`
	DB       int    `env:"PARTY_REDIS_DB, default=0"`
}

// Load reads a .env file when present and then processes the environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration and normalises paths in place.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("config: api url cannot be empty")
	}
	c.APIURL = strings.TrimRight(c.APIURL, "/")

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: port %d is not a valid port", c.Port)
	}

	if !strings.HasPrefix(c.BasePath, "/") {
		c.BasePath = "/" + c.BasePath
	}
	if !strings.HasSuffix(c.BasePath, "/") {
		c.BasePath += "/"
	}

	switch c.SessionStore {
	case SessionStoreCookie, SessionStoreDatabase, SessionStoreRedis:
	default:
		return fmt.Errorf("config: unsupported session store: %s", c.SessionStore)
	}
	if c.SessionMaxAge <= 0 {
		return fmt.Errorf("config: session max age must be positive")
	}

	if !IsSupportedLanguage(c.DefaultLanguage) {
		return fmt.Errorf("config: unsupported language: %s", c.DefaultLanguage)
	}
	if c.PageSize <= 0 {
		c.PageSize = 10
	}

	if c.CertFile != "" || c.KeyFile != "" {
		if _, err := tls.LoadX509KeyPair(c.CertFile, c.KeyFile); err != nil {
			return fmt.Errorf("config: cert file <%v> or key file <%v> invalid: %w", c.CertFile, c.KeyFile, err)
		}
	}

	if c.SessionStore == SessionStoreDatabase {
		return c.Database.ValidateConfig()
	}
	return nil
}

// IsSupportedLanguage reports whether a translation exists for lang.
func IsSupportedLanguage(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

// IsDebug is read straight from the environment so that it is usable before
// the configuration has been loaded.
func IsDebug() bool {
	return os.Getenv("PARTY_DEBUG") == "true"
}

// SessionMaxAgeDuration is SessionMaxAge as a duration.
func (c *Config) SessionMaxAgeDuration() time.Duration {
	return time.Duration(c.SessionMaxAge) * time.Minute
}

// IsTLS reports whether the panel serves HTTPS.
func (c *Config) IsTLS() bool {
	return c.CertFile != "" && c.KeyFile != ""
}

// EffectiveLogLevel returns Debug whenever debug mode is on.
func (c *Config) EffectiveLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	if c.LogLevel == "" {
		return Info
	}
	return c.LogLevel
}
