package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config carries everything the server needs at startup. All values come
// from the environment; the defaults are for local development only.
type Config struct {
	Addr            string
	DatabaseURL     string
	SessionSecret   string
	SessionLifetime time.Duration
	RedisAddr       string
	SentryDSN       string
	OTLPEndpoint    string
	LogLevel        string
	Development     bool
	TemplateGlob    string
	StaticDir       string
}

func Load() Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "./warbler.db")
	// insecure fallback, matches the historical default; override in prod
	v.SetDefault("SESSION_SECRET", "it's a secret")
	v.SetDefault("SESSION_LIFETIME", "16h")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("SENTRY_DSN", "")
	v.SetDefault("OTLP_ENDPOINT", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DEVELOPMENT", false)
	v.SetDefault("TEMPLATE_GLOB", "web/templates/*.html")
	v.SetDefault("STATIC_DIR", "web/static")

	lifetime, err := time.ParseDuration(v.GetString("SESSION_LIFETIME"))
	if err != nil || lifetime <= 0 {
		lifetime = 16 * time.Hour
	}

	return Config{
		Addr:            v.GetString("ADDR"),
		DatabaseURL:     v.GetString("DATABASE_URL"),
		SessionSecret:   v.GetString("SESSION_SECRET"),
		SessionLifetime: lifetime,
		RedisAddr:       v.GetString("REDIS_ADDR"),
		SentryDSN:       v.GetString("SENTRY_DSN"),
		OTLPEndpoint:    v.GetString("OTLP_ENDPOINT"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		Development:     v.GetBool("DEVELOPMENT"),
		TemplateGlob:    v.GetString("TEMPLATE_GLOB"),
		StaticDir:       v.GetString("STATIC_DIR"),
	}
}

// UsesPostgres reports whether the DSN points at a postgres server rather
// than a local sqlite file.
func (c Config) UsesPostgres() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgres://") ||
		strings.HasPrefix(c.DatabaseURL, "postgresql://") ||
		strings.Contains(c.DatabaseURL, "host=")
}
