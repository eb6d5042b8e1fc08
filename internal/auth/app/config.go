package app

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/athleteone/athleteone/pkg/cryptox"
	"github.com/athleteone/athleteone/pkg/jwtx"
)

// Config is the full service configuration, loaded from the
// environment with development-friendly defaults.
type Config struct {
	ListenAddr string

	DatabaseFile string
	PepperFile   string

	SessionIssuer string
	SessionSecret string
	SessionTTL    time.Duration
	RefreshGrace  time.Duration

	SeedDemoData bool
	CORSOrigins  []string

	LogLevel  string
	LogFormat string
	Env       string
}

// LoadConfig reads configuration from the environment. A missing
// session secret gets a generated one, which invalidates all sessions
// on restart; fine for development, logged loudly for anything else.
func LoadConfig() (Config, error) {
	cfg := Config{
		ListenAddr:    envOr("AUTH_LISTEN_ADDR", ":8080"),
		DatabaseFile:  envOr("AUTH_DATABASE_FILE", "data/athleteone.db"),
		PepperFile:    envOr("AUTH_PEPPER_FILE", "data/pepper"),
		SessionIssuer: envOr("AUTH_SESSION_ISSUER", "athleteone-auth"),
		SessionSecret: os.Getenv("AUTH_SESSION_SECRET"),
		LogLevel:      envOr("LOG_LEVEL", "info"),
		LogFormat:     envOr("LOG_FORMAT", "text"),
		Env:           envOr("APP_ENV", "development"),
	}

	var err error
	cfg.SessionTTL, err = envDuration("AUTH_SESSION_TTL", jwtx.DefaultSessionTTL)
	if err != nil {
		return Config{}, err
	}
	cfg.RefreshGrace, err = envDuration("AUTH_REFRESH_GRACE", 30*24*time.Hour)
	if err != nil {
		return Config{}, err
	}

	cfg.SeedDemoData, err = envBool("AUTH_SEED_DEMO_DATA", cfg.Env == "development")
	if err != nil {
		return Config{}, err
	}

	origins := envOr("AUTH_CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")
	cfg.CORSOrigins = strings.Split(origins, ",")
	for i := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(cfg.CORSOrigins[i])
	}

	if cfg.SessionSecret == "" {
		if cfg.Env != "development" {
			slog.Warn("AUTH_SESSION_SECRET not set, sessions will not survive restarts")
		}
		cfg.SessionSecret = cryptox.MustGenerateToken(cryptox.TokenSize256)
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s: %w", key, err)
	}
	return b, nil
}
