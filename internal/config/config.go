package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
// Load .env.local first in dev; real deployments set these directly.
type Config struct {
	Port        string `env:"PORT" envDefault:"3000"`
	DatabaseURL string `env:"DATABASE_URL"`

	// ClientURL is the SPA origin. It is both the CORS allow-list entry and
	// the base URL embedded in password-reset links.
	ClientURL string `env:"CLIENT_URL" envDefault:"http://localhost:5173"`

	// Production toggles Secure / SameSite=None cookies for cross-site use
	// behind a proxy.
	Production bool `env:"PRODUCTION" envDefault:"false"`

	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"168h"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	EmailFrom    string `env:"EMAIL_FROM"`
}

// Load reads .env.local (if present) and parses the environment into a Config.
func Load() (Config, error) {
	_ = godotenv.Load(".env.local")

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is empty")
	}
	return cfg, nil
}
