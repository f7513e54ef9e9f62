package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full environment surface of the service.
type Config struct {
	// JWTSecret signs access tokens. The process refuses to start without it.
	JWTSecret string `env:"AUTH_JWT_SECRET"`

	Issuer     string        `env:"AUTH_ISSUER" envDefault:"crewdesk-auth"`
	TokenTTL   time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"15m"`
	OtpTTL     time.Duration `env:"AUTH_OTP_TTL" envDefault:"10m"`
	BcryptCost int           `env:"AUTH_BCRYPT_COST" envDefault:"10"`

	DatabaseFile string `env:"AUTH_DATABASE_FILE" envDefault:"auth.db"`

	// BaseURL is the public URL embedded in invite links.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	SMTPHost       string  `env:"SMTP_HOST" envDefault:"localhost"`
	SMTPPort       int     `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser       string  `env:"SMTP_USER"`
	SMTPPass       string  `env:"SMTP_PASS"`
	EmailFrom      string  `env:"EMAIL_FROM" envDefault:"no-reply@localhost"`
	SendsPerSecond float64 `env:"SMTP_SENDS_PER_SECOND" envDefault:"5"`

	Env                 string        `env:"ENV" envDefault:"dev"`
	LogLevel            string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat           string        `env:"LOG_FORMAT" envDefault:"json"`
	Port                int           `env:"PORT" envDefault:"8080"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
}

// LoadConfig parses the environment and validates the required settings.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("AUTH_JWT_SECRET is required")
	}

	return cfg, nil
}
