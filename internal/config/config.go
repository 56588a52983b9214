// internal/config/config.go
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port               string        `env:"PORT" envDefault:"8080"`
	Environment        string        `env:"ENVIRONMENT" envDefault:"development"`
	DatabaseURL        string        `env:"DATABASE_URL"`
	JWTSecret          string        `env:"JWT_SECRET"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	RenderServiceURL   string        `env:"RENDER_SERVICE_URL" envDefault:"https://hackathon-creative-api.onrender.com/creative"`
	RenderTimeout      time.Duration `env:"RENDER_TIMEOUT" envDefault:"30s"`
	ApplyStrategy      string        `env:"DCO_APPLY_STRATEGY" envDefault:"all_matches"`
	VariationCap       int           `env:"DCO_VARIATION_CAP" envDefault:"3"`

	PSQL psqlConfig
}

type psqlConfig struct {
	Host     string `env:"PSQL_HOST" envDefault:"localhost"`
	Port     string `env:"PSQL_PORT" envDefault:"5432"`
	User     string `env:"PSQL_USER" envDefault:"postgres"`
	Password string `env:"PSQL_PASSWORD"`
	DBName   string `env:"PSQL_DB_NAME" envDefault:"creativeops"`
}

func (p psqlConfig) url() string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(p.User, p.Password),
		Host:   p.Host + ":" + p.Port,
		Path:   p.DBName,
	}
	q := u.Query()
	q.Set("sslmode", "disable")
	u.RawQuery = q.Encode()
	return u.String()
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = cfg.PSQL.url()
	}
	cfg.ApplyStrategy = strings.ToLower(strings.TrimSpace(cfg.ApplyStrategy))
	switch cfg.ApplyStrategy {
	case "all_matches", "first_match":
	default:
		return nil, fmt.Errorf("DCO_APPLY_STRATEGY must be all_matches or first_match, got %q", cfg.ApplyStrategy)
	}
	if cfg.IsProduction() && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required in production")
	}
	if cfg.VariationCap < 1 {
		return nil, fmt.Errorf("DCO_VARIATION_CAP must be positive, got %d", cfg.VariationCap)
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
