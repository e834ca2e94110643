package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Backend identifies which Postgres-compatible provider backs the app.
// It is chosen explicitly at startup instead of being sniffed out of the
// connection string.
type Backend string

const (
	BackendSupabase     Backend = "supabase"
	BackendNeon         Backend = "neon"
	BackendDigitalOcean Backend = "digitalocean"
	BackendLocal        Backend = "local"
)

func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case BackendSupabase:
		return BackendSupabase, nil
	case BackendNeon:
		return BackendNeon, nil
	case BackendDigitalOcean:
		return BackendDigitalOcean, nil
	case BackendLocal, "":
		return BackendLocal, nil
	}

	return "", fmt.Errorf("unknown database backend %q", s)
}

// SSLMode returns the sslmode the provider expects. Managed providers all
// require TLS; local development does not.
func (b Backend) SSLMode() string {
	if b == BackendLocal {
		return "disable"
	}

	return "require"
}

type Config struct {
	App struct {
		Name      string `envconfig:"APP_NAME" default:"Sentra CMS"`
		Port      int    `envconfig:"PORT" default:"3001"`
		FilesPort int    `envconfig:"FILES_PORT" default:"3002"`
	}

	DB struct {
		Backend  string `envconfig:"DB_BACKEND" default:"local"`
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"sentra"`
	}

	Server struct {
		Timeout      time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins  []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
		ScriptBudget time.Duration `envconfig:"SCRIPT_BUDGET" default:"60s"`
	}

	Auth struct {
		JWTSecret string        `envconfig:"JWT_SECRET" default:"dev-secret-change-me"`
		TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
	}

	S3 struct {
		Region          string `envconfig:"S3_REGION" default:"us-east-1"`
		Bucket          string `envconfig:"S3_BUCKET"`
		Endpoint        string `envconfig:"S3_ENDPOINT"`
		AccessKeyID     string `envconfig:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
		PublicBaseURL   string `envconfig:"S3_PUBLIC_BASE_URL"`
	}

	Webhook struct {
		GHLSecret string `envconfig:"GHL_WEBHOOK_SECRET"`
	}

	Portal struct {
		APIBaseURL   string        `envconfig:"PORTAL_API_URL" default:"http://localhost:3001"`
		PollInterval time.Duration `envconfig:"PORTAL_POLL_INTERVAL" default:"5s"`
	}
}

func (c *Config) ConnectionString() (string, error) {
	backend, err := ParseBackend(c.DB.Backend)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name, backend.SSLMode()), nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if _, err := ParseBackend(cfg.DB.Backend); err != nil {
		return nil, err
	}

	return &cfg, nil
}
