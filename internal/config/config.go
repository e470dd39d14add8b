package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Store drivers
const (
	StoreDriverFile     = "file"
	StoreDriverSupabase = "supabase"
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment   string `env:"ENV" envDefault:"development"`
	Port          string `env:"PORT" envDefault:"3001"`
	APIPrefix     string `env:"API_PREFIX" envDefault:"/api"`
	AllowedOrigin string `env:"ALLOWED_ORIGIN" envDefault:"*"`
	MaxBodyBytes  int64  `env:"MAX_BODY_BYTES" envDefault:"102400"`

	// Logging Configuration
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile     string `env:"LOG_FILE"`
	LogRequests bool   `env:"LOG_REQUESTS" envDefault:"false"`

	// Contact Configuration
	ContactTo   string `env:"CONTACT_TO"`
	ContactFrom string `env:"CONTACT_FROM"`

	// SMTP Configuration
	SMTP SMTPConfig

	// Storage Configuration
	StoreDriver  string `env:"STORE_DRIVER" envDefault:"file"`
	MessagesFile string `env:"MESSAGES_FILE" envDefault:"data/messages.json"`
	DatabaseURL  string `env:"DATABASE_URL"`

	// Supabase Configuration
	SupabaseURL   string `env:"SUPABASE_URL"`
	SupabaseKey   string `env:"SUPABASE_SERVICE_ROLE_KEY"`
	SupabaseTable string `env:"SUPABASE_TABLE" envDefault:"contacts"`

	// Telemetry Configuration
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// SMTPConfig describes the optional mail relay
type SMTPConfig struct {
	Service  string        `env:"SMTP_SERVICE"`
	Host     string        `env:"SMTP_HOST"`
	Port     int           `env:"SMTP_PORT"`
	Secure   bool          `env:"SMTP_SECURE" envDefault:"false"`
	User     string        `env:"SMTP_USER"`
	Pass     string        `env:"SMTP_PASS"`
	Required bool          `env:"SMTP_REQUIRED" envDefault:"false"`
	Timeout  time.Duration `env:"SMTP_TIMEOUT" envDefault:"10s"`
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	envLocations := []string{
		"internal/config/env/.env.production",
		"internal/config/env/.env.development",
		".env",
	}

	// If ENV is set, try to load that specific file first
	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{fmt.Sprintf("internal/config/env/.env.%s", envName)}, envLocations...)
	}

	for _, loc := range envLocations {
		if err := godotenv.Load(loc); err == nil {
			break
		}
	}

	return Parse()
}

// Parse builds the configuration from the current process environment only
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) normalize() error {
	c.ContactTo = strings.TrimSpace(c.ContactTo)
	c.ContactFrom = strings.TrimSpace(c.ContactFrom)
	c.SMTP.Service = strings.TrimSpace(c.SMTP.Service)
	c.SMTP.Host = strings.TrimSpace(c.SMTP.Host)
	c.SMTP.User = strings.TrimSpace(c.SMTP.User)
	c.SMTP.Pass = strings.TrimSpace(c.SMTP.Pass)
	c.APIPrefix = "/" + strings.Trim(c.APIPrefix, "/")
	if c.APIPrefix == "/" {
		c.APIPrefix = ""
	}

	if c.ContactFrom == "" {
		c.ContactFrom = c.SMTP.User
	}

	if c.SMTP.Timeout <= 0 {
		return fmt.Errorf("SMTP_TIMEOUT must be positive, got %s", c.SMTP.Timeout)
	}

	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	switch c.StoreDriver {
	case StoreDriverFile:
		if c.MessagesFile == "" {
			return fmt.Errorf("MESSAGES_FILE must not be empty")
		}
	case StoreDriverSupabase:
		if c.SupabaseURL == "" || c.SupabaseKey == "" {
			return fmt.Errorf("STORE_DRIVER=supabase requires SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY")
		}
	case StoreDriverPostgres, StoreDriverSQLite:
		if c.DatabaseURL == "" {
			return fmt.Errorf("STORE_DRIVER=%s requires DATABASE_URL", c.StoreDriver)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	// Set default log file if not set
	if c.LogFile == "" {
		if c.Environment == "production" {
			c.LogFile = "/app/logs/contact.log"
		} else {
			c.LogFile = "./logs/contact.log"
		}
	}

	return nil
}

// IsProduction reports whether the service runs with ENV=production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// EnsureLogDir creates the directory holding the log file
func (c *Config) EnsureLogDir() error {
	if err := os.MkdirAll(filepath.Dir(c.LogFile), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	return nil
}
