package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/esil-events/chatbot/pkg/models"
)

// ErrMissing indicates a required configuration value is absent. Startup
// refuses to proceed without it; there is no per-request recovery.
var ErrMissing = errors.New("missing required configuration")

// Config holds all chatbot service configuration.
type Config struct {
	Listen  string        `yaml:"listen"`
	DBPath  string        `yaml:"db_path"`
	Log     LogConfig     `yaml:"log"`
	Catalog CatalogConfig `yaml:"catalog"`
	Gemini  GeminiConfig  `yaml:"gemini"`
	Cache   CacheConfig   `yaml:"cache"`
	Mail    MailConfig    `yaml:"mail"`
	Quota   QuotaConfig   `yaml:"quota"`
}

// LogConfig controls structured logging output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json or console
}

// CatalogConfig selects and configures the product store backend.
// Backend is "rest" (store URL + anonymous key) or "postgres" (DSN).
type CatalogConfig struct {
	Backend string `yaml:"backend"`
	URL     string `yaml:"url"`
	AnonKey string `yaml:"anon_key"`
	DSN     string `yaml:"dsn"`
}

// GeminiConfig configures the generative API client.
type GeminiConfig struct {
	APIKey        string `yaml:"api_key"`
	Model         string `yaml:"model"`
	FallbackModel string `yaml:"fallback_model"`
}

// CacheConfig controls the response cache.
// Backend is "file" (single JSON blob on disk) or "redis" (one key).
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Backend string        `yaml:"backend"`
	Path    string        `yaml:"path"`
	Redis   RedisConfig   `yaml:"redis"`
	TTL     time.Duration `yaml:"ttl"`
}

// RedisConfig holds Redis connection settings for the cache blob store.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"`
}

// MailConfig configures SMTP delivery and default addresses.
type MailConfig struct {
	SMTP    models.SMTPConfig `yaml:"smtp"`
	From    string            `yaml:"from"`
	To      string            `yaml:"to"`
	Retries int               `yaml:"retries"`
}

// QuotaConfig controls the generative API call quota guard.
type QuotaConfig struct {
	Enabled bool               `yaml:"enabled"`
	Policy  models.QuotaPolicy `yaml:"policy"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Listen: ":8080",
		DBPath: "chatbot.db",
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Catalog: CatalogConfig{
			Backend: "rest",
		},
		Gemini: GeminiConfig{
			Model: "gemini-2.0-flash",
		},
		Cache: CacheConfig{
			Enabled: true,
			Backend: "file",
			Path:    "chatbot_cache.json",
			TTL:     7 * 24 * time.Hour,
			Redis: RedisConfig{
				Addr: "localhost:6379",
				Key:  "chatbot:responses",
			},
		},
		Mail: MailConfig{
			SMTP:    models.SMTPConfig{Port: 587},
			Retries: 3,
		},
		Quota: QuotaConfig{
			Enabled: false,
		},
	}
}

// Load reads a YAML config file, expands environment variables, and
// validates required settings. A .env file next to the process is applied
// first, so ${VAR} references resolve against it.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every setting the process cannot run without is set.
func (c *Config) Validate() error {
	var missing []string

	switch c.Catalog.Backend {
	case "rest":
		if c.Catalog.URL == "" {
			missing = append(missing, "catalog.url")
		}
		if c.Catalog.AnonKey == "" {
			missing = append(missing, "catalog.anon_key")
		}
	case "postgres":
		if c.Catalog.DSN == "" {
			missing = append(missing, "catalog.dsn")
		}
	default:
		return fmt.Errorf("unknown catalog backend %q", c.Catalog.Backend)
	}

	if c.Gemini.APIKey == "" {
		missing = append(missing, "gemini.api_key")
	}
	if c.Mail.SMTP.Host == "" {
		missing = append(missing, "mail.smtp.host")
	}
	if c.Mail.SMTP.Port == 0 {
		missing = append(missing, "mail.smtp.port")
	}
	if c.Mail.SMTP.User == "" {
		missing = append(missing, "mail.smtp.user")
	}
	if c.Mail.SMTP.Password == "" {
		missing = append(missing, "mail.smtp.password")
	}
	if c.Mail.From == "" {
		missing = append(missing, "mail.from")
	}
	if c.Mail.To == "" {
		missing = append(missing, "mail.to")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissing, strings.Join(missing, ", "))
	}
	return nil
}
