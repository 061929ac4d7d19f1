package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"dev" validate:"oneof=dev staging prod test"`
	Port        int    `env:"PORT" envDefault:"8080" validate:"min=1,max=65535"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"INFO"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
	LogDir      string `env:"LOG_DIR" envDefault:"logs"`
	APIKey      string `env:"API_KEY" validate:"required"` // API key for authentication

	// TrustedProxies may set X-Forwarded-For. Comma separated IPs.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"postgres" validate:"oneof=postgres sqlite memory"`

	DBUser            string        `env:"DB_USER" envDefault:"postgres"`
	DBPassword        string        `env:"DB_PASSWORD" envDefault:"postgres"`
	DBHost            string        `env:"DB_HOST" envDefault:"localhost"`
	DBPort            string        `env:"DB_PORT" envDefault:"5432"`
	DBName            string        `env:"DB_NAME" envDefault:"spiritsummon"`
	DBMaxConns        int           `env:"DB_MAX_CONNS" envDefault:"20" validate:"min=1"`
	DBMaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"5m"`
	DBMaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"30m"`

	SQLitePath string `env:"SQLITE_PATH" envDefault:"data/spiritsummon.db"`

	GachaConfigPath string `env:"GACHA_CONFIG_PATH" envDefault:"configs/gacha.yaml"`
	CatalogPath     string `env:"CATALOG_PATH" envDefault:"configs/spirits.yaml"`
	// RNGSeed pins the draw source for reproducible runs. Zero means crypto randomness.
	RNGSeed uint64 `env:"GACHA_RNG_SEED" envDefault:"0"`

	NATSURL           string        `env:"NATS_URL"`
	NATSSubjectPrefix string        `env:"NATS_SUBJECT_PREFIX" envDefault:"spiritsummon"`
	EventMaxRetries   int           `env:"EVENT_MAX_RETRIES" envDefault:"5" validate:"min=0"`
	EventRetryDelay   time.Duration `env:"EVENT_RETRY_DELAY" envDefault:"2s"`
	DeadLetterPath    string        `env:"EVENT_DEADLETTER_PATH" envDefault:"logs/event_deadletter.jsonl"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("API_KEY environment variable must be set for security")
		}
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// EventsOverNATS reports whether events leave the process.
func (c *Config) EventsOverNATS() bool {
	return c.NATSURL != ""
}
