package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory" // process-local maps, lost on restart
)

// Config holds everything the service needs at startup.
type Config struct {
	AppPort string

	DatabaseDriver string
	DatabaseDSN    string
	DBLogLevel     string

	JWTSecret         string
	TokenTTL          time.Duration
	StaticBearerToken string // empty disables the static token

	RabbitMQURL   string // empty disables event publishing
	RabbitMQQueue string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "kvauth.db")
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("JWT_SECRET", "using_dummy_secret_key_for_now")
	v.SetDefault("TOKEN_TTL_SECONDS", 3600)
	v.SetDefault("STATIC_BEARER_TOKEN", "fake_token_for_now_will_work")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_QUEUE", "kv_events")
}

// Load reads the configuration from v, applying defaults and environment
// overrides first.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	cfg := Config{
		AppPort:           v.GetString("APP_PORT"),
		DatabaseDriver:    v.GetString("DATABASE_DRIVER"),
		DatabaseDSN:       v.GetString("DATABASE_DSN"),
		DBLogLevel:        v.GetString("DB_LOG_LEVEL"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		TokenTTL:          time.Duration(v.GetInt("TOKEN_TTL_SECONDS")) * time.Second,
		StaticBearerToken: v.GetString("STATIC_BEARER_TOKEN"),
		RabbitMQURL:       v.GetString("RABBITMQ_URL"),
		RabbitMQQueue:     v.GetString("RABBITMQ_QUEUE"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values that have no usable fallback.
func (c Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite, DriverPostgres:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("DATABASE_DSN is required for driver %s", c.DatabaseDriver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported database driver %q", c.DatabaseDriver)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL_SECONDS must be positive, got %s", c.TokenTTL)
	}
	if c.RabbitMQURL != "" && c.RabbitMQQueue == "" {
		return fmt.Errorf("RABBITMQ_QUEUE is required when RABBITMQ_URL is set")
	}
	return nil
}
