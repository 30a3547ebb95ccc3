package config_test

import (
	"testing"
	"time"

	"kvauth/internal/config"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, config.DriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, "using_dummy_secret_key_for_now", cfg.JWTSecret)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, "fake_token_for_now_will_work", cfg.StaticBearerToken)
	assert.Equal(t, "kv_events", cfg.RabbitMQQueue)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_DSN", "host=db user=kv dbname=kv sslmode=disable")
	t.Setenv("TOKEN_TTL_SECONDS", "60")
	t.Setenv("STATIC_BEARER_TOKEN", "")

	cfg, err := config.Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, config.DriverPostgres, cfg.DatabaseDriver)
	assert.Equal(t, "host=db user=kv dbname=kv sslmode=disable", cfg.DatabaseDSN)
	assert.Equal(t, time.Minute, cfg.TokenTTL)
	assert.Empty(t, cfg.StaticBearerToken)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  interface{}
		want string
	}{
		{"unknown driver", "DATABASE_DRIVER", "mysql", "unsupported database driver"},
		{"empty secret", "JWT_SECRET", "", "JWT_SECRET"},
		{"zero ttl", "TOKEN_TTL_SECONDS", 0, "TOKEN_TTL_SECONDS"},
		{"empty dsn", "DATABASE_DSN", "", "DATABASE_DSN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set(tt.key, tt.val)
			_, err := config.Load(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_MemoryDriverNeedsNoDSN(t *testing.T) {
	v := viper.New()
	v.Set("DATABASE_DRIVER", "memory")
	v.Set("DATABASE_DSN", "")
	cfg, err := config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, config.DriverMemory, cfg.DatabaseDriver)
}
