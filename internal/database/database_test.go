package database_test

import (
	"fmt"
	"testing"

	"kvauth/internal/config"
	"kvauth/internal/database"
	"kvauth/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() config.Config {
	return config.Config{
		DatabaseDriver: config.DriverSQLite,
		DatabaseDSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		DBLogLevel:     "silent",
	}
}

func TestOpenAndMigrate(t *testing.T) {
	db, err := database.Open(memoryConfig())
	require.NoError(t, err)
	defer database.Close(db)

	require.NoError(t, database.Migrate(db))
	assert.True(t, db.Migrator().HasTable("users"))
	assert.True(t, db.Migrator().HasTable("datas"))
	assert.True(t, db.Migrator().HasIndex(&models.DataEntry{}, "Key"))
	assert.True(t, db.Migrator().HasIndex(&models.User{}, "Username"))
	assert.True(t, db.Migrator().HasIndex(&models.User{}, "Email"))

	assert.NoError(t, database.Ping(db))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	cfg := memoryConfig()
	cfg.DatabaseDriver = "oracle"
	_, err := database.Open(cfg)
	assert.Error(t, err)
}
