package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stockroom/backoffice/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

func TestNewDatabase_SQLite(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "stockroom.db"),
	}

	db, err := NewDatabaseWithOptions(cfg, Options{Logger: zap.NewNop(), LogLevel: logger.Warn})
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, config.DriverSQLite, db.Driver())
	require.NoError(t, db.Ping(context.Background()))
	require.NoError(t, db.AutoMigrate(context.Background()))

	for _, table := range []string{"users", "categories", "brands", "firms", "products", "purchases", "sells"} {
		assert.True(t, db.DB.Migrator().HasTable(table), "table %s should exist", table)
	}

	stats, err := db.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.MaxOpenConnections)
}

func TestNewDatabase_UnsupportedDriver(t *testing.T) {
	_, err := NewDatabase(&config.DatabaseConfig{Driver: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestDatabase_WithTenant(t *testing.T) {
	db, err := NewDatabase(&config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	defer db.Close()

	assert.Panics(t, func() { db.WithTenant("") })
	assert.NotNil(t, db.WithTenant("00000000-0000-0000-0000-000000000001"))
}
