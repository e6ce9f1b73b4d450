package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/d60-Lab/drinklog/config"
)

func TestInitDB_SQLite(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{
		Driver:   "sqlite",
		DSN:      filepath.Join(t.TempDir(), "test.db"),
		LogLevel: "silent",
	}}
	db, err := InitDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
	assert.NoError(t, db.Exec("SELECT 1").Error)

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "drinklog.db?_foreign_keys=1", SQLiteDSN("drinklog.db"))
	assert.Equal(t, "file:x?mode=memory&_foreign_keys=1", SQLiteDSN("file:x?mode=memory"))
	assert.Equal(t, "x.db?_fk=0", SQLiteDSN("x.db?_fk=0"))
}

func TestInitDB_UnknownDriver(t *testing.T) {
	_, err := InitDB(&config.Config{Database: config.DatabaseConfig{Driver: "mysql"}})
	assert.Error(t, err)
}

func TestGormLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, gormLogLevel("SILENT"))
	assert.Equal(t, logger.Info, gormLogLevel("info"))
	assert.Equal(t, logger.Warn, gormLogLevel(""))
}
