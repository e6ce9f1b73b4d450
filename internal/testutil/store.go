// Package testutil opens isolated in-memory stores for tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/d60-Lab/drinklog/internal/repository"
	"github.com/d60-Lab/drinklog/pkg/database"
)

var seq atomic.Int64

// OpenDB opens a named shared-cache in-memory sqlite database private to tb.
func OpenDB(tb testing.TB) *gorm.DB {
	tb.Helper()
	dsn := fmt.Sprintf("file:drinklog_test_%d?mode=memory&cache=shared", seq.Add(1))
	db, err := gorm.Open(sqlite.Open(database.SQLiteDSN(dsn)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		tb.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// NewStore returns a migrated Store on a fresh database.
func NewStore(tb testing.TB) *repository.Store {
	tb.Helper()
	st := repository.NewStore(OpenDB(tb))
	if err := st.AutoMigrate(); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	return st
}
