// Package dbtest opens throwaway stores for tests.
package dbtest

import (
	"testing"

	"flight-ops/dispatch/internal/config"
	"flight-ops/dispatch/internal/db"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewSQLite returns an in-memory SQLite store migrated with the production schema
func NewSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	gormDB, err := db.OpenDialector(sqlite.Open(config.SQLiteDSN(":memory:")), config.DriverSQLite)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gormDB) })

	sqlDB, err := gormDB.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	if err := db.RunMigrations(sqlDB, config.DriverSQLite, zap.NewNop().Sugar()); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return gormDB
}

// NewSQLX wraps a test store for report queries
func NewSQLX(t *testing.T, gormDB *gorm.DB) *sqlx.DB {
	t.Helper()

	x, err := db.NewSQLX(gormDB, config.DriverSQLite)
	if err != nil {
		t.Fatalf("Failed to wrap sqlx: %v", err)
	}
	return x
}
