package db

import (
	"fmt"

	"flight-ops/dispatch/internal/config"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// NewSQLX wraps the pool GORM already owns so hand-written report queries
// share the same connection (and the same single SQLite connection).
func NewSQLX(gormDB *gorm.DB, driver string) (*sqlx.DB, error) {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	driverName := "sqlite3"
	if driver == config.DriverPostgres {
		driverName = "postgres"
	}
	return sqlx.NewDb(sqlDB, driverName), nil
}
