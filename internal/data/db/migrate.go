package db

import (
	types "github.com/yungbote/stepwise-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(types.Models()...)
}

// SupportsRowLocks is false for SQLite, which serializes writers instead.
func SupportsRowLocks(db *gorm.DB) bool {
	return db != nil && db.Dialector.Name() != DriverSQLite
}
