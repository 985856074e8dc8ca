package database

import (
	"embed"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate brings the schema up to date with the embedded migration files.
func Migrate(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		zap.L().Fatal("Failed to get database handle", zap.Error(err))
	}

	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		zap.L().Fatal("Failed to set migration dialect", zap.Error(err))
	}

	if err := goose.Up(sqlDB, "migrations"); err != nil {
		zap.L().Fatal("Failed to run migrations", zap.Error(err))
	}
}
