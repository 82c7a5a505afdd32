package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"logichain.backend/internal/config"
	"logichain.backend/internal/infrastructure/models"
)

// Open connects to the configured database. SQLite is the default,
// matching the single-file deployment; Postgres is available for shared
// installations.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	switch cfg.Driver {
	case "postgres":
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  cfg.URL(),
			PreferSimpleProtocol: true,
		}), &gorm.Config{TranslateError: true})
	case "sqlite", "":
		return gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{TranslateError: true})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Migrate creates or updates the five CLM tables. Invoked once at startup.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Contract{},
		&models.ContractEvent{},
		&models.ContractAdditive{},
		&models.ComplianceCheck{},
		&models.SupplierPerformance{},
	)
}
