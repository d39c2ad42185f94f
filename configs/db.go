package configs

import (
	"fmt"

	"storefront/entity"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectionDB opens the database selected by cfg.DBDriver.
func ConnectionDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DBSource)
	case "mysql":
		dialector = mysql.Open(cfg.DBSource)
	default:
		dialector = sqlite.Open(cfg.DBSource)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		DisableForeignKeyConstraintWhenMigrating: cfg.DBDriver == "sqlite",
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.DBDriver, err)
	}

	if cfg.DBDriver == "sqlite" {
		// sqlite serializes writers; one connection avoids SQLITE_BUSY under concurrent requests
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

func SetupDatabase(db *gorm.DB) error {
	// Migrate the schema
	if err := db.AutoMigrate(entity.Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
