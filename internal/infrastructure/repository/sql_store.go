package repository

import (
	"fmt"

	"merchant-review-shopify-layer/internal/infrastructure/repository/entity"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenSQL opens the relational store for the given driver and optionally migrates the Session and Review tables
func OpenSQL(driver, dsn string, autoMigrate bool, logger zerolog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if autoMigrate {
		if err := db.AutoMigrate(&entity.SQLSession{}, &entity.SQLReview{}); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Info().Str("driver", driver).Msg("Database schema migrated")
	}

	return db, nil
}

// CloseSQL closes the underlying connection pool
func CloseSQL(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
