// Package database opens the relational store and the redis cache.
package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/cookduck/backend/config"
	"github.com/cookduck/backend/internal/model"
)

// New opens the postgres database, ensures the pgvector extension, and runs
// migrations.
func New(cfg config.DBConfig, logger *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return nil, fmt.Errorf("create vector extension: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	logger.Info("database connected",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Name),
	)
	return db, nil
}

// Migrate creates or updates the schema for all models.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Recipe{},
		&model.RecipeIngredient{},
		&model.User{},
		&model.Bookmark{},
		&model.UserIngredient{},
	)
	if err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
