// Package db opens the gorm database connection used by every repository.
package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"codesage_backend/internal/config"
	authentity "codesage_backend/internal/feature/auth/domain/entity"
	reviewentity "codesage_backend/internal/feature/review/domain/entity"
	snippetentity "codesage_backend/internal/feature/snippets/domain/entity"
)

// Open connects to the database described by cfg, retrying for up to a
// minute before giving up. TranslateError is enabled so unique-key
// violations surface as gorm.ErrDuplicatedKey regardless of driver.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var (
		conn *gorm.DB
		err  error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		conn, err = gorm.Open(postgres.Open(cfg.URL), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after 60s: %w", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if cfg.RunMigrations {
		if err := Migrate(conn); err != nil {
			return nil, err
		}
	}

	return conn, nil
}

// Migrate creates or updates the schema for every entity the service owns.
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(
		&authentity.User{},
		&reviewentity.CodeReview{},
		&reviewentity.PerformanceMetric{},
		&snippetentity.SharedSnippet{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
