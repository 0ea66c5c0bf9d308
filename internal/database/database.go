package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"flashmart/internal/models"
)

// Database wraps the GORM connection and exposes the queries the
// storefront needs.
type Database struct {
	db *gorm.DB
}

// New opens the Postgres connection and migrates the schema.
func New(dsn string) (*Database, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Banner{},
		&models.Order{},
		&models.OrderItem{},
		&models.User{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	log.Println("Database connected and schema migrated")
	return &Database{db: db}, nil
}
