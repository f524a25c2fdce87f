package database

import (
	"fmt"

	"studio-backend/internal/domain/contact"
	"studio-backend/internal/domain/pages"
	"studio-backend/internal/domain/works"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to Postgres and migrates the schema.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate applies the schema for all domain models. Tests call it
// directly against sqlite.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&works.Work{},
		&works.WorkI18n{},

		&pages.Page{},
		&pages.PageI18n{},

		&contact.ContactMessage{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
