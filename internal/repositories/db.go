package repositories

import (
	"fmt"

	"github.com/lockdrop/lockdrop-server/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OpenDatabase connects to Postgres and runs migrations. The handle is
// returned to the caller rather than stored in a package global, so every
// consumer receives its dependency explicitly.
func OpenDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	// Run migrations
	if err := db.AutoMigrate(
		&models.Transfer{},
		&models.File{},
	); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return db, nil
}
