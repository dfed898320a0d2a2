package postgres

import (
	"fmt"

	"github.com/nguyentranbao-ct/support-desk/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DB struct {
	Gorm *gorm.DB
}

func Open(dsn string) (*DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return &DB{Gorm: db}, nil
}

// Migrate creates the four tables and their foreign keys.
func (db *DB) Migrate() error {
	return db.Gorm.AutoMigrate(
		&models.User{},
		&models.Activity{},
		&models.Ticket{},
		&models.ChatMessage{},
	)
}

func (db *DB) Close() error {
	sqlDB, err := db.Gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
