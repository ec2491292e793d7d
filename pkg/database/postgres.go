package database

import (
	"fmt"

	"github.com/meetsync/reservation-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.Room{}, &models.User{}, &models.Reservation{}); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	// Partial index covering the overlap query; cancelled rows never
	// participate in conflict checks.
	db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_reservation_active_window
		ON reservations (room_id, start_time, end_time)
		WHERE cancelled = false
	`)

	return db, nil
}
