//go:build integration

package integration

import (
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/meetsync/reservation-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_PORT", "5434"),
		getEnv("TEST_DB_USER", "postgres"),
		getEnv("TEST_DB_PASSWORD", "postgres"),
		getEnv("TEST_DB_NAME", "reservation_test_db"),
	)

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to test database: %v", err)
	}

	// Drop and recreate tables for clean state
	testDB.Exec("DROP TABLE IF EXISTS reservations")
	testDB.Exec("DROP TABLE IF EXISTS rooms")
	testDB.Exec("DROP TABLE IF EXISTS users")

	if err := testDB.AutoMigrate(&models.Room{}, &models.User{}, &models.Reservation{}); err != nil {
		log.Fatalf("failed to auto-migrate test database: %v", err)
	}

	testDB.Exec(`
		CREATE INDEX IF NOT EXISTS idx_reservation_active_window
		ON reservations (room_id, start_time, end_time)
		WHERE cancelled = false
	`)

	code := m.Run()

	testDB.Exec("DROP TABLE IF EXISTS reservations")
	testDB.Exec("DROP TABLE IF EXISTS rooms")
	testDB.Exec("DROP TABLE IF EXISTS users")

	os.Exit(code)
}

func cleanTables() {
	testDB.Exec("DELETE FROM reservations")
	testDB.Exec("DELETE FROM rooms")
	testDB.Exec("DELETE FROM users")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
