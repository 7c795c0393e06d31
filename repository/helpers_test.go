package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeremiapane/restaurant-reservations/models"
)

// setupTestDB opens a private in-memory sqlite database with the schema applied.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.Reservation{}, &models.Table{}))
	return db
}

func seedReservation(t *testing.T, repo *ReservationRepository, r models.Reservation) models.Reservation {
	t.Helper()
	if r.FirstName == "" {
		r.FirstName = "Ada"
	}
	if r.LastName == "" {
		r.LastName = "Lovelace"
	}
	if r.People == 0 {
		r.People = 2
	}
	require.NoError(t, repo.Create(context.Background(), &r))
	return r
}
