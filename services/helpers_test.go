package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/validators"
)

// Monday 2030-01-07 12:00 UTC
var fixedNow = time.Date(2030, time.January, 7, 12, 0, 0, 0, time.UTC)

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

func testValidator() *validators.ReservationValidator {
	schedule := validators.DefaultSchedule()
	schedule.Location = time.UTC
	v := validators.NewReservationValidator(schedule)
	v.Clock = func() time.Time { return fixedNow }
	return v
}

type recordedEvent struct {
	event string
	data  interface{}
}

type fakeHub struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (h *fakeHub) Broadcast(event string, data interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, recordedEvent{event: event, data: data})
}

func (h *fakeHub) names() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	names := make([]string, 0, len(h.events))
	for _, e := range h.events {
		names = append(names, e.event)
	}
	return names
}

type fakeRecorder struct {
	created, seated, finished int
	statuses                  []string
	rejected                  []string
}

func (r *fakeRecorder) ReservationCreated()       { r.created++ }
func (r *fakeRecorder) StatusChanged(s string)    { r.statuses = append(r.statuses, s) }
func (r *fakeRecorder) Seated()                   { r.seated++ }
func (r *fakeRecorder) Finished()                 { r.finished++ }
func (r *fakeRecorder) Rejected(operation string) { r.rejected = append(r.rejected, operation) }

func bookingInput() validators.ReservationInput {
	return validators.ReservationInput{
		FirstName:       "Frank",
		LastName:        "Palmer",
		MobileNumber:    "202-555-0153",
		ReservationDate: "2030-01-09",
		ReservationTime: "13:30",
		People:          validators.Int(3),
	}
}

func createTable(t *testing.T, svc *TableService, name string, capacity int) *models.Table {
	t.Helper()
	table, err := svc.Create(context.Background(), validators.TableInput{TableName: name, Capacity: validators.Int(capacity)})
	require.NoError(t, err)
	return table
}
