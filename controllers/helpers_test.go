package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeremiapane/restaurant-reservations/controllers"
	"github.com/yeremiapane/restaurant-reservations/floor"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/services"
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
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Reservation{}, &models.Table{}))
	return db
}

func setupRouter(t *testing.T, db *gorm.DB, hub *floor.Hub) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	schedule := validators.DefaultSchedule()
	schedule.Location = time.UTC
	validator := validators.NewReservationValidator(schedule)
	validator.Clock = func() time.Time { return fixedNow }

	var broadcaster services.Broadcaster
	if hub != nil {
		broadcaster = hub
	}
	rc := controllers.NewReservationController(services.NewReservationService(db, validator, broadcaster, nil))
	tc := controllers.NewTableController(services.NewTableService(db, broadcaster, nil))

	r := gin.New()
	r.GET("/reservations", rc.ListReservations)
	r.POST("/reservations", rc.CreateReservation)
	r.GET("/reservations/export", rc.ExportReservations)
	r.GET("/reservations/:reservation_id", rc.GetReservation)
	r.PUT("/reservations/:reservation_id", rc.UpdateReservation)
	r.PUT("/reservations/:reservation_id/status", rc.UpdateStatus)
	r.DELETE("/reservations/:reservation_id", rc.DeleteReservation)
	r.GET("/tables", tc.GetAllTables)
	r.POST("/tables", tc.CreateTable)
	r.GET("/tables/:table_id", tc.GetTableByID)
	r.PUT("/tables/:table_id/seat", tc.SeatTable)
	r.DELETE("/tables/:table_id/seat", tc.FinishTable)
	if hub != nil {
		r.GET("/ws", controllers.NewFloorController(hub, nil).FloorHandler)
	}
	return r
}

func perform(r http.Handler, method, path string, body interface{}, header ...string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func envelope(data map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{"data": data}
}

func validReservation() map[string]interface{} {
	return map[string]interface{}{
		"first_name":       "Rick",
		"last_name":        "Sanchez",
		"mobile_number":    "202-555-0164",
		"reservation_date": "2030-01-09",
		"reservation_time": "13:30",
		"people":           2,
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func createReservation(t *testing.T, r http.Handler, fields map[string]interface{}) uint {
	t.Helper()
	w := perform(r, http.MethodPost, "/reservations", envelope(fields))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]interface{})
	return uint(data["reservation_id"].(float64))
}

func createTable(t *testing.T, r http.Handler, name string, capacity int) uint {
	t.Helper()
	w := perform(r, http.MethodPost, "/tables", envelope(map[string]interface{}{
		"table_name": name,
		"capacity":   capacity,
	}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]interface{})
	return uint(data["table_id"].(float64))
}
