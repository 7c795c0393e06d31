package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeremiapane/restaurant-reservations/config"
	"github.com/yeremiapane/restaurant-reservations/database"
	"github.com/yeremiapane/restaurant-reservations/floor"
	"github.com/yeremiapane/restaurant-reservations/metrics"
	"github.com/yeremiapane/restaurant-reservations/router"
	"github.com/yeremiapane/restaurant-reservations/utils"
	"github.com/yeremiapane/restaurant-reservations/validators"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// TestEndToEndIntegration walks the host stand flow:
// login, book, seat at a seeded table, finish, then check the table is free
// and the counters moved.
func TestEndToEndIntegration(t *testing.T) {
	r := setupApp(t)
	token := loginTest(t, r)

	reservationID := createReservationTest(t, r, token)
	tableID := findTableTest(t, r, token, "#1")

	w := call(r, token, http.MethodPut, fmt.Sprintf("/tables/%d/seat", tableID), `{"data":{"reservation_id":`+fmt.Sprint(reservationID)+`}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = call(r, token, http.MethodGet, "/reservations?date=2030-01-09", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"seated"`)

	w = call(r, token, http.MethodDelete, fmt.Sprintf("/tables/%d/seat", tableID), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = call(r, token, http.MethodGet, "/reservations?date=2030-01-09", "")
	assert.JSONEq(t, `{"data":[]}`, w.Body.String(), "finished reservations leave the day view")

	w = call(r, token, http.MethodGet, fmt.Sprintf("/tables/%d", tableID), "")
	assert.Contains(t, w.Body.String(), `"reservation_id":null`)

	w = call(r, "", http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "reservations_seatings_total 1")
	assert.Contains(t, w.Body.String(), "reservations_finishes_total 1")
}

func TestRoutesRequireToken(t *testing.T) {
	r := setupApp(t)

	w := call(r, "", http.MethodGet, "/reservations", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = call(r, "", http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":"pong"}`, w.Body.String())

	w = call(r, "", http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Path not found: /nowhere"}`, w.Body.String())
}

func setupApp(t *testing.T) *gin.Engine {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	admin := database.Admin{Email: "admin@example.com", Password: "integration"}
	require.NoError(t, database.Seed(context.Background(), db, admin))

	cfg := &config.Config{
		AuthEnabled:    true,
		JWTSecret:      "integration-secret",
		CORSOrigins:    []string{"*"},
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
	}
	schedule := validators.DefaultSchedule()
	schedule.Location = time.UTC
	validator := validators.NewReservationValidator(schedule)
	validator.Clock = func() time.Time { return time.Date(2030, time.January, 7, 12, 0, 0, 0, time.UTC) }

	r, err := router.SetupRouter(router.Deps{
		DB:        db,
		Config:    cfg,
		Validator: validator,
		Hub:       floor.NewHub(),
		Metrics:   metrics.New(),
	})
	require.NoError(t, err)
	return r
}

func call(r http.Handler, token, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func loginTest(t *testing.T, r http.Handler) string {
	w := call(r, "", http.MethodPost, "/login", `{"email":"admin@example.com","password":"integration"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func createReservationTest(t *testing.T, r http.Handler, token string) uint {
	body := `{"data":{"first_name":"Morty","last_name":"Smith","mobile_number":"202-555-0111",` +
		`"reservation_date":"2030-01-09","reservation_time":"18:00","people":4}}`
	w := call(r, token, http.MethodPost, "/reservations", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			ID     uint   `json:"reservation_id"`
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "booked", resp.Data.Status)
	return resp.Data.ID
}

func findTableTest(t *testing.T, r http.Handler, token, name string) uint {
	w := call(r, token, http.MethodGet, "/tables", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []struct {
			ID   uint   `json:"table_id"`
			Name string `json:"table_name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	for _, table := range resp.Data {
		if strings.EqualFold(table.Name, name) {
			return table.ID
		}
	}
	t.Fatalf("table %s not seeded", name)
	return 0
}
