package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTableValidation(t *testing.T) {
	r := setupRouter(t, setupTestDB(t), nil)

	tests := []struct {
		name    string
		data    map[string]interface{}
		message string
	}{
		{"missing name", map[string]interface{}{"capacity": 2}, "Required field: table_name is missing"},
		{"short name", map[string]interface{}{"table_name": "A", "capacity": 2}, "table_name must be at least two characters long."},
		{"missing capacity", map[string]interface{}{"table_name": "#9"}, "Required field: capacity is missing"},
		{"text capacity", map[string]interface{}{"table_name": "#9", "capacity": "two"}, "capacity value must be a number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(r, http.MethodPost, "/tables", envelope(tt.data))
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.message, decode(t, w)["message"])
		})
	}
}

func TestListTablesOrderedByName(t *testing.T) {
	r := setupRouter(t, setupTestDB(t), nil)
	createTable(t, r, "#2", 6)
	createTable(t, r, "Bar #1", 1)
	createTable(t, r, "#1", 6)

	w := perform(r, http.MethodGet, "/tables", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode(t, w)["data"].([]interface{})
	require.Len(t, list, 3)

	names := make([]string, 0, len(list))
	for _, item := range list {
		names = append(names, item.(map[string]interface{})["table_name"].(string))
	}
	assert.Equal(t, []string{"#1", "#2", "Bar #1"}, names)
}

func TestSeatAndFinishTable(t *testing.T) {
	r := setupRouter(t, setupTestDB(t), nil)
	tableID := createTable(t, r, "#1", 4)
	reservationID := createReservation(t, r, validReservation())
	seatPath := fmt.Sprintf("/tables/%d/seat", tableID)

	w := perform(r, http.MethodPut, seatPath, envelope(map[string]interface{}{
		"reservation_id": fmt.Sprint(reservationID),
	}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(reservationID), decode(t, w)["data"].(map[string]interface{})["reservation_id"])

	w = perform(r, http.MethodGet, fmt.Sprintf("/reservations/%d", reservationID), nil)
	assert.Equal(t, "seated", decode(t, w)["data"].(map[string]interface{})["status"])

	w = perform(r, http.MethodDelete, seatPath, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Nil(t, decode(t, w)["data"].(map[string]interface{})["reservation_id"])

	w = perform(r, http.MethodGet, fmt.Sprintf("/reservations/%d", reservationID), nil)
	assert.Equal(t, "finished", decode(t, w)["data"].(map[string]interface{})["status"])

	w = perform(r, http.MethodDelete, seatPath, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Table is not occupied", decode(t, w)["message"])
}

func TestSeatTableErrors(t *testing.T) {
	r := setupRouter(t, setupTestDB(t), nil)
	tableID := createTable(t, r, "Bar #1", 1)
	reservationID := createReservation(t, r, validReservation())
	seatPath := fmt.Sprintf("/tables/%d/seat", tableID)

	w := perform(r, http.MethodPut, seatPath, envelope(map[string]interface{}{}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Required field: reservation_id is missing", decode(t, w)["message"])

	w = perform(r, http.MethodPut, seatPath, envelope(map[string]interface{}{"reservation_id": 42}))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "reservation number: 42 does not exist", decode(t, w)["message"])

	w = perform(r, http.MethodPut, seatPath, envelope(map[string]interface{}{"reservation_id": reservationID}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "table does not have sufficient capacity", decode(t, w)["message"])

	w = perform(r, http.MethodPut, "/tables/77/seat", envelope(map[string]interface{}{"reservation_id": reservationID}))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "table number 77 does not exist", decode(t, w)["message"])
}
