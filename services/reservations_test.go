package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-reservations/floor"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/validators"
)

func TestCreateReservation(t *testing.T) {
	f := newSeatingFixture(t)
	r := f.book(t, 3)

	assert.NotZero(t, r.ID)
	assert.Equal(t, models.StatusBooked, r.Status)
	assert.Equal(t, 1, f.rec.created)
	assert.Equal(t, []string{floor.EventReservationCreate}, f.hub.names())
}

func TestCreateReservationRejectsTuesday(t *testing.T) {
	f := newSeatingFixture(t)
	in := bookingInput()
	in.ReservationDate = "2030-01-08"

	_, err := f.reservations.Create(context.Background(), in)
	requireRequestError(t, err, http.StatusBadRequest, "The restaurant is closed on Tuesdays")
	assert.Equal(t, []string{"create"}, f.rec.rejected)
	assert.Empty(t, f.hub.names())
}

func TestListReservations(t *testing.T) {
	ctx := context.Background()
	f := newSeatingFixture(t)
	f.book(t, 2)
	other := bookingInput()
	other.ReservationDate = "2030-01-10"
	other.MobileNumber = "808-555-0000"
	_, err := f.reservations.Create(ctx, other)
	require.NoError(t, err)

	all, err := f.reservations.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byDate, err := f.reservations.List(ctx, ListFilter{Date: "2030-01-10"})
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, "808-555-0000", byDate[0].MobileNumber)

	byPhone, err := f.reservations.List(ctx, ListFilter{MobileNumber: "202", Date: "2030-01-10"})
	require.NoError(t, err)
	require.Len(t, byPhone, 1)
	assert.Equal(t, "2030-01-09", byPhone[0].ReservationDate)

	none, err := f.reservations.List(ctx, ListFilter{Date: "2031-01-01"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestUpdateReservation(t *testing.T) {
	ctx := context.Background()
	f := newSeatingFixture(t)
	r := f.book(t, 2)

	in := bookingInput()
	in.FirstName = "Francis"
	in.People = validators.Int(5)
	updated, err := f.reservations.Update(ctx, r.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Francis", updated.FirstName)
	assert.Equal(t, 5, updated.People)
	assert.Equal(t, models.StatusBooked, updated.Status)

	_, err = f.reservations.Update(ctx, 999, in)
	requireRequestError(t, err, http.StatusNotFound, "Reservation number 999 does not exist")
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	f := newSeatingFixture(t)
	r := f.book(t, 2)

	_, err := f.reservations.UpdateStatus(ctx, r.ID, "unknown")
	requireRequestError(t, err, http.StatusBadRequest, "reservation status is unknown")

	cancelled, err := f.reservations.UpdateStatus(ctx, r.ID, models.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.Equal(t, []string{models.StatusCancelled}, f.rec.statuses)

	_, err = f.reservations.UpdateStatus(ctx, r.ID, models.StatusSeated)
	requireRequestError(t, err, http.StatusBadRequest, "reservation status cannot change from cancelled to seated")
}

func TestFinishingThroughStatusFreesTable(t *testing.T) {
	ctx := context.Background()
	f := newSeatingFixture(t)
	table := createTable(t, f.tables, "#1", 4)
	r := f.book(t, 2)
	_, err := f.tables.Seat(ctx, table.ID, validators.Int(int(r.ID)))
	require.NoError(t, err)

	_, err = f.reservations.UpdateStatus(ctx, r.ID, models.StatusFinished)
	require.NoError(t, err)

	stored, err := f.tables.Get(ctx, table.ID)
	require.NoError(t, err)
	assert.False(t, stored.Occupied())
}

func TestDeleteReservation(t *testing.T) {
	ctx := context.Background()
	f := newSeatingFixture(t)
	table := createTable(t, f.tables, "#1", 4)
	r := f.book(t, 2)
	_, err := f.tables.Seat(ctx, table.ID, validators.Int(int(r.ID)))
	require.NoError(t, err)

	require.NoError(t, f.reservations.Delete(ctx, r.ID))

	_, err = f.reservations.Get(ctx, r.ID)
	requireRequestError(t, err, http.StatusNotFound, "Reservation number 1 does not exist")

	stored, err := f.tables.Get(ctx, table.ID)
	require.NoError(t, err)
	assert.False(t, stored.Occupied())

	err = f.reservations.Delete(ctx, r.ID)
	requireRequestError(t, err, http.StatusNotFound, "Reservation number 1 does not exist")
}

func TestUpdateSeatedPartyMustFitTable(t *testing.T) {
	ctx := context.Background()
	f := newSeatingFixture(t)
	table := createTable(t, f.tables, "#1", 4)
	r := f.book(t, 2)
	_, err := f.tables.Seat(ctx, table.ID, validators.Int(int(r.ID)))
	require.NoError(t, err)

	in := bookingInput()
	in.People = validators.Int(12)
	_, err = f.reservations.Update(ctx, r.ID, in)
	requireRequestError(t, err, http.StatusBadRequest, "table does not have sufficient capacity")

	stored, err := f.reservations.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.People)

	in.People = validators.Int(4)
	updated, err := f.reservations.Update(ctx, r.ID, in)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.People)
	assert.Equal(t, models.StatusSeated, updated.Status)
}

func TestStatusChangeCannotSeat(t *testing.T) {
	ctx := context.Background()
	f := newSeatingFixture(t)
	table := createTable(t, f.tables, "#1", 4)
	r := f.book(t, 2)

	_, err := f.reservations.UpdateStatus(ctx, r.ID, models.StatusSeated)
	requireRequestError(t, err, http.StatusBadRequest, "reservation can only be seated at a table")

	_, err = f.reservations.UpdateStatus(ctx, r.ID, "")
	requireRequestError(t, err, http.StatusBadRequest, "Required field: status is missing")

	stored, err := f.reservations.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusBooked, stored.Status)

	seated, err := f.tables.Seat(ctx, table.ID, validators.Int(int(r.ID)))
	require.NoError(t, err)
	assert.Equal(t, r.ID, *seated.ReservationID)
}
