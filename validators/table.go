package validators

import (
	"fmt"
	"net/http"

	"github.com/yeremiapane/restaurant-reservations/models"
)

// TableInput is the table payload as sent by the client.
type TableInput struct {
	TableName string
	Capacity  Number
}

// SeatContext is what the seating rules look at. Reservation is nil when the
// requested reservation could not be found.
type SeatContext struct {
	Table         models.Table
	ReservationID uint
	Reservation   *models.Reservation
}

var ValidateTable = Chain[TableInput](
	requiredTableFields,
	tableNameLength,
	capacityIsNumber,
)

// ValidateSeatRequest checks the seat payload before anything is loaded.
func ValidateSeatRequest(reservationID Number) Result {
	if !reservationID.Present || (reservationID.Numeric && reservationID.Value == 0) {
		return Invalid("Required field: reservation_id is missing")
	}
	if !reservationID.Numeric || reservationID.Value < 0 {
		return Invalid("reservation_id must be a number")
	}
	return Pass()
}

var ValidateSeat = Chain[SeatContext](
	reservationExists,
	tableFree,
	tableFits,
	reservationNotSeated,
	reservationBooked,
)

// ValidateCapacity checks a party against the table it sits at.
var ValidateCapacity = Chain[SeatContext](
	tableFits,
)

var ValidateUnseat = Chain[models.Table](
	tableTaken,
)

func requiredTableFields(in TableInput) Result {
	if in.TableName == "" {
		return Invalid("Required field: table_name is missing")
	}
	if !in.Capacity.Present || (in.Capacity.Numeric && in.Capacity.Value == 0) {
		return Invalid("Required field: capacity is missing")
	}
	return Pass()
}

func tableNameLength(in TableInput) Result {
	if len([]rune(in.TableName)) < 2 {
		return Invalid("table_name must be at least two characters long.")
	}
	return Pass()
}

func capacityIsNumber(in TableInput) Result {
	if !in.Capacity.Numeric {
		return Invalid("capacity value must be a number")
	}
	if in.Capacity.Value < 1 {
		return Invalid("capacity must be at least 1")
	}
	return Pass()
}

func reservationExists(ctx SeatContext) Result {
	if ctx.Reservation == nil {
		return Fail(http.StatusNotFound, fmt.Sprintf("reservation number: %d does not exist", ctx.ReservationID))
	}
	return Pass()
}

func tableFree(ctx SeatContext) Result {
	if ctx.Table.Occupied() {
		return Invalid("table is occupied")
	}
	return Pass()
}

func tableFits(ctx SeatContext) Result {
	if ctx.Table.Capacity < ctx.Reservation.People {
		return Invalid("table does not have sufficient capacity")
	}
	return Pass()
}

func reservationNotSeated(ctx SeatContext) Result {
	if ctx.Reservation.Status == models.StatusSeated {
		return Invalid("reservation status is currently seated")
	}
	return Pass()
}

func reservationBooked(ctx SeatContext) Result {
	if ctx.Reservation.Status != models.StatusBooked {
		return Invalid(fmt.Sprintf("reservation status is currently %s", ctx.Reservation.Status))
	}
	return Pass()
}

func tableTaken(table models.Table) Result {
	if !table.Occupied() {
		return Invalid("Table is not occupied")
	}
	return Pass()
}
