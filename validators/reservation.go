package validators

import (
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/yeremiapane/restaurant-reservations/models"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ReservationInput is the reservation payload as sent by the client.
type ReservationInput struct {
	FirstName       string
	LastName        string
	MobileNumber    string
	ReservationDate string
	ReservationTime string
	People          Number
	Status          string
	Note            string
}

// ReservationContext carries everything the reservation rules look at.
// Existing is nil when creating.
type ReservationContext struct {
	Input    ReservationInput
	Existing *models.Reservation
	Now      time.Time
	Schedule Schedule
}

// StatusChange is a requested status move for an existing reservation.
type StatusChange struct {
	To       string
	Existing models.Reservation
}

type ReservationValidator struct {
	Schedule Schedule
	Clock    func() time.Time
}

func NewReservationValidator(schedule Schedule) *ReservationValidator {
	return &ReservationValidator{Schedule: schedule, Clock: time.Now}
}

func (v *ReservationValidator) context(in ReservationInput, existing *models.Reservation) ReservationContext {
	clock := v.Clock
	if clock == nil {
		clock = time.Now
	}
	return ReservationContext{Input: in, Existing: existing, Now: clock(), Schedule: v.Schedule}
}

var payloadRules = Chain[ReservationContext](
	onlyBookedStatus,
	requiredReservationFields,
	reservationDateShape,
	reservationTimeShape,
	peopleIsNumber,
	withinSchedule,
)

func (v *ReservationValidator) ValidateCreate(in ReservationInput) Result {
	return payloadRules(v.context(in, nil))
}

// ValidateUpdate checks a full replacement payload against the stored
// reservation.
func (v *ReservationValidator) ValidateUpdate(in ReservationInput, existing models.Reservation) Result {
	if res := payloadRules(v.context(in, &existing)); !res.OK() {
		return res
	}
	to := in.Status
	if to == "" {
		to = existing.Status
	}
	return statusRules(StatusChange{To: to, Existing: existing})
}

var statusRules = Chain[StatusChange](
	recognizedStatus,
	notFinished,
	legalTransition,
)

// statusEndpointRules guard a bare status change. Seating goes through a
// table, so it is not reachable from here.
var statusEndpointRules = Chain[StatusChange](
	statusPresent,
	recognizedStatus,
	notFinished,
	legalTransition,
	seatedOnlyAtTable,
)

// ValidateStatus checks a status change requested on its own, without a
// table assignment.
func (v *ReservationValidator) ValidateStatus(change StatusChange) Result {
	return statusEndpointRules(change)
}

func onlyBookedStatus(ctx ReservationContext) Result {
	if s := ctx.Input.Status; s != "" && s != models.StatusBooked {
		return Invalid(fmt.Sprintf("reservation is %s", s))
	}
	return Pass()
}

func requiredReservationFields(ctx ReservationContext) Result {
	in := ctx.Input
	fields := []struct {
		name    string
		present bool
	}{
		{"first_name", in.FirstName != ""},
		{"last_name", in.LastName != ""},
		{"mobile_number", in.MobileNumber != ""},
		{"reservation_date", in.ReservationDate != ""},
		{"reservation_time", in.ReservationTime != ""},
		{"people", in.People.Present && !(in.People.Numeric && in.People.Value == 0)},
	}
	for _, f := range fields {
		if !f.present {
			return Invalid(fmt.Sprintf("Required field: %s is missing", f.name))
		}
	}
	return Pass()
}

func reservationDateShape(ctx ReservationContext) Result {
	date := ctx.Input.ReservationDate
	if !datePattern.MatchString(date) {
		return Invalid("reservation_date does not match the pattern")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return Invalid("reservation_date does not match the pattern")
	}
	return Pass()
}

func reservationTimeShape(ctx ReservationContext) Result {
	if !clockPattern.MatchString(ctx.Input.ReservationTime) {
		return Invalid("reservation_time does not match pattern")
	}
	return Pass()
}

func peopleIsNumber(ctx ReservationContext) Result {
	people := ctx.Input.People
	if !people.Numeric {
		return Invalid("people value must be a number")
	}
	if people.Value < 1 {
		return Invalid("people must be at least 1")
	}
	return Pass()
}

func withinSchedule(ctx ReservationContext) Result {
	at, err := ctx.Schedule.At(ctx.Input.ReservationDate, ctx.Input.ReservationTime)
	if err != nil {
		return Invalid("reservation_date does not match the pattern")
	}
	if problems := ctx.Schedule.Check(at, ctx.Now); len(problems) > 0 {
		return Invalid(problems...)
	}
	return Pass()
}

func statusPresent(change StatusChange) Result {
	if change.To == "" {
		return Invalid("Required field: status is missing")
	}
	return Pass()
}

func recognizedStatus(change StatusChange) Result {
	if !models.IsKnownStatus(change.To) {
		return Invalid(fmt.Sprintf("reservation status is %s", change.To))
	}
	return Pass()
}

func notFinished(change StatusChange) Result {
	if change.Existing.Status == models.StatusFinished {
		return Invalid("reservation status is currently finished")
	}
	return Pass()
}

func legalTransition(change StatusChange) Result {
	if !models.CanTransition(change.Existing.Status, change.To) {
		return Fail(http.StatusBadRequest,
			fmt.Sprintf("reservation status cannot change from %s to %s", change.Existing.Status, change.To))
	}
	return Pass()
}

func seatedOnlyAtTable(change StatusChange) Result {
	if change.To == models.StatusSeated && change.Existing.Status != models.StatusSeated {
		return Invalid("reservation can only be seated at a table")
	}
	return Pass()
}
