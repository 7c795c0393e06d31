package models

import "time"

// Reservation lifecycle states.
const (
	StatusBooked    = "booked"
	StatusSeated    = "seated"
	StatusFinished  = "finished"
	StatusCancelled = "cancelled"
)

// transitions lists the statuses a reservation may move to from each state.
// Staying in the current state is always allowed except for finished.
var transitions = map[string][]string{
	StatusBooked:    {StatusSeated, StatusCancelled},
	StatusSeated:    {StatusFinished},
	StatusFinished:  {},
	StatusCancelled: {},
}

type Reservation struct {
	ID              uint      `gorm:"primaryKey;column:reservation_id" json:"reservation_id"`
	FirstName       string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName        string    `gorm:"type:varchar(100);not null" json:"last_name"`
	MobileNumber    string    `gorm:"type:varchar(30);not null;index" json:"mobile_number"`
	ReservationDate string    `gorm:"type:varchar(10);not null;index" json:"reservation_date"`
	ReservationTime string    `gorm:"type:varchar(5);not null" json:"reservation_time"`
	People          int       `gorm:"not null" json:"people"`
	Status          string    `gorm:"type:varchar(20);not null;default:'booked'" json:"status"`
	Note            string    `gorm:"type:text" json:"note,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// IsKnownStatus reports whether status is one of the reservation lifecycle states.
func IsKnownStatus(status string) bool {
	_, ok := transitions[status]
	return ok
}

// CanTransition reports whether a reservation in state from may move to state to.
func CanTransition(from, to string) bool {
	if from == StatusFinished {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
