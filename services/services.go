package services

import (
	"errors"

	"github.com/yeremiapane/restaurant-reservations/utils"
)

// Broadcaster publishes change events to staff screens.
type Broadcaster interface {
	Broadcast(event string, data interface{})
}

// Recorder receives lifecycle counters.
type Recorder interface {
	ReservationCreated()
	StatusChanged(status string)
	Seated()
	Finished()
	Rejected(operation string)
}

type noopBroadcaster struct{}

func (noopBroadcaster) Broadcast(string, interface{}) {}

type noopRecorder struct{}

func (noopRecorder) ReservationCreated()  {}
func (noopRecorder) StatusChanged(string) {}
func (noopRecorder) Seated()              {}
func (noopRecorder) Finished()            {}
func (noopRecorder) Rejected(string)      {}

func orNoop(hub Broadcaster, rec Recorder) (Broadcaster, Recorder) {
	if hub == nil {
		hub = noopBroadcaster{}
	}
	if rec == nil {
		rec = noopRecorder{}
	}
	return hub, rec
}

// countRejection records err against operation when it is a client error.
func countRejection(rec Recorder, operation string, err error) {
	var reqErr *utils.RequestError
	if errors.As(err, &reqErr) {
		rec.Rejected(operation)
	}
}
