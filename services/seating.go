package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-reservations/floor"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/repository"
	"github.com/yeremiapane/restaurant-reservations/utils"
	"github.com/yeremiapane/restaurant-reservations/validators"
)

// Seat assigns a booked reservation to a free table. The table occupant and
// the reservation status are written in one transaction.
func (s *TableService) Seat(ctx context.Context, tableID uint, reservationID validators.Number) (*models.Table, error) {
	var seated models.Table
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tables := s.tables.WithTx(tx)
		reservations := s.reservations.WithTx(tx)

		table, err := tables.ReadForUpdate(ctx, tableID)
		if errors.Is(err, repository.ErrTableNotFound) {
			return tableNotFound(tableID)
		}
		if err != nil {
			return err
		}
		if err := validators.ValidateSeatRequest(reservationID).Err(); err != nil {
			return err
		}

		id := uint(reservationID.Value)
		reservation, err := reservations.ReadForUpdate(ctx, id)
		if err != nil && !errors.Is(err, repository.ErrReservationNotFound) {
			return err
		}
		seat := validators.SeatContext{Table: *table, ReservationID: id, Reservation: reservation}
		if err := validators.ValidateSeat(seat).Err(); err != nil {
			return err
		}

		if err := tables.Seat(ctx, table.ID, id); err != nil {
			return err
		}
		if err := reservations.UpdateStatus(ctx, id, models.StatusSeated); err != nil {
			return err
		}
		table.ReservationID = &id
		seated = *table
		return nil
	})
	if err != nil {
		countRejection(s.metrics, "seat", err)
		return nil, err
	}

	s.metrics.Seated()
	s.hub.Broadcast(floor.EventTableSeat, seated)
	utils.InfoLogger.Infof("reservation %d seated at table %d", *seated.ReservationID, seated.ID)
	return &seated, nil
}

// Finish frees an occupied table and marks its reservation finished, in one
// transaction.
func (s *TableService) Finish(ctx context.Context, tableID uint) (*models.Table, error) {
	var (
		freed    models.Table
		occupant uint
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tables := s.tables.WithTx(tx)

		table, err := tables.ReadForUpdate(ctx, tableID)
		if errors.Is(err, repository.ErrTableNotFound) {
			return tableNotFound(tableID)
		}
		if err != nil {
			return err
		}
		if err := validators.ValidateUnseat(*table).Err(); err != nil {
			return err
		}

		occupant = *table.ReservationID
		if err := tables.Clear(ctx, table.ID); err != nil {
			return err
		}
		if err := s.reservations.WithTx(tx).UpdateStatus(ctx, occupant, models.StatusFinished); err != nil {
			return err
		}
		table.ReservationID = nil
		freed = *table
		return nil
	})
	if err != nil {
		countRejection(s.metrics, "finish", err)
		return nil, err
	}

	s.metrics.Finished()
	s.hub.Broadcast(floor.EventTableFinish, map[string]interface{}{
		"table":          freed,
		"reservation_id": occupant,
	})
	utils.InfoLogger.Infof("table %d freed, reservation %d finished", freed.ID, occupant)
	return &freed, nil
}
