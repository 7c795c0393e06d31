package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-reservations/floor"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/repository"
	"github.com/yeremiapane/restaurant-reservations/utils"
	"github.com/yeremiapane/restaurant-reservations/validators"
)

// ListFilter selects reservations. MobileNumber wins over Date; with neither
// every reservation is returned.
type ListFilter struct {
	Date         string
	MobileNumber string
}

type ReservationService struct {
	db           *gorm.DB
	reservations *repository.ReservationRepository
	tables       *repository.TableRepository
	validator    *validators.ReservationValidator
	hub          Broadcaster
	metrics      Recorder
}

func NewReservationService(db *gorm.DB, validator *validators.ReservationValidator, hub Broadcaster, rec Recorder) *ReservationService {
	hub, rec = orNoop(hub, rec)
	return &ReservationService{
		db:           db,
		reservations: repository.NewReservationRepository(db),
		tables:       repository.NewTableRepository(db),
		validator:    validator,
		hub:          hub,
		metrics:      rec,
	}
}

func reservationNotFound(id uint) error {
	return utils.NotFound(fmt.Sprintf("Reservation number %d does not exist", id))
}

func (s *ReservationService) List(ctx context.Context, filter ListFilter) ([]models.Reservation, error) {
	var (
		reservations []models.Reservation
		err          error
	)
	switch {
	case filter.MobileNumber != "":
		reservations, err = s.reservations.Search(ctx, filter.MobileNumber)
	case filter.Date != "":
		reservations, err = s.reservations.ListByDate(ctx, filter.Date)
	default:
		reservations, err = s.reservations.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	if reservations == nil {
		reservations = []models.Reservation{}
	}
	return reservations, nil
}

func (s *ReservationService) Get(ctx context.Context, id uint) (*models.Reservation, error) {
	reservation, err := s.reservations.Read(ctx, id)
	if errors.Is(err, repository.ErrReservationNotFound) {
		return nil, reservationNotFound(id)
	}
	return reservation, err
}

func (s *ReservationService) Create(ctx context.Context, in validators.ReservationInput) (*models.Reservation, error) {
	if err := s.validator.ValidateCreate(in).Err(); err != nil {
		countRejection(s.metrics, "create", err)
		return nil, err
	}

	reservation := &models.Reservation{Status: models.StatusBooked}
	apply(reservation, in)
	if err := s.reservations.Create(ctx, reservation); err != nil {
		return nil, err
	}

	s.metrics.ReservationCreated()
	s.hub.Broadcast(floor.EventReservationCreate, reservation)
	utils.InfoLogger.Infof("reservation %d booked for %s %s (%d people)",
		reservation.ID, reservation.ReservationDate, reservation.ReservationTime, reservation.People)
	return reservation, nil
}

// Update replaces every editable field of a reservation.
func (s *ReservationService) Update(ctx context.Context, id uint, in validators.ReservationInput) (*models.Reservation, error) {
	var updated *models.Reservation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reservations := s.reservations.WithTx(tx)
		existing, err := reservations.Read(ctx, id)
		if errors.Is(err, repository.ErrReservationNotFound) {
			return reservationNotFound(id)
		}
		if err != nil {
			return err
		}
		if err := s.validator.ValidateUpdate(in, *existing).Err(); err != nil {
			return err
		}
		if existing.Status == models.StatusSeated {
			if err := s.checkSeatedCapacity(ctx, tx, *existing, in.People.Value); err != nil {
				return err
			}
		}

		apply(existing, in)
		if in.Status != "" {
			existing.Status = in.Status
		}
		if err := reservations.Update(ctx, existing); err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		countRejection(s.metrics, "update", err)
		return nil, err
	}

	s.hub.Broadcast(floor.EventReservationUpdate, updated)
	return updated, nil
}

// UpdateStatus moves a reservation to status. Finishing or cancelling a
// reservation also frees any table it occupies.
func (s *ReservationService) UpdateStatus(ctx context.Context, id uint, status string) (*models.Reservation, error) {
	var updated *models.Reservation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reservations := s.reservations.WithTx(tx)
		existing, err := reservations.Read(ctx, id)
		if errors.Is(err, repository.ErrReservationNotFound) {
			return reservationNotFound(id)
		}
		if err != nil {
			return err
		}
		change := validators.StatusChange{To: status, Existing: *existing}
		if err := s.validator.ValidateStatus(change).Err(); err != nil {
			return err
		}

		if status == models.StatusFinished || status == models.StatusCancelled {
			if err := s.tables.WithTx(tx).ClearReservation(ctx, id); err != nil {
				return err
			}
		}
		if err := reservations.UpdateStatus(ctx, id, status); err != nil {
			return err
		}
		existing.Status = status
		updated = existing
		return nil
	})
	if err != nil {
		countRejection(s.metrics, "status", err)
		return nil, err
	}

	s.metrics.StatusChanged(status)
	s.hub.Broadcast(floor.EventReservationStatus, updated)
	return updated, nil
}

// Delete removes a reservation, freeing its table first.
func (s *ReservationService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.reservations.WithTx(tx).Read(ctx, id); err != nil {
			if errors.Is(err, repository.ErrReservationNotFound) {
				return reservationNotFound(id)
			}
			return err
		}
		if err := s.tables.WithTx(tx).ClearReservation(ctx, id); err != nil {
			return err
		}
		return s.reservations.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.hub.Broadcast(floor.EventReservationDelete, map[string]interface{}{"reservation_id": id})
	return nil
}

// checkSeatedCapacity keeps a seated party within the capacity of the table
// it occupies.
func (s *ReservationService) checkSeatedCapacity(ctx context.Context, tx *gorm.DB, existing models.Reservation, people int) error {
	table, err := s.tables.WithTx(tx).ReadByReservation(ctx, existing.ID)
	if errors.Is(err, repository.ErrTableNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	existing.People = people
	seat := validators.SeatContext{Table: *table, ReservationID: existing.ID, Reservation: &existing}
	return validators.ValidateCapacity(seat).Err()
}

func apply(r *models.Reservation, in validators.ReservationInput) {
	r.FirstName = in.FirstName
	r.LastName = in.LastName
	r.MobileNumber = in.MobileNumber
	r.ReservationDate = in.ReservationDate
	r.ReservationTime = in.ReservationTime
	r.People = in.People.Value
	r.Note = in.Note
}
