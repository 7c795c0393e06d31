package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yeremiapane/restaurant-reservations/models"
)

var ErrReservationNotFound = errors.New("reservation not found")

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// WithTx returns a copy bound to the given transaction.
func (r *ReservationRepository) WithTx(tx *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: tx}
}

// List returns every reservation ordered by id.
func (r *ReservationRepository) List(ctx context.Context) ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := r.db.WithContext(ctx).Order("reservation_id").Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return reservations, nil
}

// ListByDate returns the reservations still active on date, ordered by time.
func (r *ReservationRepository) ListByDate(ctx context.Context, date string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.WithContext(ctx).
		Where("reservation_date = ?", date).
		Where("status NOT IN ?", []string{models.StatusFinished, models.StatusCancelled}).
		Order("reservation_time").
		Order("reservation_id").
		Find(&reservations).Error
	if err != nil {
		return nil, fmt.Errorf("list reservations on %s: %w", date, err)
	}
	return reservations, nil
}

// Search matches reservations whose phone number contains mobile.
func (r *ReservationRepository) Search(ctx context.Context, mobile string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	pattern := "%" + escapeLike(mobile) + "%"
	err := r.db.WithContext(ctx).
		Where("mobile_number LIKE ? ESCAPE '!'", pattern).
		Order("reservation_date").
		Order("reservation_time").
		Find(&reservations).Error
	if err != nil {
		return nil, fmt.Errorf("search reservations: %w", err)
	}
	return reservations, nil
}

func (r *ReservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	if reservation.Status == "" {
		reservation.Status = models.StatusBooked
	}
	if err := r.db.WithContext(ctx).Create(reservation).Error; err != nil {
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

func (r *ReservationRepository) Read(ctx context.Context, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).First(&reservation, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read reservation %d: %w", id, err)
	}
	return &reservation, nil
}

// ReadForUpdate reads a reservation and locks its row until the surrounding
// transaction ends.
func (r *ReservationRepository) ReadForUpdate(ctx context.Context, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&reservation, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock reservation %d: %w", id, err)
	}
	return &reservation, nil
}

// Update writes every field of reservation.
func (r *ReservationRepository) Update(ctx context.Context, reservation *models.Reservation) error {
	if err := r.db.WithContext(ctx).Save(reservation).Error; err != nil {
		return fmt.Errorf("update reservation %d: %w", reservation.ID, err)
	}
	return nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("reservation_id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("update reservation %d status: %w", id, res.Error)
	}
	return nil
}

func (r *ReservationRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Reservation{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete reservation %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}
