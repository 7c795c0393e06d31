package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yeremiapane/restaurant-reservations/models"
)

var ErrTableNotFound = errors.New("table not found")

type TableRepository struct {
	db *gorm.DB
}

func NewTableRepository(db *gorm.DB) *TableRepository {
	return &TableRepository{db: db}
}

func (r *TableRepository) WithTx(tx *gorm.DB) *TableRepository {
	return &TableRepository{db: tx}
}

// List returns every table ordered by name.
func (r *TableRepository) List(ctx context.Context) ([]models.Table, error) {
	var tables []models.Table
	if err := r.db.WithContext(ctx).Order("table_name").Find(&tables).Error; err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return tables, nil
}

func (r *TableRepository) Create(ctx context.Context, table *models.Table) error {
	if err := r.db.WithContext(ctx).Create(table).Error; err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	return nil
}

func (r *TableRepository) Read(ctx context.Context, id uint) (*models.Table, error) {
	var table models.Table
	err := r.db.WithContext(ctx).First(&table, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTableNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read table %d: %w", id, err)
	}
	return &table, nil
}

// ReadForUpdate reads a table and locks its row until the surrounding
// transaction ends. Drivers without row locks ignore the clause.
func (r *TableRepository) ReadForUpdate(ctx context.Context, id uint) (*models.Table, error) {
	var table models.Table
	err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&table, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTableNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock table %d: %w", id, err)
	}
	return &table, nil
}

// Seat records reservationID as the table's occupant.
func (r *TableRepository) Seat(ctx context.Context, id, reservationID uint) error {
	return r.setOccupant(ctx, id, &reservationID)
}

// Clear removes the table's occupant.
func (r *TableRepository) Clear(ctx context.Context, id uint) error {
	return r.setOccupant(ctx, id, nil)
}

// ReadByReservation returns the table reservationID is seated at, locked
// until the surrounding transaction ends.
func (r *TableRepository) ReadByReservation(ctx context.Context, reservationID uint) (*models.Table, error) {
	var table models.Table
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("reservation_id = ?", reservationID).
		First(&table).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTableNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read table of reservation %d: %w", reservationID, err)
	}
	return &table, nil
}

// ClearReservation frees any table the reservation is seated at.
func (r *TableRepository) ClearReservation(ctx context.Context, reservationID uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.Table{}).
		Where("reservation_id = ?", reservationID).
		Update("reservation_id", nil).Error
	if err != nil {
		return fmt.Errorf("free tables of reservation %d: %w", reservationID, err)
	}
	return nil
}

// Count returns the number of tables.
func (r *TableRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Table{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count tables: %w", err)
	}
	return n, nil
}

func (r *TableRepository) setOccupant(ctx context.Context, id uint, reservationID *uint) error {
	res := r.db.WithContext(ctx).
		Model(&models.Table{}).
		Where("table_id = ?", id).
		Update("reservation_id", reservationID)
	if res.Error != nil {
		return fmt.Errorf("update table %d occupant: %w", id, res.Error)
	}
	return nil
}
