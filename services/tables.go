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

type TableService struct {
	db           *gorm.DB
	tables       *repository.TableRepository
	reservations *repository.ReservationRepository
	hub          Broadcaster
	metrics      Recorder
}

func NewTableService(db *gorm.DB, hub Broadcaster, rec Recorder) *TableService {
	hub, rec = orNoop(hub, rec)
	return &TableService{
		db:           db,
		tables:       repository.NewTableRepository(db),
		reservations: repository.NewReservationRepository(db),
		hub:          hub,
		metrics:      rec,
	}
}

func tableNotFound(id uint) error {
	return utils.NotFound(fmt.Sprintf("table number %d does not exist", id))
}

func (s *TableService) List(ctx context.Context) ([]models.Table, error) {
	tables, err := s.tables.List(ctx)
	if err != nil {
		return nil, err
	}
	if tables == nil {
		tables = []models.Table{}
	}
	return tables, nil
}

func (s *TableService) Get(ctx context.Context, id uint) (*models.Table, error) {
	table, err := s.tables.Read(ctx, id)
	if errors.Is(err, repository.ErrTableNotFound) {
		return nil, tableNotFound(id)
	}
	return table, err
}

func (s *TableService) Create(ctx context.Context, in validators.TableInput) (*models.Table, error) {
	if err := validators.ValidateTable(in).Err(); err != nil {
		countRejection(s.metrics, "create_table", err)
		return nil, err
	}

	table := &models.Table{TableName: in.TableName, Capacity: in.Capacity.Value}
	if err := s.tables.Create(ctx, table); err != nil {
		return nil, err
	}

	s.hub.Broadcast(floor.EventTableCreate, table)
	utils.InfoLogger.Infof("table %d created: %s (capacity=%d)", table.ID, table.TableName, table.Capacity)
	return table, nil
}
