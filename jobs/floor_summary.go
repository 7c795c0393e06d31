// Package jobs runs periodic background work with gocron.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-reservations/floor"
	"github.com/yeremiapane/restaurant-reservations/repository"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

// Broadcaster publishes change events to staff screens.
type Broadcaster interface {
	Broadcast(event string, data interface{})
}

// Summary is the at-a-glance state of the dining room for today.
type Summary struct {
	Date           string `json:"date"`
	TablesTotal    int    `json:"tables_total"`
	TablesOccupied int    `json:"tables_occupied"`
	SeatsFree      int    `json:"seats_free"`
	Reservations   int    `json:"reservations"`
	Covers         int    `json:"covers"`
}

// FloorSummary periodically pushes a Summary to connected staff screens.
type FloorSummary struct {
	tables       *repository.TableRepository
	reservations *repository.ReservationRepository
	hub          Broadcaster
	location     *time.Location
	Clock        func() time.Time
}

func NewFloorSummary(db *gorm.DB, hub Broadcaster, location *time.Location) *FloorSummary {
	if location == nil {
		location = time.Local
	}
	return &FloorSummary{
		tables:       repository.NewTableRepository(db),
		reservations: repository.NewReservationRepository(db),
		hub:          hub,
		location:     location,
		Clock:        time.Now,
	}
}

// Compute counts tables and today's open reservations. Finished and
// cancelled reservations are not included.
func (f *FloorSummary) Compute(ctx context.Context) (Summary, error) {
	summary := Summary{Date: f.Clock().In(f.location).Format("2006-01-02")}

	tables, err := f.tables.List(ctx)
	if err != nil {
		return summary, err
	}
	summary.TablesTotal = len(tables)
	for _, t := range tables {
		if t.Occupied() {
			summary.TablesOccupied++
		} else {
			summary.SeatsFree += t.Capacity
		}
	}

	reservations, err := f.reservations.ListByDate(ctx, summary.Date)
	if err != nil {
		return summary, err
	}
	summary.Reservations = len(reservations)
	for _, r := range reservations {
		summary.Covers += r.People
	}
	return summary, nil
}

// Publish computes and broadcasts one summary.
func (f *FloorSummary) Publish(ctx context.Context) {
	summary, err := f.Compute(ctx)
	if err != nil {
		utils.ErrorLogger.Errorf("floor summary: %v", err)
		return
	}
	f.hub.Broadcast(floor.EventFloorSummary, summary)
}

// Start schedules Publish every interval and returns the running scheduler.
// Callers stop it with Shutdown.
func (f *FloorSummary) Start(interval time.Duration) (gocron.Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("floor summary interval must be positive, got %s", interval)
	}
	s, err := gocron.NewScheduler(gocron.WithLocation(f.location))
	if err != nil {
		return nil, err
	}
	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			defer cancel()
			f.Publish(ctx)
		}),
		gocron.WithName("floor_summary"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, err
	}
	s.Start()
	utils.InfoLogger.Infof("floor summary scheduled every %s", interval)
	return s, nil
}
