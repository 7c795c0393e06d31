package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-reservations/config"
	"github.com/yeremiapane/restaurant-reservations/database"
	"github.com/yeremiapane/restaurant-reservations/floor"
	"github.com/yeremiapane/restaurant-reservations/jobs"
	"github.com/yeremiapane/restaurant-reservations/metrics"
	"github.com/yeremiapane/restaurant-reservations/router"
	"github.com/yeremiapane/restaurant-reservations/utils"
	"github.com/yeremiapane/restaurant-reservations/validators"
)

func main() {
	utils.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Invalid configuration: %v", err)
	}
	if err := utils.SetLevel(cfg.LogLevel); err != nil {
		utils.ErrorLogger.Warnf("LOG_LEVEL: %v", err)
	}
	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	schedule, err := cfg.Schedule()
	if err != nil {
		utils.ErrorLogger.Fatalf("Invalid schedule: %v", err)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	admin := database.Admin{Email: cfg.AdminEmail, Password: cfg.AdminPassword}
	if err := database.Seed(ctx, db, admin); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed: %v", err)
	}

	hub := floor.NewHub()
	r, err := router.SetupRouter(router.Deps{
		DB:        db,
		Config:    cfg,
		Validator: validators.NewReservationValidator(schedule),
		Hub:       hub,
		Metrics:   metrics.New(),
	})
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to set up router: %v", err)
	}

	if cfg.FloorSummaryInterval > 0 {
		scheduler, err := jobs.NewFloorSummary(db, hub, schedule.Location).Start(cfg.FloorSummaryInterval)
		if err != nil {
			utils.ErrorLogger.Fatalf("Failed to schedule floor summary: %v", err)
		}
		defer scheduler.Shutdown()
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}
	go func() {
		utils.InfoLogger.Infof("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	<-ctx.Done()
	utils.InfoLogger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.ErrorLogger.Errorf("Forced shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
