package router

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-reservations/config"
	"github.com/yeremiapane/restaurant-reservations/controllers"
	"github.com/yeremiapane/restaurant-reservations/floor"
	"github.com/yeremiapane/restaurant-reservations/metrics"
	"github.com/yeremiapane/restaurant-reservations/middlewares"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/services"
	"github.com/yeremiapane/restaurant-reservations/utils"
	"github.com/yeremiapane/restaurant-reservations/validators"
)

// Deps is everything the HTTP layer needs. Metrics and Hub may be nil.
type Deps struct {
	DB        *gorm.DB
	Config    *config.Config
	Validator *validators.ReservationValidator
	Hub       *floor.Hub
	Metrics   *metrics.Metrics
}

func SetupRouter(deps Deps) (*gin.Engine, error) {
	cfg := deps.Config
	if err := controllers.RegisterValidations(); err != nil {
		return nil, err
	}
	if deps.Hub == nil {
		deps.Hub = floor.NewHub()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.LoggerMiddleware())
	if deps.Metrics != nil {
		r.Use(middlewares.Metrics(deps.Metrics))
	}
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(cfg.CORSOrigins))
	if cfg.RateLimitRPS > 0 {
		r.Use(middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).RateLimit())
	}

	var recorder services.Recorder
	if deps.Metrics != nil {
		recorder = deps.Metrics
	}
	reservationService := services.NewReservationService(deps.DB, deps.Validator, deps.Hub, recorder)
	tableService := services.NewTableService(deps.DB, deps.Hub, recorder)

	reservationController := controllers.NewReservationController(reservationService)
	tableController := controllers.NewTableController(tableService)
	floorController := controllers.NewFloorController(deps.Hub, cfg.CORSOrigins)

	r.GET("/ping", func(c *gin.Context) {
		utils.RespondJSON(c, http.StatusOK, "pong")
	})
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	staff := r.Group("/")
	if cfg.AuthEnabled {
		secret := []byte(cfg.JWTSecret)
		userController := controllers.NewUserController(deps.DB, secret)
		auth := middlewares.AuthMiddleware(secret)

		r.POST("/login", userController.Login)
		r.GET("/profile", auth, userController.GetProfile)
		r.POST("/register", auth, middlewares.RequireRole(models.RoleAdmin), userController.Register)

		staff.Use(auth, middlewares.RequireRole(models.RoleAdmin, models.RoleHost))
	}

	staff.GET("/ws", floorController.FloorHandler)

	reservations := staff.Group("/reservations")
	{
		reservations.GET("", reservationController.ListReservations)
		reservations.POST("", reservationController.CreateReservation)
		reservations.GET("/export", reservationController.ExportReservations)
		reservations.GET("/:reservation_id", reservationController.GetReservation)
		reservations.PUT("/:reservation_id", reservationController.UpdateReservation)
		reservations.PUT("/:reservation_id/status", reservationController.UpdateStatus)
		reservations.DELETE("/:reservation_id", reservationController.DeleteReservation)
	}

	tables := staff.Group("/tables")
	{
		tables.GET("", tableController.GetAllTables)
		tables.POST("", tableController.CreateTable)
		tables.GET("/:table_id", tableController.GetTableByID)
		tables.PUT("/:table_id/seat", tableController.SeatTable)
		tables.DELETE("/:table_id/seat", tableController.FinishTable)
	}

	r.NoRoute(notFound(cfg.FrontendDir))
	return r, nil
}

// notFound serves the staff UI bundle for browser navigation when a
// frontend directory is configured, and a JSON 404 otherwise.
func notFound(frontendDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if frontendDir != "" && c.Request.Method == http.MethodGet && !strings.HasPrefix(c.Request.URL.Path, "/reservations") && !strings.HasPrefix(c.Request.URL.Path, "/tables") {
			clean := filepath.Clean("/" + c.Request.URL.Path)
			file := filepath.Join(frontendDir, clean)
			if info, err := os.Stat(file); err == nil && !info.IsDir() {
				c.File(file)
				return
			}
			c.File(filepath.Join(frontendDir, "index.html"))
			return
		}
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("Path not found: %s", c.Request.URL.Path))
	}
}
