package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeremiapane/restaurant-reservations/utils"
	"github.com/yeremiapane/restaurant-reservations/validators"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string

	DBDriver string
	DBDSN    string

	Timezone    string
	OpeningTime string
	LastSeating string
	ClosingTime string
	ClosedDays  string

	AuthEnabled   bool
	JWTSecret     string
	AdminEmail    string
	AdminPassword string

	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int

	FrontendDir          string
	ShutdownTimeout      time.Duration
	FloorSummaryInterval time.Duration
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Debug("no .env file loaded")
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBDSN:         getEnv("DB_DSN", "reservations.db"),
		Timezone:      getEnv("RESTAURANT_TIMEZONE", "Local"),
		OpeningTime:   getEnv("OPENING_TIME", "10:30"),
		LastSeating:   getEnv("LAST_SEATING", "21:30"),
		ClosingTime:   getEnv("CLOSING_TIME", "22:30"),
		ClosedDays:    getEnv("CLOSED_DAYS", "tuesday"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "*")),
		FrontendDir:   os.Getenv("FRONTEND_DIR"),
	}

	var err error
	if cfg.AuthEnabled, err = strconv.ParseBool(getEnv("AUTH_ENABLED", "false")); err != nil {
		return nil, fmt.Errorf("AUTH_ENABLED: %w", err)
	}
	if cfg.RateLimitRPS, err = strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "20"), 64); err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_RPS: %w", err)
	}
	if cfg.RateLimitBurst, err = strconv.Atoi(getEnv("RATE_LIMIT_BURST", "40")); err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_BURST: %w", err)
	}
	if cfg.ShutdownTimeout, err = time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s")); err != nil {
		return nil, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}
	if cfg.FloorSummaryInterval, err = time.ParseDuration(getEnv("FLOOR_SUMMARY_INTERVAL", "1m")); err != nil {
		return nil, fmt.Errorf("FLOOR_SUMMARY_INTERVAL: %w", err)
	}

	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "mysql" {
		return nil, fmt.Errorf("DB_DRIVER must be sqlite or mysql, got %q", cfg.DBDriver)
	}
	if cfg.AuthEnabled && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required when AUTH_ENABLED is true")
	}
	if _, err := cfg.Schedule(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Schedule builds the opening hours the reservation rules check against.
func (c *Config) Schedule() (validators.Schedule, error) {
	schedule := validators.DefaultSchedule()

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return schedule, fmt.Errorf("RESTAURANT_TIMEZONE: %w", err)
	}
	schedule.Location = loc

	if schedule.Opens, err = validators.ParseClock(c.OpeningTime); err != nil {
		return schedule, fmt.Errorf("OPENING_TIME: %w", err)
	}
	if schedule.LastSeating, err = validators.ParseClock(c.LastSeating); err != nil {
		return schedule, fmt.Errorf("LAST_SEATING: %w", err)
	}
	if schedule.Closes, err = validators.ParseClock(c.ClosingTime); err != nil {
		return schedule, fmt.Errorf("CLOSING_TIME: %w", err)
	}
	if schedule.ClosedDays, err = validators.ParseWeekdays(c.ClosedDays); err != nil {
		return schedule, fmt.Errorf("CLOSED_DAYS: %w", err)
	}
	return schedule, nil
}

// InitDB opens the configured database.
func InitDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "mysql":
		dialector = mysql.Open(cfg.DBDSN)
	default:
		dialector = sqlite.Open(cfg.DBDSN)
	}

	level := logger.Warn
	if cfg.GinMode == "release" {
		level = logger.Error
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(level)})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DBDriver, err)
	}

	if cfg.DBDriver == "sqlite" {
		// sqlite serialises writers; one connection avoids "database is locked".
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, err
		}
	}

	utils.InfoLogger.Infof("connected to %s database", cfg.DBDriver)
	return db, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
