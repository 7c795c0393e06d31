package database

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/repository"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

// DefaultTables are created on an empty floor.
var DefaultTables = []models.Table{
	{TableName: "Bar #1", Capacity: 1},
	{TableName: "Bar #2", Capacity: 1},
	{TableName: "#1", Capacity: 6},
	{TableName: "#2", Capacity: 6},
}

// Admin is the staff account seeded on start, if any.
type Admin struct {
	Email    string
	Password string
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Reservation{},
		&models.Table{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	utils.InfoLogger.Info("AutoMigrate completed.")
	return nil
}

// Seed fills an empty floor with DefaultTables and makes sure admin exists.
// It is safe to run on every start.
func Seed(ctx context.Context, db *gorm.DB, admin Admin) error {
	tables := repository.NewTableRepository(db)
	count, err := tables.Count(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		for _, t := range DefaultTables {
			table := t
			if err := tables.Create(ctx, &table); err != nil {
				return fmt.Errorf("seed table %s: %w", table.TableName, err)
			}
		}
		utils.InfoLogger.Infof("seeded %d tables", len(DefaultTables))
	}

	if admin.Email == "" || admin.Password == "" {
		return nil
	}
	return seedAdmin(ctx, db, admin)
}

func seedAdmin(ctx context.Context, db *gorm.DB, admin Admin) error {
	var existing models.User
	err := db.WithContext(ctx).Where("email = ?", admin.Email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := models.User{
		Name:     "Administrator",
		Email:    admin.Email,
		Password: string(hash),
		Role:     models.RoleAdmin,
	}
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	utils.InfoLogger.Infof("seeded admin account %s", admin.Email)
	return nil
}
