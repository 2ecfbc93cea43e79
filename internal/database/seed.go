package database

import (
	"fmt"
	"log/slog"

	"github.com/carhubapp/carhub-server/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Seed creates the built-in roles, the bootstrap admin account and the car
// lookup tables. Safe to run on every start.
func Seed() error {
	adminRole := models.Role{
		Name: models.RoleAdmin,
		Permissions: models.Permissions{
			CanCreate:      true,
			CanRead:        true,
			CanUpdate:      true,
			CanDelete:      true,
			CanManageUsers: true,
		},
	}
	userRole := models.Role{
		Name:        models.RoleDefault,
		Permissions: models.Permissions{CanRead: true},
	}

	for _, role := range []*models.Role{&adminRole, &userRole} {
		if err := DB.Where("name = ?", role.Name).FirstOrCreate(role).Error; err != nil {
			return fmt.Errorf("failed to seed role %s: %w", role.Name, err)
		}
	}

	var count int64
	if err := DB.Model(&models.User{}).Where("login = ?", "admin").Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check admin account: %w", err)
	}
	if count == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		admin := models.User{
			Login:    "admin",
			Email:    "admin@carhub.local",
			Password: string(hash),
			RoleID:   adminRole.ID,
		}
		if err := DB.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to seed admin account: %w", err)
		}
		slog.Info("seeded admin account", "login", "admin")
	}

	return seedCarProperties()
}

func seedCarProperties() error {
	brands := map[string][]string{
		"Toyota": {"Corolla", "Camry", "RAV4"},
		"BMW":    {"3 Series", "5 Series", "X5"},
		"Lada":   {"Vesta", "Granta"},
	}
	for brandName, modelNames := range brands {
		brand := models.Brand{Name: brandName}
		if err := DB.Where("name = ?", brandName).FirstOrCreate(&brand).Error; err != nil {
			return fmt.Errorf("failed to seed brand %s: %w", brandName, err)
		}
		for _, modelName := range modelNames {
			carModel := models.CarModel{BrandID: brand.ID, Name: modelName}
			err := DB.Where("brand_id = ? AND name = ?", brand.ID, modelName).FirstOrCreate(&carModel).Error
			if err != nil {
				return fmt.Errorf("failed to seed model %s: %w", modelName, err)
			}
		}
	}

	for _, colorName := range []string{"Black", "White", "Silver", "Red", "Blue"} {
		color := models.CarColor{Name: colorName}
		if err := DB.Where("name = ?", colorName).FirstOrCreate(&color).Error; err != nil {
			return fmt.Errorf("failed to seed color %s: %w", colorName, err)
		}
	}
	return nil
}
