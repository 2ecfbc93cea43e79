package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/carhubapp/carhub-server/internal/models"
	"gorm.io/gorm"
)

var ErrCarNotFound = errors.New("car not found")

type CarService struct {
	db *gorm.DB
}

func NewCarService(db *gorm.DB) *CarService {
	return &CarService{db: db}
}

func (s *CarService) List(ctx context.Context) ([]models.Car, error) {
	var cars []models.Car
	err := s.db.WithContext(ctx).
		Preload("Brand").Preload("Model").Preload("Color").
		Order("id").Find(&cars).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cars: %w", err)
	}
	return cars, nil
}

func (s *CarService) Create(ctx context.Context, brandID, modelID, colorID uint) (*models.Car, error) {
	car := models.Car{BrandID: brandID, ModelID: modelID, ColorID: colorID}
	if err := s.db.WithContext(ctx).Create(&car).Error; err != nil {
		return nil, fmt.Errorf("failed to create car: %w", err)
	}
	return s.byID(ctx, car.ID)
}

func (s *CarService) Update(ctx context.Context, id, brandID, modelID, colorID uint) (*models.Car, error) {
	res := s.db.WithContext(ctx).Model(&models.Car{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"brand_id": brandID,
			"model_id": modelID,
			"color_id": colorID,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update car: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrCarNotFound
	}
	return s.byID(ctx, id)
}

func (s *CarService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Car{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete car: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrCarNotFound
	}
	return nil
}

// Properties returns the lookup tables used to compose a car.
func (s *CarService) Properties(ctx context.Context) ([]models.Brand, []models.CarModel, []models.CarColor, error) {
	var brands []models.Brand
	var carModels []models.CarModel
	var colors []models.CarColor

	db := s.db.WithContext(ctx)
	if err := db.Order("id").Find(&brands).Error; err != nil {
		return nil, nil, nil, fmt.Errorf("failed to list brands: %w", err)
	}
	if err := db.Order("id").Find(&carModels).Error; err != nil {
		return nil, nil, nil, fmt.Errorf("failed to list models: %w", err)
	}
	if err := db.Order("id").Find(&colors).Error; err != nil {
		return nil, nil, nil, fmt.Errorf("failed to list colors: %w", err)
	}
	return brands, carModels, colors, nil
}

func (s *CarService) byID(ctx context.Context, id uint) (*models.Car, error) {
	var car models.Car
	err := s.db.WithContext(ctx).
		Preload("Brand").Preload("Model").Preload("Color").
		First(&car, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCarNotFound
	}
	if err != nil {
		return nil, err
	}
	return &car, nil
}
