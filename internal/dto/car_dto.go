package dto

import "github.com/carhubapp/carhub-server/internal/models"

type CarRequest struct {
	BrandID uint `json:"brandId"`
	ModelID uint `json:"modelId"`
	ColorID uint `json:"colorId"`
}

// CarPropertiesResponse carries the lookup tables the car editor needs.
type CarPropertiesResponse struct {
	Brands []models.Brand    `json:"brands"`
	Models []models.CarModel `json:"models"`
	Colors []models.CarColor `json:"colors"`
}
