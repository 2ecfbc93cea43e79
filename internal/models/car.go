package models

import "time"

type Brand struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null;uniqueIndex" json:"name"`
}

type CarModel struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	BrandID uint   `gorm:"not null;index" json:"brand_id"`
	Name    string `gorm:"size:100;not null" json:"name"`
}

type CarColor struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;not null;uniqueIndex" json:"name"`
}

type Car struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BrandID   uint      `gorm:"not null" json:"-"`
	Brand     Brand     `gorm:"foreignKey:BrandID" json:"brand"`
	ModelID   uint      `gorm:"not null" json:"-"`
	Model     CarModel  `gorm:"foreignKey:ModelID" json:"model"`
	ColorID   uint      `gorm:"not null" json:"-"`
	Color     CarColor  `gorm:"foreignKey:ColorID" json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
