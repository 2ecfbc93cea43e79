package models

import "time"

// MaintenanceWindow is an interval during which mutating requests are
// rejected. Windows are append-only; history accumulates.
type MaintenanceWindow struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Start     time.Time `gorm:"not null;index" json:"start"`
	End       time.Time `gorm:"not null;index" json:"end"`
	CreatedAt time.Time `json:"created_at"`
}
