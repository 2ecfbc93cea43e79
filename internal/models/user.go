package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that can sign in locally or via Google.
// RefreshToken holds the single currently-valid session-renewal credential;
// nil means the account has no active session to renew.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Login        string    `gorm:"size:100;not null;uniqueIndex" json:"login"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password     string    `gorm:"not null" json:"-"`
	RoleID       uint      `gorm:"not null" json:"-"`
	Role         Role      `gorm:"foreignKey:RoleID" json:"role"`
	RefreshToken *string   `gorm:"size:64;uniqueIndex" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
