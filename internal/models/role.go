package models

// Role names used by the seeder. The default role is assigned on registration
// and on first federated sign-in.
const (
	RoleAdmin   = "Admin"
	RoleDefault = "User"
)

// Permissions is the fixed permission set carried by a role. Each flag maps
// one-to-one onto a boolean access-token claim.
type Permissions struct {
	CanCreate      bool `gorm:"not null;default:false" json:"can_create"`
	CanRead        bool `gorm:"not null;default:false" json:"can_read"`
	CanUpdate      bool `gorm:"not null;default:false" json:"can_update"`
	CanDelete      bool `gorm:"not null;default:false" json:"can_delete"`
	CanManageUsers bool `gorm:"not null;default:false" json:"can_manage_users"`
}

type Role struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:50;not null;uniqueIndex" json:"name"`
	Permissions `gorm:"embedded"`
}
