package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carhubapp/carhub-server/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStore implements AccountStore and MaintenanceStore on PostgreSQL.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) UserByLogin(ctx context.Context, login string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Preload("Role").First(&user, "login = ?", login).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Preload("Role").First(&user, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStore) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Preload("Role").First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *GormStore) RoleByName(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	if err := s.db.WithContext(ctx).First(&role, "name = ?", name).Error; err != nil {
		return nil, translate(err)
	}
	return &role, nil
}

func (s *GormStore) SetRefreshToken(ctx context.Context, userID uuid.UUID, token string) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("refresh_token", token)
	if res.Error != nil {
		return fmt.Errorf("failed to store refresh token: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RotateRefreshToken swaps the stored token in a single conditional UPDATE so
// that of two concurrent rotations with the same old token at most one can
// succeed; the loser sees zero affected rows.
func (s *GormStore) RotateRefreshToken(ctx context.Context, oldToken, newToken string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Preload("Role").First(&user, "refresh_token = ?", oldToken).Error; err != nil {
		return nil, translate(err)
	}

	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND refresh_token = ?", user.ID, oldToken).
		Update("refresh_token", newToken)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	user.RefreshToken = &newToken
	return &user, nil
}

func (s *GormStore) ClearRefreshToken(ctx context.Context, token string) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("refresh_token = ?", token).
		Update("refresh_token", nil)
	if res.Error != nil {
		return fmt.Errorf("failed to clear refresh token: %w", res.Error)
	}
	return nil
}

func (s *GormStore) CreateWindow(ctx context.Context, start, end time.Time) error {
	window := models.MaintenanceWindow{Start: start, End: end}
	if err := s.db.WithContext(ctx).Create(&window).Error; err != nil {
		return fmt.Errorf("failed to create maintenance window: %w", err)
	}
	return nil
}

func (s *GormStore) WindowActiveAt(ctx context.Context, t time.Time) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.MaintenanceWindow{}).
		Where("start < ? AND \"end\" > ?", t, t).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to query maintenance windows: %w", err)
	}
	return count > 0, nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
