package store

import (
	"context"
	"errors"
	"time"

	"github.com/carhubapp/carhub-server/internal/models"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a lookup matches no row, including the
// conditional refresh-token swap losing to a concurrent rotation.
var ErrNotFound = errors.New("record not found")

// AccountStore is the persistence boundary the auth core depends on.
type AccountStore interface {
	UserByLogin(ctx context.Context, login string) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	RoleByName(ctx context.Context, name string) (*models.Role, error)

	// SetRefreshToken overwrites the account's stored refresh token.
	SetRefreshToken(ctx context.Context, userID uuid.UUID, token string) error

	// RotateRefreshToken atomically replaces oldToken with newToken and
	// returns the owning account with its current role. It must behave as a
	// compare-and-swap: if the stored value no longer equals oldToken, it
	// returns ErrNotFound and stores nothing.
	RotateRefreshToken(ctx context.Context, oldToken, newToken string) (*models.User, error)

	// ClearRefreshToken removes the stored token. Clearing a token that is
	// not stored anywhere is a no-op.
	ClearRefreshToken(ctx context.Context, token string) error
}

// MaintenanceStore persists maintenance windows.
type MaintenanceStore interface {
	CreateWindow(ctx context.Context, start, end time.Time) error
	WindowActiveAt(ctx context.Context, t time.Time) (bool, error)
}
