package services

import (
	"time"

	"github.com/carhubapp/carhub-server/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Permission claim names embedded in access tokens. These are the wire
// format; renaming one invalidates every token already issued.
const (
	ClaimCanCreate      = "CanCreate"
	ClaimCanRead        = "CanRead"
	ClaimCanUpdate      = "CanUpdate"
	ClaimCanDelete      = "CanDelete"
	ClaimCanManageUsers = "CanManageUsers"
)

// BuildClaims maps an account's role onto the fixed claim schema: one
// boolean claim per permission, the account id as subject, a fresh jti and
// the current UTC time as iat. The claims are a snapshot; later role changes
// do not affect tokens already issued.
func BuildClaims(user *models.User) jwt.MapClaims {
	return jwt.MapClaims{
		"jti":               uuid.NewString(),
		"iat":               time.Now().UTC().Unix(),
		"sub":               user.ID.String(),
		ClaimCanCreate:      user.Role.CanCreate,
		ClaimCanRead:        user.Role.CanRead,
		ClaimCanUpdate:      user.Role.CanUpdate,
		ClaimCanDelete:      user.Role.CanDelete,
		ClaimCanManageUsers: user.Role.CanManageUsers,
	}
}

// HasPermission evaluates a named permission claim, treating a missing or
// non-boolean claim as denied.
func HasPermission(claims jwt.MapClaims, name string) bool {
	allowed, _ := claims[name].(bool)
	return allowed
}
