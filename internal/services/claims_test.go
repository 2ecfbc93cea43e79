package services

import (
	"testing"

	"github.com/carhubapp/carhub-server/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestBuildClaimsReflectsRolePermissions(t *testing.T) {
	user := &models.User{
		ID: uuid.New(),
		Role: models.Role{
			Name: models.RoleAdmin,
			Permissions: models.Permissions{
				CanCreate:      true,
				CanRead:        true,
				CanManageUsers: true,
			},
		},
	}

	claims := BuildClaims(user)

	require.Equal(t, user.ID.String(), claims["sub"])
	require.NotEmpty(t, claims["jti"])
	require.NotZero(t, claims["iat"])
	require.Equal(t, true, claims[ClaimCanCreate])
	require.Equal(t, true, claims[ClaimCanRead])
	require.Equal(t, false, claims[ClaimCanUpdate])
	require.Equal(t, false, claims[ClaimCanDelete])
	require.Equal(t, true, claims[ClaimCanManageUsers])
}

func TestBuildClaimsIssuesFreshTokenID(t *testing.T) {
	user := &models.User{ID: uuid.New()}

	first := BuildClaims(user)
	second := BuildClaims(user)

	require.NotEqual(t, first["jti"], second["jti"])
}

func TestHasPermissionFailsClosed(t *testing.T) {
	claims := jwt.MapClaims{
		ClaimCanRead:   true,
		ClaimCanCreate: false,
		ClaimCanUpdate: "true", // wrong type, must be denied
	}

	require.True(t, HasPermission(claims, ClaimCanRead))
	require.False(t, HasPermission(claims, ClaimCanCreate))
	require.False(t, HasPermission(claims, ClaimCanUpdate))
	require.False(t, HasPermission(claims, ClaimCanManageUsers))
	require.False(t, HasPermission(nil, ClaimCanRead))
}
