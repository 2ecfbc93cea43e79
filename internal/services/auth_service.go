package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/carhubapp/carhub-server/internal/config"
	"github.com/carhubapp/carhub-server/internal/models"
	"github.com/carhubapp/carhub-server/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TokenPair is one access/refresh issuance. The refresh token is already
// stored on the account by the time a pair is returned.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthService struct {
	store store.AccountStore
	cfg   *config.Config
}

func NewAuthService(st store.AccountStore, cfg *config.Config) *AuthService {
	return &AuthService{store: st, cfg: cfg}
}

// Login verifies local credentials and issues a token pair. Both an unknown
// login and a wrong password surface as ErrCredentialsInvalid.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenPair, *models.User, error) {
	user, err := s.store.UserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrCredentialsInvalid
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, ErrCredentialsInvalid
	}

	pair, err := s.IssuePair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// Register creates an account with the default role and signs it in.
func (s *AuthService) Register(ctx context.Context, login, email, password string) (*TokenPair, *models.User, error) {
	if login == "" || email == "" || len(password) < 8 {
		return nil, nil, ErrRegistrationInvalid
	}

	role, err := s.store.RoleByName(ctx, models.RoleDefault)
	if err != nil {
		return nil, nil, fmt.Errorf("default role lookup failed: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Login:    login,
		Email:    email,
		Password: string(hash),
		RoleID:   role.ID,
		Role:     *role,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, nil, err
	}

	pair, err := s.IssuePair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// IssuePair builds claims from the account's role, signs an access token and
// stores a fresh refresh token on the account, overwriting any previous one.
func (s *AuthService) IssuePair(ctx context.Context, user *models.User) (*TokenPair, error) {
	accessToken, err := s.IssueAccessToken(BuildClaims(user))
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.IssueRefreshToken()
	if err != nil {
		return nil, err
	}

	if err := s.store.SetRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Rotate consumes oldRefresh and issues a new pair. The swap is a
// compare-and-swap at the store: a stale, revoked or concurrently rotated
// token fails with ErrTokenInvalid. Claims are rebuilt from the account's
// current role, so a rotated token picks up role changes made since login.
func (s *AuthService) Rotate(ctx context.Context, oldRefresh string) (*TokenPair, *models.User, error) {
	newRefresh, err := s.IssueRefreshToken()
	if err != nil {
		return nil, nil, err
	}

	user, err := s.store.RotateRefreshToken(ctx, oldRefresh, newRefresh)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrTokenInvalid
		}
		return nil, nil, err
	}

	accessToken, err := s.IssueAccessToken(BuildClaims(user))
	if err != nil {
		return nil, nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: newRefresh}, user, nil
}

// Revoke clears the stored refresh token. Revoking a token that is unknown
// or already cleared is a no-op, so logout is idempotent.
func (s *AuthService) Revoke(ctx context.Context, refreshToken string) error {
	return s.store.ClearRefreshToken(ctx, refreshToken)
}

// RoleNameBySubject resolves the subject claim to the account's current role
// name. Deliberately a live lookup rather than a claim read, so a role change
// shows up before the access token naturally expires.
func (s *AuthService) RoleNameBySubject(ctx context.Context, claims jwt.MapClaims) (string, error) {
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return "", ErrTokenInvalid
	}

	user, err := s.store.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrTokenInvalid
		}
		return "", err
	}
	return user.Role.Name, nil
}

// IssueAccessToken signs the claim set with the configured symmetric key,
// fixed issuer and audience, and the configured expiry (99 minutes).
func (s *AuthService) IssueAccessToken(claims jwt.MapClaims) (string, error) {
	claims["iss"] = s.cfg.JWTIssuer
	claims["aud"] = s.cfg.JWTAudience
	claims["exp"] = time.Now().UTC().Add(s.cfg.JWTAccessExpiry).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// IssueRefreshToken returns 32 cryptographically random bytes, base64
// encoded. The value is meaningless until stored on an account.
func (s *AuthService) IssueRefreshToken() (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.URLEncoding.EncodeToString(rawBytes), nil
}

// ParseAccessToken validates signature, expiry, issuer and audience and
// returns the decoded claims. Expiry and bad signatures are distinguished so
// the transport layer can signal "refresh me" to the client.
func (s *AuthService) ParseAccessToken(tokenStr string) (jwt.MapClaims, error) {
	if tokenStr == "" {
		return nil, ErrTokenMissing
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(s.cfg.JWTIssuer),
		jwt.WithAudience(s.cfg.JWTAudience),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenInvalidSignature
		default:
			return nil, ErrTokenInvalid
		}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
