package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/carhubapp/carhub-server/internal/config"
	"github.com/carhubapp/carhub-server/internal/models"
	"github.com/carhubapp/carhub-server/internal/store"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// googleProfile is the subset of the Google userinfo response we rely on.
type googleProfile struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
}

// GoogleService exchanges an OAuth authorization code for a verified email
// and maps it to a local account, creating one on first sight.
type GoogleService struct {
	oauth       *oauth2.Config
	store       store.AccountStore
	timeout     time.Duration
	userInfoURL string
}

func NewGoogleService(cfg *config.Config, st store.AccountStore) *GoogleService {
	return &GoogleService{
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		},
		store:       st,
		timeout:     cfg.GoogleTimeout,
		userInfoURL: googleUserInfoURL,
	}
}

// ResolveFromCode resolves an authorization code to a local account. Any
// provider-side failure (exchange error, transport failure, timeout,
// unverified email) surfaces as ErrFederationUnverified and touches no
// account state.
func (s *GoogleService) ResolveFromCode(ctx context.Context, code string) (*models.User, error) {
	if code == "" {
		return nil, ErrFederationUnverified
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		slog.Error("google code exchange failed", "error", err)
		return nil, ErrFederationUnverified
	}

	profile, err := s.fetchProfile(ctx, token)
	if err != nil {
		slog.Error("google profile fetch failed", "error", err)
		return nil, ErrFederationUnverified
	}

	if !profile.VerifiedEmail || profile.Email == "" {
		return nil, ErrFederationUnverified
	}

	user, err := s.store.UserByEmail(ctx, profile.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	return s.createAccount(ctx, profile.Email)
}

func (s *GoogleService) fetchProfile(ctx context.Context, token *oauth2.Token) (*googleProfile, error) {
	client := s.oauth.Client(ctx, token)
	resp, err := client.Get(s.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned status %d", resp.StatusCode)
	}

	var profile googleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &profile, nil
}

// createAccount is the only implicit account-creation path: login is the
// local part of the email, the password is random and never disclosed, and
// the role is the default end-user role.
func (s *GoogleService) createAccount(ctx context.Context, email string) (*models.User, error) {
	role, err := s.store.RoleByName(ctx, models.RoleDefault)
	if err != nil {
		return nil, fmt.Errorf("default role lookup failed: %w", err)
	}

	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return nil, fmt.Errorf("failed to generate password: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(base64.URLEncoding.EncodeToString(rawBytes)), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Login:    strings.Split(email, "@")[0],
		Email:    email,
		Password: string(hash),
		RoleID:   role.ID,
		Role:     *role,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("created account from google profile", "login", user.Login)
	return user, nil
}
