package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/carhubapp/carhub-server/internal/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// fakeGoogle stands in for both Google endpoints the service talks to.
func fakeGoogle(t *testing.T, exchangeStatus int, profileJSON string) (tokenURL, userInfoURL string) {
	t.Helper()

	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if exchangeStatus != http.StatusOK {
			w.WriteHeader(exchangeStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"test-access","token_type":"Bearer","expires_in":3600}`)
	}))
	t.Cleanup(tokenSrv.Close)

	userInfoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, profileJSON)
	}))
	t.Cleanup(userInfoSrv.Close)

	return tokenSrv.URL, userInfoSrv.URL
}

func newTestGoogleService(st *fakeAccountStore, tokenURL, userInfoURL string) *GoogleService {
	return &GoogleService{
		oauth: &oauth2.Config{
			ClientID:     "test-client",
			ClientSecret: "test-secret",
			Endpoint:     oauth2.Endpoint{TokenURL: tokenURL},
		},
		store:       st,
		timeout:     2 * time.Second,
		userInfoURL: userInfoURL,
	}
}

func TestResolveFromCodeEmptyCode(t *testing.T) {
	svc := newTestGoogleService(newFakeAccountStore(), "", "")

	_, err := svc.ResolveFromCode(context.Background(), "")
	require.ErrorIs(t, err, ErrFederationUnverified)
}

func TestResolveFromCodeExchangeFailure(t *testing.T) {
	st := newFakeAccountStore()
	tokenURL, userInfoURL := fakeGoogle(t, http.StatusInternalServerError, "")
	svc := newTestGoogleService(st, tokenURL, userInfoURL)

	_, err := svc.ResolveFromCode(context.Background(), "some-code")
	require.ErrorIs(t, err, ErrFederationUnverified)
	require.Zero(t, st.count())
}

func TestResolveFromCodeUnverifiedEmail(t *testing.T) {
	st := newFakeAccountStore()
	tokenURL, userInfoURL := fakeGoogle(t, http.StatusOK,
		`{"id":"g1","email":"shady@example.com","verified_email":false}`)
	svc := newTestGoogleService(st, tokenURL, userInfoURL)

	_, err := svc.ResolveFromCode(context.Background(), "some-code")
	require.ErrorIs(t, err, ErrFederationUnverified)

	// No account is created for an unverified profile.
	require.Zero(t, st.count())
}

func TestResolveFromCodeCreatesAccount(t *testing.T) {
	st := newFakeAccountStore()
	tokenURL, userInfoURL := fakeGoogle(t, http.StatusOK,
		`{"id":"g1","email":"newuser@example.com","verified_email":true}`)
	svc := newTestGoogleService(st, tokenURL, userInfoURL)

	user, err := svc.ResolveFromCode(context.Background(), "some-code")
	require.NoError(t, err)
	require.Equal(t, "newuser", user.Login)
	require.Equal(t, "newuser@example.com", user.Email)
	require.Equal(t, models.RoleDefault, user.Role.Name)
	require.NotEmpty(t, user.Password)
	require.Equal(t, 1, st.count())
}

func TestResolveFromCodeReturnsExistingAccount(t *testing.T) {
	st := newFakeAccountStore()
	existing := st.seedUser("alice", "alice@example.com", "password123", models.RoleAdmin)
	tokenURL, userInfoURL := fakeGoogle(t, http.StatusOK,
		`{"id":"g1","email":"alice@example.com","verified_email":true}`)
	svc := newTestGoogleService(st, tokenURL, userInfoURL)

	user, err := svc.ResolveFromCode(context.Background(), "some-code")
	require.NoError(t, err)
	require.Equal(t, existing.ID, user.ID)
	require.Equal(t, models.RoleAdmin, user.Role.Name)
	require.Equal(t, 1, st.count())
}
