package services

import (
	"context"
	"sync"
	"time"

	"github.com/carhubapp/carhub-server/internal/models"
	"github.com/carhubapp/carhub-server/internal/store"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// fakeAccountStore is an in-memory AccountStore with the same contract as
// the SQL-backed one, including the compare-and-swap rotation.
type fakeAccountStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
	roles map[string]*models.Role
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{
		users: make(map[uuid.UUID]*models.User),
		roles: map[string]*models.Role{
			models.RoleAdmin: {
				ID:   1,
				Name: models.RoleAdmin,
				Permissions: models.Permissions{
					CanCreate:      true,
					CanRead:        true,
					CanUpdate:      true,
					CanDelete:      true,
					CanManageUsers: true,
				},
			},
			models.RoleDefault: {
				ID:          2,
				Name:        models.RoleDefault,
				Permissions: models.Permissions{CanRead: true},
			},
		},
	}
}

// seedUser inserts an account with a bcrypt-hashed password and returns it.
func (f *fakeAccountStore) seedUser(login, email, password, roleName string) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	role := f.roles[roleName]
	user := &models.User{
		ID:       uuid.New(),
		Login:    login,
		Email:    email,
		Password: string(hash),
		RoleID:   role.ID,
		Role:     *role,
	}
	f.mu.Lock()
	f.users[user.ID] = user
	f.mu.Unlock()
	return user
}

func (f *fakeAccountStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}

func (f *fakeAccountStore) UserByLogin(_ context.Context, login string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Login == login {
			copied := *u
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeAccountStore) UserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeAccountStore) UserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeAccountStore) CreateUser(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeAccountStore) RoleByName(_ context.Context, name string) (*models.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if role, ok := f.roles[name]; ok {
		copied := *role
		return &copied, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeAccountStore) SetRefreshToken(_ context.Context, userID uuid.UUID, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	u.RefreshToken = &token
	return nil
}

func (f *fakeAccountStore) RotateRefreshToken(_ context.Context, oldToken, newToken string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.RefreshToken != nil && *u.RefreshToken == oldToken {
			u.RefreshToken = &newToken
			copied := *u
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeAccountStore) ClearRefreshToken(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.RefreshToken != nil && *u.RefreshToken == token {
			u.RefreshToken = nil
		}
	}
	return nil
}

// fakeMaintenanceStore records windows in memory.
type fakeMaintenanceStore struct {
	mu      sync.Mutex
	windows []struct{ start, end time.Time }
}

func (f *fakeMaintenanceStore) CreateWindow(_ context.Context, start, end time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.windows = append(f.windows, struct{ start, end time.Time }{start, end})
	return nil
}

func (f *fakeMaintenanceStore) WindowActiveAt(_ context.Context, t time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range f.windows {
		if w.start.Before(t) && w.end.After(t) {
			return true, nil
		}
	}
	return false, nil
}
