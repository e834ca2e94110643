package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sentra-hq/sentra-cms/internal/user"
)

// mockRepo keys users by email; only the methods Login touches are wired.
type mockRepo struct {
	users map[string]*user.User
}

func (m *mockRepo) CreateUser(_ context.Context, u *user.User) error {
	u.ID = uuid.New()
	m.users[u.Email] = u
	return nil
}

func (m *mockRepo) GetUser(context.Context, uuid.UUID) (*user.User, error) {
	return nil, user.ErrNotFound
}

func (m *mockRepo) GetUserByEmail(_ context.Context, email string) (*user.User, error) {
	u, found := m.users[email]
	if !found {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (m *mockRepo) ListUsers(context.Context) ([]*user.User, error)  { return nil, nil }
func (m *mockRepo) UpdateUser(context.Context, *user.User) error     { return nil }
func (m *mockRepo) DeleteUser(context.Context, uuid.UUID) error      { return nil }

func newRepo(t *testing.T, users ...*user.User) *mockRepo {
	t.Helper()

	repo := &mockRepo{users: make(map[string]*user.User)}
	for _, u := range users {
		repo.users[u.Email] = u
	}
	return repo
}

func hashOf(t *testing.T, password string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestService_Login(t *testing.T) {
	active := &user.User{
		ID:           uuid.New(),
		Email:        "admin@sentra.dev",
		PasswordHash: hashOf(t, "hunter2"),
		Role:         user.RoleSuperAdmin,
		Active:       true,
	}
	inactive := &user.User{
		ID:           uuid.New(),
		Email:        "former@sentra.dev",
		PasswordHash: hashOf(t, "hunter2"),
		Role:         user.RoleTeam,
		Active:       false,
	}

	svc := user.NewService(newRepo(t, active, inactive), "test-secret", time.Hour)

	t.Run("Success", func(t *testing.T) {
		u, token, err := svc.Login(context.Background(), "admin@sentra.dev", "hunter2")
		require.NoError(t, err)
		assert.Equal(t, active.ID, u.ID)
		assert.NotEmpty(t, token)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, active.ID.String(), claims.UserID)
		assert.Equal(t, string(user.RoleSuperAdmin), claims.Role)
	})

	t.Run("AccountNotFound", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "ghost@sentra.dev", "hunter2")
		assert.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("AccountInactive", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "former@sentra.dev", "hunter2")
		assert.ErrorIs(t, err, user.ErrAccountInactive)
	})

	t.Run("InvalidPassword", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "admin@sentra.dev", "wrong")
		assert.ErrorIs(t, err, user.ErrInvalidPassword)
	})
}

func TestService_ValidateToken_WrongSecret(t *testing.T) {
	active := &user.User{
		ID:           uuid.New(),
		Email:        "admin@sentra.dev",
		PasswordHash: hashOf(t, "hunter2"),
		Active:       true,
	}

	issuer := user.NewService(newRepo(t, active), "secret-a", time.Hour)
	verifier := user.NewService(newRepo(t), "secret-b", time.Hour)

	_, token, err := issuer.Login(context.Background(), "admin@sentra.dev", "hunter2")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestRole_IsClientScoped(t *testing.T) {
	assert.False(t, user.RoleSuperAdmin.IsClientScoped())
	assert.False(t, user.RoleTeam.IsClientScoped())
	assert.True(t, user.RoleClientAdmin.IsClientScoped())
	assert.True(t, user.RoleClientTeam.IsClientScoped())
}
