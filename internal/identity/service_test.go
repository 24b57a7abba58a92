package identity

import (
	"context"
	"testing"

	"zentra-api/internal/auth"
	"zentra-api/internal/docstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() *Service {
	return NewService(docstore.NewMemoryStore(), auth.NewService("test-secret"))
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	user, err := svc.Register(ctx, "Ada@Example.com ", "hunter22", "Ada")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email, "email is normalized on registration")
	assert.Equal(t, "Ada", user.DisplayName)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "hunter22", user.PasswordHash)

	token, loggedIn, err := svc.Login(ctx, "ada@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	fetched, err := svc.UserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", fetched.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	_, err := svc.Register(ctx, "ada@example.com", "hunter22", "Ada")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "ADA@example.com", "different", "Someone Else")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterWeakPassword(t *testing.T) {
	_, err := newService().Register(context.Background(), "ada@example.com", "short", "Ada")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestRegisterDisplayNameDefaultsToEmail(t *testing.T) {
	user, err := newService().Register(context.Background(), "ada@example.com", "hunter22", "  ")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.DisplayName)
}

func TestLoginBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	_, err := svc.Register(ctx, "ada@example.com", "hunter22", "Ada")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "ada@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserByIDMissing(t *testing.T) {
	_, err := newService().UserByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestPublicStripsPasswordHash(t *testing.T) {
	user, err := newService().Register(context.Background(), "ada@example.com", "hunter22", "Ada")
	require.NoError(t, err)
	assert.Empty(t, user.Public().PasswordHash)
}
