package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mernventory/inventory-api/internal/auth"
	"github.com/mernventory/inventory-api/internal/model"
)

func newTestJWTAuth() auth.JWTAuthenticator {
	return auth.NewJWTAuthenticator("test-secret", "mernventory", time.Hour)
}

func TestRegister_ThenLogin(t *testing.T) {
	t.Parallel()

	userRepo := newFakeUserRepo()
	u := NewAuthUsecase(userRepo, newTestJWTAuth())

	user, token, err := u.Register(context.Background(), RegisterParams{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, model.DefaultPhoto, user.Photo)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	loggedIn, loginToken, err := u.Login(context.Background(), LoginParams{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, loginToken)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	userRepo := newFakeUserRepo()
	u := NewAuthUsecase(userRepo, newTestJWTAuth())

	_, _, err := u.Register(context.Background(), RegisterParams{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, _, err = u.Register(context.Background(), RegisterParams{
		Name:     "Mallory",
		Email:    "alice@example.com",
		Password: "different456",
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	userRepo := newFakeUserRepo()
	u := NewAuthUsecase(userRepo, newTestJWTAuth())

	_, _, err := u.Register(context.Background(), RegisterParams{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	// A close guess is still a wrong password.
	_, _, err = u.Login(context.Background(), LoginParams{
		Email:    "alice@example.com",
		Password: "secret124",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	t.Parallel()

	u := NewAuthUsecase(newFakeUserRepo(), newTestJWTAuth())

	_, _, err := u.Login(context.Background(), LoginParams{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
