package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mernventory/inventory-api/internal/model"
	"github.com/mernventory/inventory-api/internal/security"
)

func newUserFixture(t *testing.T) (*fakeUserRepo, UserUsecase, *model.User) {
	t.Helper()

	userRepo := newFakeUserRepo()
	u := NewUserUsecase(userRepo)

	hash, err := security.HashPassword("original123")
	require.NoError(t, err)

	user, err := userRepo.CreateUser(context.Background(), &model.User{
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: hash,
		Photo:        model.DefaultPhoto,
		Phone:        model.DefaultPhone,
		Bio:          model.DefaultBio,
	})
	require.NoError(t, err)

	return userRepo, u, user
}

func TestGetUser_Unknown(t *testing.T) {
	t.Parallel()

	_, u, _ := newUserFixture(t)

	_, err := u.GetUser(context.Background(), "0123456789abcdef01234567")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()

	userRepo, u, user := newUserFixture(t)

	name := "Alice B."
	phone := "+1555"
	bio := "inventory manager"

	updated, err := u.UpdateProfile(context.Background(), user.ID.Hex(), UpdateProfileParams{
		Name:  &name,
		Phone: &phone,
		Bio:   &bio,
	})
	require.NoError(t, err)

	assert.Equal(t, "Alice B.", updated.Name)
	assert.Equal(t, "+1555", updated.Phone)
	assert.Equal(t, "inventory manager", updated.Bio)
	assert.Equal(t, model.DefaultPhoto, updated.Photo)

	// A profile update never touches the email or the stored password hash.
	stored, err := userRepo.GetUser(context.Background(), user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", stored.Email)
	assert.Equal(t, user.PasswordHash, stored.PasswordHash)
}

func TestUpdateProfile_NoFields(t *testing.T) {
	t.Parallel()

	_, u, user := newUserFixture(t)

	updated, err := u.UpdateProfile(context.Background(), user.ID.Hex(), UpdateProfileParams{})
	require.NoError(t, err)

	assert.Equal(t, "Alice", updated.Name)
	assert.Equal(t, user.PasswordHash, updated.PasswordHash)
}

func TestChangePassword(t *testing.T) {
	t.Parallel()

	userRepo, u, user := newUserFixture(t)

	err := u.ChangePassword(context.Background(), user.ID.Hex(), "original123", "brandnew456")
	require.NoError(t, err)

	stored, err := userRepo.GetUser(context.Background(), user.ID.Hex())
	require.NoError(t, err)

	ok, err := security.VerifyPassword("brandnew456", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = security.VerifyPassword("original123", stored.PasswordHash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	t.Parallel()

	userRepo, u, user := newUserFixture(t)

	err := u.ChangePassword(context.Background(), user.ID.Hex(), "notquite123", "brandnew456")
	assert.ErrorIs(t, err, ErrWrongOldPassword)

	// The stored hash is untouched after a rejected change.
	stored, err := userRepo.GetUser(context.Background(), user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, user.PasswordHash, stored.PasswordHash)
}

func TestChangePassword_UnknownUser(t *testing.T) {
	t.Parallel()

	_, u, _ := newUserFixture(t)

	err := u.ChangePassword(context.Background(), "0123456789abcdef01234567", "original123", "brandnew456")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
