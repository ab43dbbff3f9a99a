package usecase

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mernventory/inventory-api/internal/model"
	"github.com/mernventory/inventory-api/internal/security"
)

var resetLinkPattern = regexp.MustCompile(`/resetpassword/([0-9a-f]+)`)

func newResetFixture(t *testing.T) (*fakeUserRepo, *fakeTokenRepo, *fakeMailer, PasswordResetUsecase, *model.User) {
	t.Helper()

	userRepo := newFakeUserRepo()
	tokenRepo := newFakeTokenRepo()
	mailer := &fakeMailer{}

	u := NewPasswordResetUsecase(userRepo, tokenRepo, mailer, PasswordResetConfig{
		FrontendURL: "http://localhost:5173",
		ExpiresIn:   30 * time.Minute,
	})

	hash, err := security.HashPassword("original123")
	require.NoError(t, err)

	user, err := userRepo.CreateUser(context.Background(), &model.User{
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: hash,
	})
	require.NoError(t, err)

	return userRepo, tokenRepo, mailer, u, user
}

// mailedSecret pulls the reset secret out of the last delivered email body.
func mailedSecret(t *testing.T, mailer *fakeMailer) string {
	t.Helper()

	require.NotEmpty(t, mailer.sent)
	matches := resetLinkPattern.FindStringSubmatch(mailer.sent[len(mailer.sent)-1].htmlBody)
	require.Len(t, matches, 2)
	return matches[1]
}

func TestRequestPasswordReset_UnknownEmail(t *testing.T) {
	t.Parallel()

	_, _, _, u, _ := newResetFixture(t)

	err := u.RequestPasswordReset(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRequestPasswordReset_DeliveryFailureSurfaced(t *testing.T) {
	t.Parallel()

	_, tokenRepo, mailer, u, _ := newResetFixture(t)
	mailer.sendErr = errors.New("smtp unreachable")

	err := u.RequestPasswordReset(context.Background(), "alice@example.com")
	assert.ErrorIs(t, err, ErrEmailNotDelivered)

	// The token was persisted before delivery was attempted; it will simply
	// expire unused.
	assert.Len(t, tokenRepo.tokens, 1)
}

func TestResetPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	userRepo, tokenRepo, mailer, u, user := newResetFixture(t)

	require.NoError(t, u.RequestPasswordReset(context.Background(), "alice@example.com"))
	secret := mailedSecret(t, mailer)

	require.NoError(t, u.ResetPassword(context.Background(), secret, "brandnew456"))

	updated, err := userRepo.GetUser(context.Background(), user.ID.Hex())
	require.NoError(t, err)

	ok, err := security.VerifyPassword("brandnew456", updated.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	// The consumed token is deleted so it cannot be replayed.
	assert.Empty(t, tokenRepo.tokens)
	err = u.ResetPassword(context.Background(), secret, "again789")
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
}

func TestResetPassword_SecondRequestInvalidatesFirst(t *testing.T) {
	t.Parallel()

	_, tokenRepo, mailer, u, _ := newResetFixture(t)

	require.NoError(t, u.RequestPasswordReset(context.Background(), "alice@example.com"))
	firstSecret := mailedSecret(t, mailer)

	require.NoError(t, u.RequestPasswordReset(context.Background(), "alice@example.com"))
	require.Len(t, tokenRepo.tokens, 1)

	err := u.ResetPassword(context.Background(), firstSecret, "brandnew456")
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	t.Parallel()

	_, tokenRepo, mailer, u, _ := newResetFixture(t)

	require.NoError(t, u.RequestPasswordReset(context.Background(), "alice@example.com"))
	secret := mailedSecret(t, mailer)

	// Age the stored token past its window.
	require.Len(t, tokenRepo.tokens, 1)
	tokenRepo.tokens[0].ExpiresAt = time.Now().Add(-time.Second)

	err := u.ResetPassword(context.Background(), secret, "brandnew456")
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
}

func TestResetPassword_WrongSecret(t *testing.T) {
	t.Parallel()

	_, _, _, u, _ := newResetFixture(t)

	require.NoError(t, u.RequestPasswordReset(context.Background(), "alice@example.com"))

	err := u.ResetPassword(context.Background(), "deadbeef", "brandnew456")
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
}
