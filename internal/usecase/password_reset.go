package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/mernventory/inventory-api/internal/model"
	"github.com/mernventory/inventory-api/internal/repository"
	"github.com/mernventory/inventory-api/internal/security"
)

// PasswordResetUsecase defines the business logic for the password reset
// token lifecycle.
type PasswordResetUsecase interface {
	// RequestPasswordReset initiates the password reset process for a given
	// email, replacing any previously issued token for the same user.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword redeems a reset secret and sets a new password. The
	// consumed token is deleted so it cannot be replayed before its natural
	// expiry.
	ResetPassword(ctx context.Context, secret, newPassword string) error
}

// EmailSender is the outbound email collaborator consumed by the password
// reset flow.
type EmailSender interface {
	SendHTML(to []string, subject, htmlBody string) error
}

var (
	ErrResetTokenInvalid = errors.New("invalid or expired token")
	ErrEmailNotDelivered = errors.New("email not sent, please try again later")
)

// PasswordResetConfig carries the reset-link settings injected from the
// process configuration.
type PasswordResetConfig struct {
	FrontendURL string
	ExpiresIn   time.Duration
}

type passwordResetUsecase struct {
	userRepo  repository.UserRepository
	tokenRepo repository.PasswordResetTokenRepository
	mailer    EmailSender
	cfg       PasswordResetConfig
}

// NewPasswordResetUsecase creates a new instance of PasswordResetUsecase.
func NewPasswordResetUsecase(
	userRepo repository.UserRepository,
	tokenRepo repository.PasswordResetTokenRepository,
	mailer EmailSender,
	cfg PasswordResetConfig,
) PasswordResetUsecase {
	return &passwordResetUsecase{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		mailer:    mailer,
		cfg:       cfg,
	}
}

func (u *passwordResetUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return err
	}

	// A user holds at most one active reset token at a time.
	if err := u.tokenRepo.DeleteUserTokens(ctx, user.ID.Hex()); err != nil {
		return err
	}

	secret, err := generateResetSecret(user.ID.Hex())
	if err != nil {
		return err
	}

	resetToken := &model.PasswordResetToken{
		UserID:    user.ID,
		TokenHash: security.HashResetSecret(secret),
		ExpiresAt: time.Now().Add(u.cfg.ExpiresIn),
	}

	// The token is persisted before delivery is attempted, so a delivery
	// failure leaves a valid-but-undelivered token that simply expires.
	if _, err := u.tokenRepo.CreateToken(ctx, resetToken); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/resetpassword/%s", u.cfg.FrontendURL, secret)
	htmlBody := fmt.Sprintf(`
		<h2>Hello %s,</h2>
		<p>You requested a password reset. Please use the link below to reset your password:</p>
		<a href="%s" clicktracking=off>%s</a>
		<p><b>This link is valid for %s.</b></p>
		<br/>
		<p>Regards,</p>
		<p><strong>Mernventory Team</strong></p>
	`, user.Name, resetURL, resetURL, u.cfg.ExpiresIn)

	if err := u.mailer.SendHTML([]string{user.Email}, "Password Reset Request", htmlBody); err != nil {
		return ErrEmailNotDelivered
	}

	return nil
}

func (u *passwordResetUsecase) ResetPassword(ctx context.Context, secret, newPassword string) error {
	tokenHash := security.HashResetSecret(secret)

	resetToken, err := u.tokenRepo.GetValidTokenByHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrResetTokenInvalid
		}
		return err
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if _, err := u.userRepo.UpdateUser(ctx, resetToken.UserID.Hex(), repository.UpdateUserParams{
		PasswordHash: &passwordHash,
	}); err != nil {
		return err
	}

	return u.tokenRepo.DeleteToken(ctx, resetToken.ID.Hex())
}

// generateResetSecret produces the secret mailed to the user: 32 random bytes
// hex-encoded, with the owning user's ID appended.
func generateResetSecret(userID string) (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes) + userID, nil
}
