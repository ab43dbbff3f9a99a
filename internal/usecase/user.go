package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/mernventory/inventory-api/internal/model"
	"github.com/mernventory/inventory-api/internal/repository"
	"github.com/mernventory/inventory-api/internal/security"
)

// UserUsecase defines the business logic for profile and password management.
type UserUsecase interface {
	// GetUser loads a user's profile by ID.
	GetUser(ctx context.Context, userID string) (*model.User, error)

	// UpdateProfile updates the mutable profile fields. The email address
	// and password are never touched by a profile update.
	UpdateProfile(ctx context.Context, userID string, params UpdateProfileParams) (*model.User, error)

	// ChangePassword verifies the old password and persists a hash of the
	// new one.
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
}

// UpdateProfileParams defines the optional profile fields to update.
type UpdateProfileParams struct {
	Name  *string
	Photo *string
	Phone *string
	Bio   *string
}

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrWrongOldPassword = errors.New("old password is incorrect")
)

type userUsecase struct {
	userRepo repository.UserRepository
}

// NewUserUsecase creates a new instance of UserUsecase.
func NewUserUsecase(userRepo repository.UserRepository) UserUsecase {
	return &userUsecase{userRepo: userRepo}
}

func (u *userUsecase) GetUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := u.userRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return user, nil
}

func (u *userUsecase) UpdateProfile(
	ctx context.Context,
	userID string,
	params UpdateProfileParams,
) (*model.User, error) {
	if params.Name == nil && params.Photo == nil && params.Phone == nil && params.Bio == nil {
		return u.GetUser(ctx, userID)
	}

	user, err := u.userRepo.UpdateUser(ctx, userID, repository.UpdateUserParams{
		Name:  params.Name,
		Photo: params.Photo,
		Phone: params.Phone,
		Bio:   params.Bio,
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return user, nil
}

func (u *userUsecase) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := u.userRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}

		return err
	}

	if ok, err := security.VerifyPassword(oldPassword, user.PasswordHash); err != nil {
		return err
	} else if !ok {
		return ErrWrongOldPassword
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if _, err := u.userRepo.UpdateUser(ctx, userID, repository.UpdateUserParams{
		PasswordHash: &passwordHash,
	}); err != nil {
		return err
	}

	return nil
}
