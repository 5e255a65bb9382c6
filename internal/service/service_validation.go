package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/miniforum/internal/validators"
	"github.com/MKhiriev/miniforum/models"
)

// AuthValidationService checks account requests before they reach the
// wrapped AuthService.
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService() AuthServiceWrapper {
	return &AuthValidationService{
		validator: validators.NewUserValidator(),
	}
}

func (v *AuthValidationService) Wrap(wrapped AuthService) AuthService {
	v.inner = wrapped
	return v
}

func (v *AuthValidationService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.RegisterUser(ctx, req)
}

// Authenticate reports incomplete input as a plain credential failure.
func (v *AuthValidationService) Authenticate(ctx context.Context, req models.LoginRequest) (models.User, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return v.inner.Authenticate(ctx, req)
}

func (v *AuthValidationService) FindUserByName(ctx context.Context, username string) (models.User, error) {
	return v.inner.FindUserByName(ctx, username)
}

func (v *AuthValidationService) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return v.inner.FindUserByID(ctx, userID)
}

func (v *AuthValidationService) ComparePassword(ctx context.Context, userID int64, candidate string) (bool, error) {
	return v.inner.ComparePassword(ctx, userID, candidate)
}

func (v *AuthValidationService) ChangePassword(ctx context.Context, userID int64, newPassword string) error {
	if err := validators.CheckPassword(newPassword); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.ChangePassword(ctx, userID, newPassword)
}

// UpdatePassword checks the confirmation first, so a mismatch is reported
// even when the new password also breaks the policy.
func (v *AuthValidationService) UpdatePassword(ctx context.Context, userID int64, req models.ChangePasswordRequest) error {
	if req.NewPassword != req.NewPasswordAgain {
		return ErrPasswordsDoNotMatch
	}
	if err := v.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.UpdatePassword(ctx, userID, req)
}

func (v *AuthValidationService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	if err := v.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.ResetPassword(ctx, req)
}

// PostValidationService checks post requests before they reach the wrapped
// PostService.
type PostValidationService struct {
	inner     PostService
	validator validators.Validator
}

func NewPostValidationService() PostServiceWrapper {
	return &PostValidationService{
		validator: validators.NewPostValidator(),
	}
}

func (v *PostValidationService) Wrap(wrapped PostService) PostService {
	v.inner = wrapped
	return v
}

func (v *PostValidationService) MakePost(ctx context.Context, user models.User, req models.MakePostRequest) (models.Post, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Post{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.MakePost(ctx, user, req)
}

func (v *PostValidationService) EditPost(ctx context.Context, user models.User, req models.EditPostRequest) (models.Post, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Post{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.EditPost(ctx, user, req)
}

func (v *PostValidationService) DeletePost(ctx context.Context, user models.User, req models.DeletePostRequest) error {
	if err := v.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.DeletePost(ctx, user, req)
}

func (v *PostValidationService) GetPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, error) {
	return v.inner.GetPosts(ctx, filter)
}
