package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/MKhiriev/miniforum/internal/adapter"
	"github.com/MKhiriev/miniforum/internal/crypto"
	"github.com/MKhiriev/miniforum/internal/logger"
	"github.com/MKhiriev/miniforum/internal/store"
	"github.com/MKhiriev/miniforum/models"
)

// authService is the concrete implementation of AuthService.
type authService struct {
	// userRepository is the credential store.
	userRepository store.UserRepository

	// sessions is used to revoke every session of a user whose password
	// changed.
	sessions store.SessionStorage

	// hasher produces and verifies bcrypt hashes.
	hasher crypto.PasswordHasher

	// mailer delivers reset passwords. Nil disables password reset.
	mailer adapter.Mailer

	logger *logger.Logger
}

// NewAuthService constructs an AuthService. mailer may be nil, in which case
// ResetPassword always fails with [ErrMailerUnavailable].
func NewAuthService(userRepository store.UserRepository, sessions store.SessionStorage, hasher crypto.PasswordHasher, mailer adapter.Mailer, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		sessions:       sessions,
		hasher:         hasher,
		mailer:         mailer,
		logger:         logger,
	}
}

// RegisterUser hashes the password and creates the account.
//
// The username pre-check only saves a bcrypt round for the common case; the
// unique constraint decides concurrent registrations. Both paths yield
// [ErrDuplicateUser].
func (a *authService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	_, err := a.userRepository.FindUserByName(ctx, req.Username)
	switch {
	case err == nil:
		log.Debug().Str("username", req.Username).Msg("username already taken")
		return models.User{}, ErrDuplicateUser
	case !errors.Is(err, store.ErrNoUserWasFound):
		log.Err(err).Msg("user lookup before registration failed")
		return models.User{}, fromStoreError(err)
	}

	hash, err := a.hasher.Hash(req.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		log.Err(err).Str("username", req.Username).Msg("user creation ended with error")
		return models.User{}, fromStoreError(err)
	}

	log.Info().Int64("user_id", user.UserID).Str("username", user.Username).Msg("user registered")
	return user, nil
}

// Authenticate looks the user up and verifies the password. When the user
// does not exist a dummy comparison runs so both failure paths cost one
// bcrypt verification.
func (a *authService) Authenticate(ctx context.Context, req models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindUserByName(ctx, req.Username)
	if errors.Is(err, store.ErrNoUserWasFound) {
		a.hasher.VerifyDummy(req.Password)
		log.Info().Str("username", req.Username).Msg("login failed")
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Msg("user lookup during login failed")
		return models.User{}, fromStoreError(err)
	}

	ok, err := a.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("stored password hash is malformed")
		return models.User{}, ErrInvalidCredentials
	}
	if !ok {
		log.Info().Str("username", req.Username).Msg("login failed")
		return models.User{}, ErrInvalidCredentials
	}

	return user, nil
}

func (a *authService) FindUserByName(ctx context.Context, username string) (models.User, error) {
	user, err := a.userRepository.FindUserByName(ctx, username)
	if err != nil {
		return models.User{}, fromStoreError(err)
	}
	return user, nil
}

func (a *authService) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fromStoreError(err)
	}
	return user, nil
}

func (a *authService) ComparePassword(ctx context.Context, userID int64, candidate string) (bool, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return false, fromStoreError(err)
	}

	ok, err := a.hasher.Verify(candidate, user.PasswordHash)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", userID).Msg("stored password hash is malformed")
		return false, nil
	}

	return ok, nil
}

func (a *authService) ChangePassword(ctx context.Context, userID int64, newPassword string) error {
	log := logger.FromContext(ctx)

	hash, err := a.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if err = a.userRepository.UpdatePasswordHash(ctx, userID, hash); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("password hash update failed")
		return fromStoreError(err)
	}

	// the password is already changed, a failed revocation is only logged
	if err = a.sessions.DeleteUserSessions(ctx, userID); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("revoking sessions after password change failed")
	}

	log.Info().Int64("user_id", userID).Msg("password changed")
	return nil
}

func (a *authService) UpdatePassword(ctx context.Context, userID int64, req models.ChangePasswordRequest) error {
	if req.NewPassword != req.NewPasswordAgain {
		return ErrPasswordsDoNotMatch
	}

	ok, err := a.ComparePassword(ctx, userID, req.CurrentPassword)
	if err != nil {
		return err
	}
	if !ok {
		logger.FromContext(ctx).Info().Int64("user_id", userID).Msg("password change rejected: incorrect current password")
		return ErrWrongPassword
	}

	return a.ChangePassword(ctx, userID, req.NewPassword)
}

// ResetPassword never reveals whether the username exists: an unknown user
// and a wrong email both yield [ErrResetDetailsMismatch].
func (a *authService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	log := logger.FromContext(ctx)

	if a.mailer == nil {
		log.Warn().Msg("password reset requested but no mailer is configured")
		return ErrMailerUnavailable
	}

	user, err := a.userRepository.FindUserByName(ctx, req.Username)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return ErrResetDetailsMismatch
	}
	if err != nil {
		return fromStoreError(err)
	}

	if subtle.ConstantTimeCompare([]byte(user.Email), []byte(req.Email)) != 1 {
		log.Warn().Int64("user_id", user.UserID).Msg("password reset rejected: email mismatch")
		return ErrResetDetailsMismatch
	}

	password, err := a.hasher.GenerateRandomPassword()
	if err != nil {
		return fmt.Errorf("generating temporary password: %w", err)
	}

	if err = a.ChangePassword(ctx, user.UserID, password); err != nil {
		return err
	}

	if err = a.mailer.SendNewPassword(ctx, user.Email, password); err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("password reset mail failed")
		return fmt.Errorf("%w: %w", ErrMailDeliveryFailed, err)
	}

	log.Info().Int64("user_id", user.UserID).Msg("password reset")
	return nil
}
