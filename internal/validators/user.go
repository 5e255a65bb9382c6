package validators

import (
	"context"
	"regexp"
	"strings"

	"github.com/MKhiriev/miniforum/internal/crypto"
	"github.com/MKhiriev/miniforum/models"
)

// Field names accepted by [UserValidator].
const (
	FieldUsername         = "username"
	FieldEmail            = "email"
	FieldPassword         = "password"
	FieldPasswordRequired = "password_required"
)

// MinPasswordLength is the shortest password a user may choose.
const MinPasswordLength = 6

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_\-.]{1,20}$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9_\-@.]{10,255}$`)
)

// UserValidator checks account related requests: registration, login,
// password change and password reset.
type UserValidator struct{}

// NewUserValidator returns a [Validator] for account requests.
func NewUserValidator() Validator {
	return &UserValidator{}
}

// Validate dispatches on the dynamic type of obj. Value and pointer forms of
// models.RegisterRequest, models.LoginRequest, models.ChangePasswordRequest
// and models.ResetPasswordRequest are accepted.
func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegisterRequest(ctx, value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(ctx, *value, fields...)

	case models.LoginRequest:
		return v.validateLoginRequest(ctx, value, fields...)
	case *models.LoginRequest:
		return v.validateLoginRequest(ctx, *value, fields...)

	case models.ChangePasswordRequest:
		return v.validateChangePasswordRequest(ctx, value, fields...)
	case *models.ChangePasswordRequest:
		return v.validateChangePasswordRequest(ctx, *value, fields...)

	case models.ResetPasswordRequest:
		return v.validateResetPasswordRequest(ctx, value, fields...)
	case *models.ResetPasswordRequest:
		return v.validateResetPasswordRequest(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateRegisterRequest(_ context.Context, request models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if !IsValidUsername(request.Username) {
				return ErrInvalidUsername
			}
		case FieldEmail:
			if !IsValidEmail(request.Email) {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if err := CheckPassword(request.Password); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateLoginRequest only rejects empty input: everything else must go
// through the same lookup and hash comparison so that failures look alike.
func (v *UserValidator) validateLoginRequest(_ context.Context, request models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPasswordRequired}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if request.Username == "" {
				return ErrInvalidUsername
			}
		case FieldPasswordRequired:
			if request.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateChangePasswordRequest(_ context.Context, request models.ChangePasswordRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPasswordRequired, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldPasswordRequired:
			if request.CurrentPassword == "" {
				return ErrEmptyPassword
			}
		case FieldPassword:
			if err := CheckPassword(request.NewPassword); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateResetPasswordRequest(_ context.Context, request models.ResetPasswordRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldEmail}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if !IsValidUsername(request.Username) {
				return ErrInvalidUsername
			}
		case FieldEmail:
			if !IsValidEmail(request.Email) {
				return ErrInvalidEmail
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// IsValidUsername reports whether username is 1..20 characters of
// [a-zA-Z0-9_-.].
func IsValidUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

// IsValidEmail reports whether email contains '@' and is 10..255 characters
// of [a-zA-Z0-9_-@.].
func IsValidEmail(email string) bool {
	return strings.Contains(email, "@") && emailPattern.MatchString(email)
}

// CheckPassword enforces the password policy for user-chosen passwords.
func CheckPassword(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return ErrInvalidPassword
	}
	if len(password) > crypto.MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}
