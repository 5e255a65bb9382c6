package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUsername = errors.New("invalid username")
	ErrInvalidEmail    = errors.New("invalid email")
	ErrInvalidPassword = errors.New("passwords must be at least 6 characters long")
	ErrPasswordTooLong = errors.New("passwords must be at most 72 bytes long")
	ErrEmptyPassword   = errors.New("password is required")

	ErrInvalidPostText = errors.New("post must be 1 to 255 characters and not only whitespace")
	ErrInvalidPostID   = errors.New("invalid post ID")
)
