package models

import "time"

// User represents a forum account.
// PasswordHash is a bcrypt hash and is never serialized.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Username is the unique, case-sensitive login name.
	Username string `json:"username"`

	// Email is the address the password reset mail is sent to.
	// It is only ever compared against user input, never displayed.
	Email string `json:"-"`

	// PasswordHash stores the salted bcrypt hash of the user's password.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
