package models

// RegisterRequest is the body of POST /api/user.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ChangePasswordRequest is the body of PUT /api/password.
type ChangePasswordRequest struct {
	CurrentPassword  string `json:"currentPassword"`
	NewPassword      string `json:"newPassword"`
	NewPasswordAgain string `json:"newPasswordAgain"`
}

// ResetPasswordRequest is the body of DELETE /api/password.
// Both fields must match the stored account for a reset to happen.
type ResetPasswordRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// MakePostRequest is the body of POST /api/post.
type MakePostRequest struct {
	Text string `json:"text"`
}

// EditPostRequest is the body of PUT /api/post.
type EditPostRequest struct {
	PostID int64  `json:"postId"`
	Text   string `json:"text"`
}

// DeletePostRequest is the body of DELETE /api/post.
type DeletePostRequest struct {
	PostID int64 `json:"postId"`
}
