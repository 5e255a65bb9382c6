package models

// MessageResponse is the generic success body. Redirect tells the browser
// client where to navigate next and is omitted when no navigation is needed.
type MessageResponse struct {
	Message  string `json:"msg,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

// ErrorResponse is written for every failed API call.
type ErrorResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

// PostResponse is returned after a post is created or edited.
type PostResponse struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Post     Post   `json:"post"`
}

// PostsResponse is returned by GET /api/post. UserID lets the client decide
// which posts get edit and delete controls.
type PostsResponse struct {
	UserID int64  `json:"userId"`
	Posts  []Post `json:"posts"`
}
