package models

import "time"

// Post is a short text message owned by a single user.
type Post struct {
	// PostID is the unique identifier of the post.
	PostID int64 `json:"id"`

	// UserID is the owner of the post. Only the owner may edit or delete it.
	UserID int64 `json:"user_id"`

	// Username is the author's name, joined from the users table on reads.
	Username string `json:"username,omitempty"`

	// Text is the trimmed message body, 1..255 characters.
	Text string `json:"text"`

	// CreatedOn is refreshed on every edit.
	CreatedOn time.Time `json:"created_on"`
}

// TableName returns the name of the database table
// associated with the Post model.
func (p Post) TableName() string {
	return "posts"
}

// PostFilter narrows down a post listing.
// Zero values mean "no restriction".
type PostFilter struct {
	AuthorID int64
	Limit    uint64
}
