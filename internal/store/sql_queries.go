package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/miniforum/models"
)

const (
	createUser = `INSERT INTO users (username, email, password_hash)
    VALUES ($1, $2, $3)
    RETURNING id, username, email, password_hash, created_at;`

	findUserByName = `SELECT id, username, email, password_hash, created_at
    FROM users
    WHERE username = $1;`

	findUserByID = `SELECT id, username, email, password_hash, created_at
    FROM users
    WHERE id = $1;`

	updatePasswordHash = `UPDATE users
    SET password_hash = $1
    WHERE id = $2;`

	createPost = `INSERT INTO posts (user_id, text)
    VALUES ($1, $2)
    RETURNING id, user_id, text, created_on;`

	findPostByID = `SELECT p.id, p.user_id, u.username, p.text, p.created_on
    FROM posts p
    JOIN users u ON u.id = p.user_id
    WHERE p.id = $1;`

	updatePost = `UPDATE posts
    SET text = $1, created_on = NOW()
    WHERE id = $2 AND user_id = $3
    RETURNING id, user_id, text, created_on;`

	deletePost = `DELETE FROM posts
    WHERE id = $1 AND user_id = $2;`

	createSession = `INSERT INTO sessions (key, user_id, created_at, expires_at)
    VALUES ($1, $2, $3, $4);`

	findSession = `SELECT key, user_id, created_at, expires_at
    FROM sessions
    WHERE key = $1 AND expires_at > $2;`

	deleteSession = `DELETE FROM sessions
    WHERE key = $1;`

	deleteUserSessions = `DELETE FROM sessions
    WHERE user_id = $1;`

	deleteExpiredSessions = `DELETE FROM sessions
    WHERE expires_at <= $1;`
)

// psql is the statement builder configured for PostgreSQL placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildListPostsQuery builds the newest-first post listing joined with the
// author's username, narrowed by filter.
func buildListPostsQuery(filter models.PostFilter) (string, []any, error) {
	builder := psql.
		Select("p.id", "p.user_id", "u.username", "p.text", "p.created_on").
		From("posts p").
		Join("users u ON u.id = p.user_id").
		OrderBy("p.id DESC")

	if filter.AuthorID != 0 {
		builder = builder.Where(sq.Eq{"p.user_id": filter.AuthorID})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}

	return builder.ToSql()
}
