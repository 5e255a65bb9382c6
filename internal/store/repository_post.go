package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/miniforum/internal/logger"
	"github.com/MKhiriev/miniforum/models"
	"github.com/jackc/pgerrcode"
)

// postRepository is the PostgreSQL-backed implementation of [PostRepository].
type postRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPostRepository constructs a [PostRepository] backed by db.
func NewPostRepository(db *DB, logger *logger.Logger) PostRepository {
	logger.Debug().Msg("creating post repository")
	return &postRepository{
		db:     db,
		logger: logger,
	}
}

// CreatePost inserts post for post.UserID. A foreign key violation means the
// author no longer exists and yields [ErrNoUserWasFound].
func (r *postRepository) CreatePost(ctx context.Context, post models.Post) (models.Post, error) {
	log := logger.FromContext(ctx)
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	row := r.db.QueryRowContext(ctx, createPost, post.UserID, post.Text)
	if err := row.Err(); err != nil {
		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return models.Post{}, ErrNoUserWasFound
		}
		log.Err(err).Bool("retryable", r.db.isRetryable(err)).Msg("error inserting post")
		return models.Post{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	var created models.Post
	if err := row.Scan(&created.PostID, &created.UserID, &created.Text, &created.CreatedOn); err != nil {
		log.Err(err).Msg("error scanning created post")
		return models.Post{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	created.Username = post.Username

	return created, nil
}

// FindPostByID loads a post together with its author's username.
func (r *postRepository) FindPostByID(ctx context.Context, postID int64) (models.Post, error) {
	log := logger.FromContext(ctx)
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	row := r.db.QueryRowContext(ctx, findPostByID, postID)
	if err := row.Err(); err != nil {
		log.Err(err).Bool("retryable", r.db.isRetryable(err)).Msg("error querying post")
		return models.Post{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	var post models.Post
	err := row.Scan(&post.PostID, &post.UserID, &post.Username, &post.Text, &post.CreatedOn)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Post{}, ErrPostNotFound
	case err != nil:
		log.Err(err).Msg("error scanning post")
		return models.Post{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return post, nil
}

// UpdatePost replaces the text of the post identified by post.PostID and
// owned by post.UserID, refreshing created_on. No matching row yields
// [ErrPostNotFound].
func (r *postRepository) UpdatePost(ctx context.Context, post models.Post) (models.Post, error) {
	log := logger.FromContext(ctx)
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	row := r.db.QueryRowContext(ctx, updatePost, post.Text, post.PostID, post.UserID)
	if err := row.Err(); err != nil {
		log.Err(err).Bool("retryable", r.db.isRetryable(err)).Msg("error updating post")
		return models.Post{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	var updated models.Post
	err := row.Scan(&updated.PostID, &updated.UserID, &updated.Text, &updated.CreatedOn)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Post{}, ErrPostNotFound
	case err != nil:
		log.Err(err).Msg("error scanning updated post")
		return models.Post{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	updated.Username = post.Username

	return updated, nil
}

// DeletePost removes the post identified by postID and owned by userID.
// No matching row yields [ErrPostNotFound].
func (r *postRepository) DeletePost(ctx context.Context, postID, userID int64) error {
	log := logger.FromContext(ctx)
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	result, err := r.db.ExecContext(ctx, deletePost, postID, userID)
	if err != nil {
		log.Err(err).Bool("retryable", r.db.isRetryable(err)).Msg("error deleting post")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrPostNotFound
	}

	return nil
}

// ListPosts returns posts newest first, each joined with its author's
// username.
func (r *postRepository) ListPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListPostsQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Bool("retryable", r.db.isRetryable(err)).Msg("error listing posts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	posts := make([]models.Post, 0)
	for rows.Next() {
		var post models.Post
		if err = rows.Scan(&post.PostID, &post.UserID, &post.Username, &post.Text, &post.CreatedOn); err != nil {
			log.Err(err).Msg("error scanning post row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		posts = append(posts, post)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return posts, nil
}
