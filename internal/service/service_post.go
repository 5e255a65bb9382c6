package service

import (
	"context"
	"errors"
	"strings"

	"github.com/MKhiriev/miniforum/internal/logger"
	"github.com/MKhiriev/miniforum/internal/store"
	"github.com/MKhiriev/miniforum/models"
)

type postService struct {
	postRepository store.PostRepository

	logger *logger.Logger
}

// NewPostService constructs a PostService over postRepository.
func NewPostService(postRepository store.PostRepository, logger *logger.Logger) PostService {
	return &postService{
		postRepository: postRepository,
		logger:         logger,
	}
}

func (p *postService) MakePost(ctx context.Context, user models.User, req models.MakePostRequest) (models.Post, error) {
	log := logger.FromContext(ctx)

	post, err := p.postRepository.CreatePost(ctx, models.Post{
		UserID:   user.UserID,
		Username: user.Username,
		Text:     strings.TrimSpace(req.Text),
	})
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("post creation failed")
		if err = fromStoreError(err); errors.Is(err, ErrUserNotFound) {
			return models.Post{}, ErrUnauthenticated
		}
		return models.Post{}, err
	}

	log.Info().Int64("user_id", user.UserID).Int64("post_id", post.PostID).Msg("post created")
	return post, nil
}

// EditPost checks ownership against the stored post; the update statement
// is scoped by owner as well.
func (p *postService) EditPost(ctx context.Context, user models.User, req models.EditPostRequest) (models.Post, error) {
	log := logger.FromContext(ctx)

	stored, err := p.postRepository.FindPostByID(ctx, req.PostID)
	if err != nil {
		return models.Post{}, fromStoreError(err)
	}

	if err = RequireOwnership(stored, user); err != nil {
		log.Warn().
			Int64("user_id", user.UserID).
			Int64("post_id", req.PostID).
			Int64("owner_id", stored.UserID).
			Msg("attempt to edit another user's post")
		return models.Post{}, err
	}

	edited, err := p.postRepository.UpdatePost(ctx, models.Post{
		PostID:   stored.PostID,
		UserID:   user.UserID,
		Username: stored.Username,
		Text:     strings.TrimSpace(req.Text),
	})
	if err != nil {
		return models.Post{}, fromStoreError(err)
	}

	log.Info().Int64("user_id", user.UserID).Int64("post_id", edited.PostID).Msg("post edited")
	return edited, nil
}

func (p *postService) DeletePost(ctx context.Context, user models.User, req models.DeletePostRequest) error {
	log := logger.FromContext(ctx)

	stored, err := p.postRepository.FindPostByID(ctx, req.PostID)
	if err != nil {
		return fromStoreError(err)
	}

	if err = RequireOwnership(stored, user); err != nil {
		log.Warn().
			Int64("user_id", user.UserID).
			Int64("post_id", req.PostID).
			Int64("owner_id", stored.UserID).
			Msg("attempt to delete another user's post")
		return err
	}

	if err = p.postRepository.DeletePost(ctx, stored.PostID, user.UserID); err != nil {
		return fromStoreError(err)
	}

	log.Info().Int64("user_id", user.UserID).Int64("post_id", stored.PostID).Msg("post deleted")
	return nil
}

func (p *postService) GetPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, error) {
	posts, err := p.postRepository.ListPosts(ctx, filter)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("listing posts failed")
		return nil, fromStoreError(err)
	}
	return posts, nil
}
