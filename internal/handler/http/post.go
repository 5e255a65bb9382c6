package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/miniforum/internal/app"
	"github.com/MKhiriev/miniforum/internal/metrics"
	"github.com/MKhiriev/miniforum/internal/service"
	"github.com/MKhiriev/miniforum/internal/utils"
	"github.com/MKhiriev/miniforum/models"
)

// maxPostsLimit caps ?limit= on GET /api/post.
const maxPostsLimit = 100

func (h *Handler) makePost(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.MakePostRequest
	if err = utils.ReadJSON(r, &req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	post, err := h.services.PostService.MakePost(r.Context(), user, req)
	h.metrics.ObservePost(metrics.OperationCreate, outcomeOf(err))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.PostResponse{
		UserID:   user.UserID,
		Username: user.Username,
		Post:     post,
	}, http.StatusOK)
}

// getPosts lists posts newest first. ?author= narrows the list to one user
// and ?limit= caps its length.
func (h *Handler) getPosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	filter, err := parsePostFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if author := r.URL.Query().Get("author"); author != "" {
		found, err := h.services.AuthService.FindUserByName(ctx, author)
		if errors.Is(err, service.ErrUserNotFound) {
			utils.WriteJSON(w, models.PostsResponse{UserID: user.UserID, Posts: []models.Post{}}, http.StatusOK)
			return
		}
		if err != nil {
			writeError(w, r, err)
			return
		}
		filter.AuthorID = found.UserID
	}

	posts, err := h.services.PostService.GetPosts(ctx, filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.PostsResponse{
		UserID: user.UserID,
		Posts:  posts,
	}, http.StatusOK)
}

func (h *Handler) editPost(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.EditPostRequest
	if err = utils.ReadJSON(r, &req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	post, err := h.services.PostService.EditPost(r.Context(), user, req)
	h.metrics.ObservePost(metrics.OperationEdit, outcomeOf(err))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.PostResponse{
		UserID:   user.UserID,
		Username: user.Username,
		Post:     post,
	}, http.StatusOK)
}

func (h *Handler) deletePost(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.DeletePostRequest
	if err = utils.ReadJSON(r, &req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	err = h.services.PostService.DeletePost(r.Context(), user, req)
	h.metrics.ObservePost(metrics.OperationDelete, outcomeOf(err))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgPostDeleted}, http.StatusOK)
}

func parsePostFilter(r *http.Request) (models.PostFilter, error) {
	var filter models.PostFilter

	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return filter, nil
	}

	limit, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || limit == 0 {
		return filter, fmt.Errorf("%w: limit must be a positive integer", ErrInvalidQuery)
	}
	filter.Limit = min(limit, maxPostsLimit)

	return filter, nil
}
