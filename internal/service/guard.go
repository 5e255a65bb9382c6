package service

import (
	"context"

	"github.com/MKhiriev/miniforum/internal/utils"
	"github.com/MKhiriev/miniforum/models"
)

// RequireAuthenticated returns the user bound to the request session.
// Anonymous requests yield [ErrUnauthenticated].
func RequireAuthenticated(ctx context.Context) (models.User, error) {
	user, ok := utils.GetUserFromContext(ctx)
	if !ok || user.UserID == 0 {
		return models.User{}, ErrUnauthenticated
	}
	return user, nil
}

// RequireOwnership allows a mutation of post only by its owner. post must be
// freshly loaded from the store.
func RequireOwnership(post models.Post, user models.User) error {
	if user.UserID == 0 || post.UserID != user.UserID {
		return ErrForbidden
	}
	return nil
}
