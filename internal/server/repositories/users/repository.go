// Package users declares and implements the persistence contract for
// user accounts and their single current token.
package users

import (
	"context"

	"github.com/dmitrijs2005/postboard/internal/server/models"
)

// Repository stores users keyed by user name.
type Repository interface {
	// Create inserts a new user. A duplicate user name yields common.ErrorConflict.
	Create(ctx context.Context, user *models.User) error

	// GetUserByName returns the user or common.ErrorNotFound.
	GetUserByName(ctx context.Context, userName string) (*models.User, error)

	// UpdateToken replaces the user's current token, revoking the previous one.
	// An unknown user yields common.ErrorNotFound.
	UpdateToken(ctx context.Context, userName string, token string) error
}
