// Package posts declares and implements persistence for posts.
package posts

import (
	"context"

	"github.com/dmitrijs2005/postboard/internal/server/models"
)

type Repository interface {
	// Create inserts a post and fills in the store-assigned ID.
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	// GetByIDForUpdate loads a post and locks its row until the surrounding
	// transaction ends.
	GetByIDForUpdate(ctx context.Context, id int64) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	// Update replaces the content fields of an existing post. The owner is never changed.
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id int64) error
}
