package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/postboard/internal/common"
	"github.com/dmitrijs2005/postboard/internal/dbx"
	"github.com/dmitrijs2005/postboard/internal/logging"
	"github.com/dmitrijs2005/postboard/internal/server/models"
	"github.com/dmitrijs2005/postboard/internal/server/repositories/repomanager"
)

// PhotoStore hands out short-lived URLs for post photos kept in object storage.
type PhotoStore interface {
	PresignPut(ctx context.Context) (*models.PhotoUpload, error)
	PresignGet(ctx context.Context, key string) (string, error)
	ValidKey(key string) bool
}

// PostService serves posts. Reads are public; mutations need an Identity and
// are allowed only for the post's owner.
type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	photos      PhotoStore
	log         logging.Logger
}

// NewPostService builds a PostService. photos may be nil, which disables the
// photo URL operations.
func NewPostService(db *sql.DB, m repomanager.RepositoryManager, photos PhotoStore, log logging.Logger) *PostService {
	return &PostService{
		db:          db,
		repomanager: m,
		photos:      photos,
		log:         log.With("service", "posts"),
	}
}

// CanModify reports whether identity may change or delete a post owned by owner.
func CanModify(identity *models.Identity, owner string) bool {
	return identity != nil && identity.UserName == owner
}

func (s *PostService) List(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.repomanager.Posts(s.db).List(ctx)
	if err != nil {
		return nil, s.internal(ctx, "list posts", err)
	}
	return posts, nil
}

func (s *PostService) Get(ctx context.Context, id int64) (*models.Post, error) {
	post, err := s.repomanager.Posts(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, s.mapErr(ctx, "get post", err)
	}
	return post, nil
}

// Create stores a new post owned by identity. Ownership is never taken from
// the caller's fields.
func (s *PostService) Create(ctx context.Context, identity *models.Identity, fields models.PostFields) (*models.Post, error) {
	if identity == nil {
		return nil, common.ErrorUnauthorized
	}

	post, err := dbx.InTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (*models.Post, error) {
		post := &models.Post{
			Owner:       identity.UserName,
			Title:       fields.Title,
			Description: fields.Description,
			Photo:       fields.Photo,
		}
		if err := s.repomanager.Posts(tx).Create(ctx, post); err != nil {
			return nil, err
		}
		return post, nil
	})
	if err != nil {
		return nil, s.internal(ctx, "create post", err)
	}

	s.log.Info(ctx, "post created", "post_id", post.ID, "user", identity.UserName)
	return post, nil
}

// Update replaces all content fields of post id. Every field must be present.
func (s *PostService) Update(ctx context.Context, identity *models.Identity, id int64, fields models.PostFields) (*models.Post, error) {
	if identity == nil {
		return nil, common.ErrorUnauthorized
	}
	if !fields.Complete() {
		return nil, common.ErrorValidation
	}

	post, err := dbx.InTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (*models.Post, error) {
		repo := s.repomanager.Posts(tx)

		post, err := repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if !CanModify(identity, post.Owner) {
			return nil, common.ErrorForbidden
		}

		post.Title = fields.Title
		post.Description = fields.Description
		post.Photo = fields.Photo
		if err := repo.Update(ctx, post); err != nil {
			return nil, err
		}
		return post, nil
	})
	if err != nil {
		return nil, s.mapErr(ctx, "update post", err)
	}

	s.log.Info(ctx, "post updated", "post_id", id, "user", identity.UserName)
	return post, nil
}

// Delete removes post id for good.
func (s *PostService) Delete(ctx context.Context, identity *models.Identity, id int64) error {
	if identity == nil {
		return common.ErrorUnauthorized
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Posts(tx)

		post, err := repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !CanModify(identity, post.Owner) {
			return common.ErrorForbidden
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return s.mapErr(ctx, "delete post", err)
	}

	s.log.Info(ctx, "post deleted", "post_id", id, "user", identity.UserName)
	return nil
}

// PhotoUploadURL returns a fresh object key and a presigned PUT URL for it.
func (s *PostService) PhotoUploadURL(ctx context.Context, identity *models.Identity) (*models.PhotoUpload, error) {
	if identity == nil {
		return nil, common.ErrorUnauthorized
	}
	if s.photos == nil {
		return nil, common.ErrorPhotosDisabled
	}

	upload, err := s.photos.PresignPut(ctx)
	if err != nil {
		return nil, s.internal(ctx, "presign photo upload", err)
	}
	return upload, nil
}

// PhotoURL returns a presigned GET URL for the photo of post id. Posts whose
// photo is not an issued upload key have no downloadable photo.
func (s *PostService) PhotoURL(ctx context.Context, id int64) (string, error) {
	if s.photos == nil {
		return "", common.ErrorPhotosDisabled
	}

	post, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if post.Photo == nil || *post.Photo == "" {
		return "", common.ErrorNotFound
	}
	// Only keys this server hands out are presigned, never arbitrary bucket paths.
	if !s.photos.ValidKey(*post.Photo) {
		s.log.Warn(ctx, "photo key rejected", "post_id", id, "key", *post.Photo)
		return "", common.ErrorNotFound
	}

	url, err := s.photos.PresignGet(ctx, *post.Photo)
	if err != nil {
		return "", s.internal(ctx, "presign photo download", err)
	}
	return url, nil
}

// mapErr passes the caller-visible sentinels through and collapses the rest.
func (s *PostService) mapErr(ctx context.Context, op string, err error) error {
	for _, known := range []error{common.ErrorNotFound, common.ErrorForbidden, common.ErrorValidation} {
		if errors.Is(err, known) {
			return known
		}
	}
	return s.internal(ctx, op, err)
}

func (s *PostService) internal(ctx context.Context, op string, err error) error {
	s.log.Error(ctx, op+" failed", "error", err)
	return common.ErrorInternal
}
