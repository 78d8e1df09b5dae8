package rest

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/postboard/internal/common"
	"github.com/dmitrijs2005/postboard/internal/logging"
	"github.com/dmitrijs2005/postboard/internal/server/models"
)

type fakeUsers struct {
	tokens      map[string]string
	registerErr error
	loginErr    error
}

func (f *fakeUsers) Register(_ context.Context, name, _ string) (string, error) {
	if f.registerErr != nil {
		return "", f.registerErr
	}
	return "tok-" + name, nil
}

func (f *fakeUsers) Login(_ context.Context, name, _ string) (string, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return "tok-" + name, nil
}

func (f *fakeUsers) Resolve(_ context.Context, token string) (*models.Identity, error) {
	name, ok := f.tokens[token]
	if token == "" || !ok {
		return nil, fmt.Errorf("%w: %w", common.ErrorUnauthorized, common.ErrInvalidToken)
	}
	return &models.Identity{UserName: name}, nil
}

type fakePosts struct {
	posts     map[int64]*models.Post
	nextID    int64
	err       error
	noPhotos  bool
	createdBy string
}

func newFakePosts() *fakePosts { return &fakePosts{posts: map[int64]*models.Post{}} }

func (f *fakePosts) List(context.Context) ([]*models.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*models.Post, 0, len(f.posts))
	for i := int64(1); i <= f.nextID; i++ {
		if p, ok := f.posts[i]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePosts) Get(_ context.Context, id int64) (*models.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.posts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (f *fakePosts) Create(_ context.Context, id *models.Identity, fields models.PostFields) (*models.Post, error) {
	f.nextID++
	f.createdBy = id.UserName
	p := &models.Post{ID: f.nextID, Owner: id.UserName, Title: fields.Title, Description: fields.Description, Photo: fields.Photo}
	f.posts[p.ID] = p
	return p, nil
}

func (f *fakePosts) Update(ctx context.Context, id *models.Identity, postID int64, fields models.PostFields) (*models.Post, error) {
	if !fields.Complete() {
		return nil, common.ErrorValidation
	}
	p, err := f.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if id.UserName != p.Owner {
		return nil, common.ErrorForbidden
	}
	p.Title, p.Description, p.Photo = fields.Title, fields.Description, fields.Photo
	return p, nil
}

func (f *fakePosts) Delete(ctx context.Context, id *models.Identity, postID int64) error {
	p, err := f.Get(ctx, postID)
	if err != nil {
		return err
	}
	if id.UserName != p.Owner {
		return common.ErrorForbidden
	}
	delete(f.posts, postID)
	return nil
}

func (f *fakePosts) PhotoUploadURL(_ context.Context, id *models.Identity) (*models.PhotoUpload, error) {
	if f.noPhotos {
		return nil, common.ErrorPhotosDisabled
	}
	return &models.PhotoUpload{Key: "k-" + id.UserName, URL: "http://put"}, nil
}

func (f *fakePosts) PhotoURL(ctx context.Context, postID int64) (string, error) {
	if f.noPhotos {
		return "", common.ErrorPhotosDisabled
	}
	if _, err := f.Get(ctx, postID); err != nil {
		return "", err
	}
	return "http://get", nil
}

type fakeLimiter struct {
	allow bool
	err   error
	keys  []string
}

func (l *fakeLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.keys = append(l.keys, key)
	return l.allow, l.err
}

// recLogger keeps log messages for assertions.
type recLogger struct {
	mu   sync.Mutex
	msgs []string
}

func (r *recLogger) rec(level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, level+":"+msg)
}

func (r *recLogger) Debug(_ context.Context, msg string, _ ...any) { r.rec("debug", msg) }
func (r *recLogger) Info(_ context.Context, msg string, _ ...any)  { r.rec("info", msg) }
func (r *recLogger) Warn(_ context.Context, msg string, _ ...any)  { r.rec("warn", msg) }
func (r *recLogger) Error(_ context.Context, msg string, _ ...any) { r.rec("error", msg) }
func (r *recLogger) With(...any) logging.Logger                    { return r }
