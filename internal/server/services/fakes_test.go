package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/postboard/internal/common"
	"github.com/dmitrijs2005/postboard/internal/dbx"
	"github.com/dmitrijs2005/postboard/internal/server/models"
	"github.com/dmitrijs2005/postboard/internal/server/repositories/posts"
	"github.com/dmitrijs2005/postboard/internal/server/repositories/users"
)

var errBoom = errors.New("boom")

// memStore backs both fake repositories. Transactions are only simulated
// by sqlmock, so a failed tx does not roll the store back.
type memStore struct {
	mu     sync.Mutex
	users  map[string]models.User
	posts  map[int64]models.Post
	nextID int64

	// injected failures
	getUserErr     error
	createUserErr  error
	updateTokenErr error
	postsErr       error
}

func newMemStore() *memStore {
	return &memStore{users: map[string]models.User{}, posts: map[int64]models.Post{}}
}

type fakeUsersRepo struct{ s *memStore }

func (r fakeUsersRepo) Create(_ context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.createUserErr != nil {
		return r.s.createUserErr
	}
	if _, ok := r.s.users[u.UserName]; ok {
		return common.ErrorConflict
	}
	r.s.users[u.UserName] = *u
	return nil
}

func (r fakeUsersRepo) GetUserByName(_ context.Context, name string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.getUserErr != nil {
		return nil, r.s.getUserErr
	}
	u, ok := r.s.users[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r fakeUsersRepo) UpdateToken(_ context.Context, name, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.updateTokenErr != nil {
		return r.s.updateTokenErr
	}
	u, ok := r.s.users[name]
	if !ok {
		return common.ErrorNotFound
	}
	u.Token = token
	r.s.users[name] = u
	return nil
}

type fakePostsRepo struct{ s *memStore }

func (r fakePostsRepo) Create(_ context.Context, p *models.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.postsErr != nil {
		return r.s.postsErr
	}
	r.s.nextID++
	p.ID = r.s.nextID
	r.s.posts[p.ID] = *p
	return nil
}

func (r fakePostsRepo) GetByID(_ context.Context, id int64) (*models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.postsErr != nil {
		return nil, r.s.postsErr
	}
	p, ok := r.s.posts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &p, nil
}

func (r fakePostsRepo) GetByIDForUpdate(ctx context.Context, id int64) (*models.Post, error) {
	return r.GetByID(ctx, id)
}

func (r fakePostsRepo) List(_ context.Context) ([]*models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.postsErr != nil {
		return nil, r.s.postsErr
	}
	out := make([]*models.Post, 0, len(r.s.posts))
	for _, p := range r.s.posts {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakePostsRepo) Update(_ context.Context, p *models.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[p.ID]; !ok {
		return common.ErrorNotFound
	}
	r.s.posts[p.ID] = *p
	return nil
}

func (r fakePostsRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.posts, id)
	return nil
}

type fakeRepoManager struct{ s *memStore }

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository             { return fakeUsersRepo{m.s} }
func (m *fakeRepoManager) Posts(dbx.DBTX) posts.Repository             { return fakePostsRepo{m.s} }

type fakePhotoStore struct {
	putErr error
	getErr error
	gotKey string
}

func (f *fakePhotoStore) PresignPut(context.Context) (*models.PhotoUpload, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &models.PhotoUpload{Key: "photos/k1", URL: "http://s3/put/photos/k1"}, nil
}

func (f *fakePhotoStore) ValidKey(key string) bool {
	return strings.HasPrefix(key, "photos/")
}

func (f *fakePhotoStore) PresignGet(_ context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	f.gotKey = key
	return "http://s3/get/" + key, nil
}

// newSQLMockDB returns a db whose transactions all succeed unless the test
// queues its own expectations.
func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func expectCommit(mock sqlmock.Sqlmock, n int) {
	for i := 0; i < n; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
	}
}

func expectRollback(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectRollback()
}

func strptr(s string) *string { return &s }
