package server

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/postboard/internal/dbx"
	"github.com/dmitrijs2005/postboard/internal/server/config"
	"github.com/dmitrijs2005/postboard/internal/server/repositories/posts"
	"github.com/dmitrijs2005/postboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/postboard/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepoManager struct {
	migrateErr error
	migrated   bool
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error {
	m.migrated = true
	return m.migrateErr
}
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository { return users.NewPostgresRepository(db) }
func (m *fakeRepoManager) Posts(db dbx.DBTX) posts.Repository { return posts.NewPostgresRepository(db) }

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.LogLevel = "error"
	c.S3Bucket = ""
	return c
}

// stubStorage swaps the db and repository manager seams for the test.
func stubStorage(t *testing.T, rm *fakeRepoManager) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	origOpen, origRM := openDB, newRepositoryManager
	t.Cleanup(func() {
		openDB, newRepositoryManager = origOpen, origRM
	})

	openDB = func(string) (*sql.DB, error) { return db, nil }
	newRepositoryManager = func() repomanager.RepositoryManager { return rm }
	return mock
}

func TestNewApp_Success(t *testing.T) {
	rm := &fakeRepoManager{}
	mock := stubStorage(t, rm)
	mock.ExpectPing()

	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)
	assert.True(t, rm.migrated)
	assert.Nil(t, app.redis)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewApp_Errors(t *testing.T) {
	t.Run("bad log level", func(t *testing.T) {
		c := testConfig()
		c.LogLevel = "loud"
		_, err := NewApp(context.Background(), c)
		assert.ErrorContains(t, err, "logger init error")
	})

	t.Run("bad password scheme", func(t *testing.T) {
		c := testConfig()
		c.PasswordScheme = "md5"
		_, err := NewApp(context.Background(), c)
		assert.ErrorContains(t, err, "password hasher init error")
	})

	t.Run("ping fails", func(t *testing.T) {
		mock := stubStorage(t, &fakeRepoManager{})
		mock.ExpectPing().WillReturnError(errors.New("refused"))
		mock.ExpectClose()

		_, err := NewApp(context.Background(), testConfig())
		assert.ErrorContains(t, err, "db ping error")
	})

	t.Run("migrations fail", func(t *testing.T) {
		mock := stubStorage(t, &fakeRepoManager{migrateErr: errors.New("bad sql")})
		mock.ExpectPing()
		mock.ExpectClose()

		_, err := NewApp(context.Background(), testConfig())
		assert.ErrorContains(t, err, "migrations error")
	})
}

func TestRun_StopsOnCancel(t *testing.T) {
	mock := stubStorage(t, &fakeRepoManager{})
	mock.ExpectPing()
	mock.ExpectClose()

	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop after cancel")
	}
	require.NoError(t, mock.ExpectationsWereMet())
}
