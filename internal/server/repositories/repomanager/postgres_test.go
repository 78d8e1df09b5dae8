package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/postboard/internal/server/migrations"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubGooseUp(t *testing.T, fn func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error) {
	t.Helper()
	orig := gooseUpContext
	gooseUpContext = fn
	t.Cleanup(func() { gooseUpContext = orig })
}

func TestRepositoriesAreBoundToGivenDBTX(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	m := NewPostgresRepositoryManager()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM users\s+WHERE user_name = \$1`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"user_name", "password", "token"}).AddRow("alice", "h", nil))
	mock.ExpectQuery(regexp.QuoteMeta("FROM posts ORDER BY id")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_name", "title", "description", "photo"}))
	mock.ExpectCommit()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	u, err := m.Users(tx).GetUserByName(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.UserName)

	list, err := m.Posts(tx).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_UsesEmbeddedRoot(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var gotDir string
	stubGooseUp(t, func(_ context.Context, _ *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		gotDir = dir
		assert.Empty(t, opts)
		return nil
	})

	require.NoError(t, NewPostgresRepositoryManager().RunMigrations(context.Background(), db))
	assert.Equal(t, ".", gotDir)
}

func TestRunMigrations_WrapsError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("boom")
	stubGooseUp(t, func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error { return boom })

	err = NewPostgresRepositoryManager().RunMigrations(context.Background(), db)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "migrate")
}

func TestEmbeddedMigrations(t *testing.T) {
	names, err := fs.Glob(migrations.Migrations, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	body, err := fs.ReadFile(migrations.Migrations, names[0])
	require.NoError(t, err)
	for _, want := range []string{"-- +goose Up", "CREATE TABLE IF NOT EXISTS users", "CREATE TABLE IF NOT EXISTS posts", "-- +goose Down"} {
		assert.Contains(t, string(body), want)
	}
}
