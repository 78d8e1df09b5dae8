package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// openPosts returns a private in-memory database holding an empty posts table.
func openPosts(t *testing.T) *sql.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE posts (id INTEGER PRIMARY KEY, user_name TEXT NOT NULL, title TEXT)`)
	require.NoError(t, err)
	return db
}

func countPosts(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&n))
	return n
}

func insertPost(ctx context.Context, tx DBTX, owner string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO posts (user_name, title) VALUES (?, 'hello')`, owner)
	return err
}

func TestWithTx_CommitOrRollback(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name     string
		fnErr    error
		wantRows int
	}{
		{name: "commit on success", wantRows: 1},
		{name: "rollback on error", fnErr: boom, wantRows: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := openPosts(t)

			err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
				require.NoError(t, insertPost(ctx, tx, "alice"))
				return tt.fnErr
			})

			assert.ErrorIs(t, err, tt.fnErr)
			assert.Equal(t, tt.wantRows, countPosts(t, db))
		})
	}
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	db := openPosts(t)

	require.PanicsWithValue(t, "kaput", func() {
		_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
			require.NoError(t, insertPost(ctx, tx, "alice"))
			panic("kaput")
		})
	})
	assert.Equal(t, 0, countPosts(t, db))
}

func TestWithTx_BeginError(t *testing.T) {
	db := openPosts(t)
	require.NoError(t, db.Close())

	called := false
	err := WithTx(context.Background(), db, nil, func(context.Context, DBTX) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, called)
}

func TestInTx_ReturnsValueAfterCommit(t *testing.T) {
	db := openPosts(t)

	id, err := InTx(context.Background(), db, func(ctx context.Context, tx DBTX) (int64, error) {
		res, err := tx.ExecContext(ctx, `INSERT INTO posts (user_name) VALUES ('bob')`)
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	})
	require.NoError(t, err)
	assert.Positive(t, id)
	assert.Equal(t, 1, countPosts(t, db))
}

func TestInTx_ZeroValueOnError(t *testing.T) {
	db := openPosts(t)

	got, err := InTx(context.Background(), db, func(ctx context.Context, tx DBTX) (string, error) {
		require.NoError(t, insertPost(ctx, tx, "bob"))
		return "partial", errors.New("boom")
	})
	require.Error(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 0, countPosts(t, db), "insert is rolled back")
}
