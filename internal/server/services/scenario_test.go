package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/postboard/internal/common"
	"github.com/dmitrijs2005/postboard/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two users, one post: tokens resolve to their owners, only the owner can
// change the post, and a new login revokes the old token.
func TestOwnershipScenario(t *testing.T) {
	db, mock := newSQLMockDB(t)
	store := newMemStore()
	users := newUserService(t, db, store)
	posts := newPostService(t, db, store, nil)
	ctx := context.Background()

	expectCommit(mock, 3) // two registrations, one create
	aliceToken, err := users.Register(ctx, "alice", "pw1")
	require.NoError(t, err)
	bobToken, err := users.Register(ctx, "bob", "pw2")
	require.NoError(t, err)

	aliceID, err := users.Resolve(ctx, aliceToken)
	require.NoError(t, err)
	bobID, err := users.Resolve(ctx, bobToken)
	require.NoError(t, err)

	p, err := posts.Create(ctx, aliceID, models.PostFields{Title: strptr("hi")})
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Owner)

	expectRollback(mock)
	_, err = posts.Update(ctx, bobID, p.ID, fullFields("x"))
	assert.ErrorIs(t, err, common.ErrorForbidden)

	expectRollback(mock)
	assert.ErrorIs(t, posts.Delete(ctx, bobID, p.ID), common.ErrorForbidden)

	expectCommit(mock, 1)
	updated, err := posts.Update(ctx, aliceID, p.ID, fullFields("hi2"))
	require.NoError(t, err)
	assert.Equal(t, "hi2", *updated.Title)

	expectCommit(mock, 1)
	fresh, err := users.Login(ctx, "alice", "pw1")
	require.NoError(t, err)

	_, err = users.Resolve(ctx, aliceToken)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	id, err := users.Resolve(ctx, fresh)
	require.NoError(t, err)

	expectCommit(mock, 1)
	require.NoError(t, posts.Delete(ctx, id, p.ID))

	_, err = posts.Get(ctx, p.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
