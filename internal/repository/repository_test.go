package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"blogapi/internal/model"
	"blogapi/internal/platform/database/dbtest"
)

type repos struct {
	db       *gorm.DB
	users    *UserRepository
	posts    *PostRepository
	comments *CommentRepository
}

func newRepos(t *testing.T) repos {
	db := dbtest.NewTestDB(t)
	return repos{
		db:       db,
		users:    NewUserRepository(db),
		posts:    NewPostRepository(db),
		comments: NewCommentRepository(db),
	}
}

func (r repos) user(t *testing.T, name string) *model.User {
	t.Helper()
	u := &model.User{Username: name, PasswordHash: "hash"}
	require.NoError(t, r.users.Create(context.Background(), u))
	return u
}

func (r repos) post(t *testing.T, authorID uint, title string) *model.Post {
	t.Helper()
	p := &model.Post{Title: title, Content: "content", AuthorID: authorID}
	require.NoError(t, r.posts.Create(context.Background(), p))
	return p
}

func TestUserRepository(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	alice := r.user(t, "alice")

	err := r.users.Create(ctx, &model.User{Username: "alice", PasswordHash: "other"})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	found, err := r.users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, alice.ID, found.ID)
	assert.Equal(t, "hash", found.PasswordHash)

	missing, err := r.users.GetByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPostViews(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	alice := r.user(t, "alice")
	first := r.post(t, alice.ID, "first")
	second := r.post(t, alice.ID, "second")
	require.NoError(t, r.comments.Create(ctx, &model.Comment{Content: "c", PostID: first.ID, AuthorID: alice.ID}))

	view, err := r.posts.GetView(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, "alice", view.Author)
	assert.Equal(t, int64(1), view.CommentCount)
	assert.False(t, view.CreatedAt.IsZero())

	none, err := r.posts.GetView(ctx, second.ID+10)
	require.NoError(t, err)
	assert.Nil(t, none)

	recent, err := r.posts.ListRecent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, second.ID, recent[0].ID)

	exists, err := r.posts.Exists(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = r.posts.Exists(ctx, second.ID+10)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPostConditionedMutations(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	alice := r.user(t, "alice")
	bob := r.user(t, "bob1")
	post := r.post(t, alice.ID, "title")
	require.NoError(t, r.comments.Create(ctx, &model.Comment{Content: "c1", PostID: post.ID, AuthorID: bob.ID}))
	require.NoError(t, r.comments.Create(ctx, &model.Comment{Content: "c2", PostID: post.ID, AuthorID: alice.ID}))

	ok, err := r.posts.UpdateByIDAndAuthorID(ctx, post.ID, bob.ID, "hijack", "x")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = r.posts.DeleteByIDAndAuthorID(ctx, post.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	view, err := r.posts.GetView(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "title", view.Title)
	assert.Equal(t, int64(2), view.CommentCount)

	ok, err = r.posts.UpdateByIDAndAuthorID(ctx, post.ID, alice.ID, "renamed", "body")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.posts.DeleteByIDAndAuthorID(ctx, post.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	comments, err := r.comments.ListByPostID(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestCommentRepository(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	alice := r.user(t, "alice")
	bob := r.user(t, "bob1")
	post := r.post(t, alice.ID, "title")

	err := r.comments.Create(ctx, &model.Comment{Content: "orphan", PostID: post.ID + 100, AuthorID: bob.ID})
	assert.ErrorIs(t, err, ErrForeignKey)

	c := &model.Comment{Content: "hello", PostID: post.ID, AuthorID: bob.ID}
	require.NoError(t, r.comments.Create(ctx, c))

	view, err := r.comments.GetView(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob1", view.Author)

	ok, err := r.comments.UpdateByIDAndAuthorID(ctx, c.ID, alice.ID, "edited")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = r.comments.UpdateByIDAndAuthorID(ctx, c.ID, bob.ID, "edited")
	require.NoError(t, err)
	assert.True(t, ok)

	recent, err := r.comments.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "edited", recent[0].Content)

	ok, err = r.comments.DeleteByIDAndAuthorID(ctx, c.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = r.comments.DeleteByIDAndAuthorID(ctx, c.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	gone, err := r.comments.GetView(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestActivityRepository(t *testing.T) {
	db := dbtest.NewTestDB(t)
	repo := NewActivityRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Activity{Resource: model.ResourcePost, Action: model.ActionCreated, ResourceID: 1, ActorID: 2}))
	require.NoError(t, repo.Create(ctx, &model.Activity{Resource: model.ResourcePost, Action: model.ActionDeleted, ResourceID: 1, ActorID: 2}))
	require.NoError(t, repo.Create(ctx, &model.Activity{Resource: model.ResourceComment, Action: model.ActionCreated, ResourceID: 1, ActorID: 2}))

	list, err := repo.ListByResource(ctx, model.ResourcePost, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, model.ActionCreated, list[0].Action)
	assert.Equal(t, model.ActionDeleted, list[1].Action)
}
