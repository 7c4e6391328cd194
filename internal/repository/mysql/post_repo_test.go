package mysql_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"budgetmate/internal/model"
	"budgetmate/internal/repository/mysql"
	"budgetmate/internal/testutil"
)

func TestPostThreadOrdering(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice", model.RoleUser)
	bob := testutil.CreateUser(t, db, "bob", model.RoleUser)

	posts := &mysql.PostRepository{DB: db}
	comments := &mysql.CommentRepository{DB: db}
	likes := &mysql.PostLikeRepository{DB: db}

	first := &model.Post{UserID: alice.ID, Title: "first", Content: "c", Category: "Savings"}
	second := &model.Post{UserID: bob.ID, Title: "second", Content: "c", Category: "Budget"}
	require.NoError(t, posts.Create(ctx, first))
	require.NoError(t, posts.Create(ctx, second))

	require.NoError(t, comments.Create(ctx, &model.Comment{PostID: first.ID, UserID: bob.ID, Text: "c1"}))
	require.NoError(t, comments.Create(ctx, &model.Comment{PostID: first.ID, UserID: alice.ID, Text: "c2"}))

	_, err := likes.Toggle(ctx, first.ID, bob.ID)
	require.NoError(t, err)
	_, err = likes.Toggle(ctx, first.ID, alice.ID)
	require.NoError(t, err)

	list, err := posts.ListThreads(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Title)
	assert.Equal(t, "bob", list[0].Author.Name)

	thread := list[1]
	require.Len(t, thread.Comments, 2)
	assert.Equal(t, "c2", thread.Comments[0].Text)
	assert.Equal(t, "alice", thread.Comments[0].Author.Name)
	assert.Equal(t, "c1", thread.Comments[1].Text)
	require.Len(t, thread.Likes, 2)
	assert.Equal(t, bob.ID, thread.Likes[0].UserID)
	assert.Equal(t, alice.ID, thread.Likes[1].UserID)
}

func TestToggleLikeFlips(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice", model.RoleUser)
	posts := &mysql.PostRepository{DB: db}
	likes := &mysql.PostLikeRepository{DB: db}

	p := &model.Post{UserID: alice.ID, Title: "t", Content: "c", Category: "x"}
	require.NoError(t, posts.Create(ctx, p))

	liked, err := likes.Toggle(ctx, p.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	thread, err := posts.FindThread(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, thread.Likes, 1)
	assert.Equal(t, alice.ID, thread.Likes[0].UserID)

	liked, err = likes.Toggle(ctx, p.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	thread, err = posts.FindThread(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, thread.Likes)
}

func TestToggleLikeToleratesConcurrentInsert(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice", model.RoleUser)
	posts := &mysql.PostRepository{DB: db}
	likes := &mysql.PostLikeRepository{DB: db}

	p := &model.Post{UserID: alice.ID, Title: "t", Content: "c", Category: "x"}
	require.NoError(t, posts.Create(ctx, p))

	// Another toggle commits the same like right after ours reads "not liked".
	raced := false
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:concurrent_like", func(tx *gorm.DB) {
		if raced || tx.Statement.Table != "post_likes" {
			return
		}
		raced = true
		tx.Session(&gorm.Session{NewDB: true}).
			Exec("INSERT INTO post_likes (post_id, user_id, created_at) VALUES (?, ?, ?)", p.ID, alice.ID, time.Now().UTC())
	}))
	t.Cleanup(func() { _ = db.Callback().Query().Remove("test:concurrent_like") })

	liked, err := likes.Toggle(ctx, p.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.True(t, raced)

	var n int64
	require.NoError(t, db.Model(&model.PostLike{}).Where("post_id = ?", p.ID).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestDeletePostWithNotice(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice", model.RoleUser)
	posts := &mysql.PostRepository{DB: db}
	comments := &mysql.CommentRepository{DB: db}
	likes := &mysql.PostLikeRepository{DB: db}
	notices := &mysql.NotificationRepository{DB: db}
	outbox := &mysql.OutboxRepository{DB: db}

	p := &model.Post{UserID: alice.ID, Title: "t", Content: "c", Category: "x"}
	require.NoError(t, posts.Create(ctx, p))
	require.NoError(t, comments.Create(ctx, &model.Comment{PostID: p.ID, UserID: alice.ID, Text: "hi"}))
	_, err := likes.Toggle(ctx, p.ID, alice.ID)
	require.NoError(t, err)

	notice := &model.Notification{UserID: alice.ID, Message: "removed", Type: model.NotificationWarning}
	require.NoError(t, posts.DeleteWithNotice(ctx, p.ID, notice))

	_, err = posts.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, mysql.ErrNotFound)

	var left int64
	require.NoError(t, db.Model(&model.Comment{}).Where("post_id = ?", p.ID).Count(&left).Error)
	assert.Zero(t, left)
	require.NoError(t, db.Model(&model.PostLike{}).Where("post_id = ?", p.ID).Count(&left).Error)
	assert.Zero(t, left)

	got, err := notices.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "removed", got[0].Message)

	due, err := outbox.ListDue(ctx, 10, 5)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, model.EventPostRemoved, due[0].EventType)
	assert.Equal(t, got[0].ID, due[0].NotificationID)
}

func TestDeleteMissingPostRollsBackNotice(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice", model.RoleUser)
	posts := &mysql.PostRepository{DB: db}
	notices := &mysql.NotificationRepository{DB: db}

	notice := &model.Notification{UserID: alice.ID, Message: "removed", Type: model.NotificationWarning}
	err := posts.DeleteWithNotice(ctx, 999, notice)
	assert.ErrorIs(t, err, mysql.ErrNotFound)

	got, err := notices.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCommentFindIsScopedToPost(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice", model.RoleUser)
	posts := &mysql.PostRepository{DB: db}
	comments := &mysql.CommentRepository{DB: db}

	a := &model.Post{UserID: alice.ID, Title: "a", Content: "c", Category: "x"}
	b := &model.Post{UserID: alice.ID, Title: "b", Content: "c", Category: "x"}
	require.NoError(t, posts.Create(ctx, a))
	require.NoError(t, posts.Create(ctx, b))
	c := &model.Comment{PostID: a.ID, UserID: alice.ID, Text: "on a"}
	require.NoError(t, comments.Create(ctx, c))

	_, err := comments.Find(ctx, b.ID, c.ID)
	assert.ErrorIs(t, err, mysql.ErrNotFound)

	found, err := comments.Find(ctx, a.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "on a", found.Text)
}
