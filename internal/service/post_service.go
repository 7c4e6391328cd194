package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"budgetmate/internal/model"
	"budgetmate/internal/pkg"
	"budgetmate/internal/repository/mysql"
)

const (
	feedSecondDeleteDelay = 500 * time.Millisecond
	feedLockBackoff       = 50 * time.Millisecond
)

type PostService struct {
	posts    *mysql.PostRepository
	comments *mysql.CommentRepository
	likes    *mysql.PostLikeRepository
	cache    FeedCache
	log      *slog.Logger

	invalidateDelay time.Duration
}

type PostInput struct {
	Title    string
	Content  string
	Category string
}

func (in PostInput) validate() error {
	if blank(in.Title) || blank(in.Content) || blank(in.Category) {
		return pkg.Validation("Title, content and category are required")
	}
	return errors.Join(
		maxLen("Title", in.Title, model.TitleMaxLen),
		maxLen("Category", in.Category, model.CategoryMaxLen),
	)
}

// NewPostService wires the feed. cache may be nil, which disables caching.
func NewPostService(db *gorm.DB, cache FeedCache, log *slog.Logger) *PostService {
	return &PostService{
		posts:    &mysql.PostRepository{DB: db},
		comments: &mysql.CommentRepository{DB: db},
		likes:    &mysql.PostLikeRepository{DB: db},
		cache:    cache,
		log:      log,

		invalidateDelay: feedSecondDeleteDelay,
	}
}

// SetInvalidateDelay changes the gap before the second cache delete; 0 disables it.
func (s *PostService) SetInvalidateDelay(d time.Duration) {
	s.invalidateDelay = d
}

// List returns every post newest first with owners resolved.
func (s *PostService) List(ctx context.Context) ([]PostView, error) {
	if s.cache == nil {
		return s.loadFeed(ctx)
	}
	if feed, ok := s.cachedFeed(ctx); ok {
		return feed, nil
	}

	token := uuid.NewString()
	got, err := s.cache.Acquire(ctx, token)
	if err != nil {
		s.log.Warn("feed lock", "error", err)
		return s.loadFeed(ctx)
	}
	if got {
		defer func() {
			if err := s.cache.Release(context.Background(), token); err != nil {
				s.log.Warn("feed unlock", "error", err)
			}
		}()
		// Another holder may have filled it while we waited on the lock.
		if feed, ok := s.cachedFeed(ctx); ok {
			return feed, nil
		}
		feed, err := s.loadFeed(ctx)
		if err != nil {
			return nil, err
		}
		s.storeFeed(ctx, feed)
		return feed, nil
	}

	// Lost the race: back off once and read again before hitting the database.
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(feedLockBackoff):
	}
	if feed, ok := s.cachedFeed(ctx); ok {
		return feed, nil
	}
	return s.loadFeed(ctx)
}

func (s *PostService) loadFeed(ctx context.Context) ([]PostView, error) {
	list, err := s.posts.ListThreads(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	feed := make([]PostView, 0, len(list))
	for i := range list {
		feed = append(feed, NewPostView(&list[i]))
	}
	return feed, nil
}

func (s *PostService) cachedFeed(ctx context.Context) ([]PostView, bool) {
	b, ok, err := s.cache.Get(ctx)
	if err != nil {
		s.log.Warn("feed cache read", "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var feed []PostView
	if err := json.Unmarshal(b, &feed); err != nil {
		s.log.Warn("feed cache decode", "error", err)
		return nil, false
	}
	return feed, true
}

func (s *PostService) storeFeed(ctx context.Context, feed []PostView) {
	b, err := json.Marshal(feed)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, b); err != nil {
		s.log.Warn("feed cache write", "error", err)
	}
}

func (s *PostService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, s.invalidateDelay); err != nil {
		s.log.Warn("feed cache invalidate", "error", err)
	}
}

func (s *PostService) thread(ctx context.Context, postID uint64) (*PostView, error) {
	p, err := s.posts.FindThread(ctx, postID)
	if err != nil {
		return nil, notFoundOr(err, "Post not found")
	}
	v := NewPostView(p)
	return &v, nil
}

func (s *PostService) findPost(ctx context.Context, postID uint64) (*model.Post, error) {
	p, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, notFoundOr(err, "Post not found")
	}
	return p, nil
}

func (s *PostService) findComment(ctx context.Context, postID, commentID uint64) (*model.Comment, error) {
	c, err := s.comments.Find(ctx, postID, commentID)
	if err != nil {
		return nil, notFoundOr(err, "Comment not found")
	}
	return c, nil
}

func (s *PostService) Create(ctx context.Context, actor Actor, in PostInput) (*PostView, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p := &model.Post{
		UserID:   actor.ID,
		Title:    in.Title,
		Content:  in.Content,
		Category: in.Category,
	}
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	s.invalidate(ctx)
	return s.thread(ctx, p.ID)
}

// Update lets only the owner edit; admins get no override.
func (s *PostService) Update(ctx context.Context, actor Actor, postID uint64, in PostInput) (*PostView, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(p.UserID) {
		return nil, errNotAuthorized
	}
	if err := s.posts.UpdateContent(ctx, p, in.Title, in.Content, in.Category); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	s.invalidate(ctx)
	return s.thread(ctx, p.ID)
}

// ToggleLike removes the actor's like if present, otherwise appends it.
func (s *PostService) ToggleLike(ctx context.Context, actor Actor, postID uint64) (*PostView, error) {
	if _, err := s.findPost(ctx, postID); err != nil {
		return nil, err
	}
	if _, err := s.likes.Toggle(ctx, postID, actor.ID); err != nil {
		return nil, fmt.Errorf("toggle like: %w", err)
	}
	s.invalidate(ctx)
	return s.thread(ctx, postID)
}

func (s *PostService) AddComment(ctx context.Context, actor Actor, postID uint64, text string) (*PostView, error) {
	if blank(text) {
		return nil, pkg.Validation("Text is required")
	}
	if _, err := s.findPost(ctx, postID); err != nil {
		return nil, err
	}
	c := &model.Comment{PostID: postID, UserID: actor.ID, Text: text}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	s.invalidate(ctx)
	return s.thread(ctx, postID)
}

func (s *PostService) UpdateComment(ctx context.Context, actor Actor, postID, commentID uint64, text string) (*PostView, error) {
	if blank(text) {
		return nil, pkg.Validation("Text is required")
	}
	if _, err := s.findPost(ctx, postID); err != nil {
		return nil, err
	}
	c, err := s.findComment(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(c.UserID) {
		return nil, errNotAuthorized
	}
	if err := s.comments.UpdateText(ctx, c, text); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	s.invalidate(ctx)
	return s.thread(ctx, postID)
}

// DeleteComment removes a comment. An admin removing someone else's comment leaves the owner a
// warning that names the parent post.
func (s *PostService) DeleteComment(ctx context.Context, actor Actor, postID, commentID uint64) (*PostView, error) {
	p, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	c, err := s.findComment(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	allowed, override := actor.CanDelete(c.UserID)
	if !allowed {
		return nil, errNotAuthorized
	}
	var notice *model.Notification
	if override {
		s.log.Info("comment removed by admin", "admin", actor.Name, "admin_id", actor.ID, "post_id", postID, "comment_id", c.ID, "owner_id", c.UserID)
		notice = &model.Notification{
			UserID:  c.UserID,
			Message: CommentRemovedMessage(p.Title),
			Type:    model.NotificationWarning,
		}
	}
	if err := s.comments.DeleteWithNotice(ctx, c, notice); err != nil {
		return nil, notFoundOr(err, "Comment not found")
	}
	s.invalidate(ctx)
	return s.thread(ctx, postID)
}

// DeletePost hard-deletes a post with its comments and likes. Comment owners are not notified.
func (s *PostService) DeletePost(ctx context.Context, actor Actor, postID uint64) error {
	p, err := s.findPost(ctx, postID)
	if err != nil {
		return err
	}
	allowed, override := actor.CanDelete(p.UserID)
	if !allowed {
		return errNotAuthorized
	}
	var notice *model.Notification
	if override {
		s.log.Info("post removed by admin", "admin", actor.Name, "admin_id", actor.ID, "post_id", p.ID, "owner_id", p.UserID)
		notice = &model.Notification{
			UserID:  p.UserID,
			Message: PostRemovedMessage(p.Title),
			Type:    model.NotificationWarning,
		}
	}
	if err := s.posts.DeleteWithNotice(ctx, p.ID, notice); err != nil {
		return notFoundOr(err, "Post not found")
	}
	s.invalidate(ctx)
	return nil
}

func CommentRemovedMessage(postTitle string) string {
	return fmt.Sprintf("Your comment on post \"%s\" was deleted by an admin because it violated community guidelines.", postTitle)
}

func PostRemovedMessage(postTitle string) string {
	return fmt.Sprintf("Your post \"%s\" was deleted by an admin because it violated community guidelines.", postTitle)
}
