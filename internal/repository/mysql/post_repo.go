package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"budgetmate/internal/model"
)

type PostRepository struct {
	DB *gorm.DB
}

// withThread preloads the owner, likes in like order, and comments newest first with their owners.
func withThread(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Likes", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Preload("Comments", func(tx *gorm.DB) *gorm.DB { return tx.Order("id DESC") }).
		Preload("Comments.Author")
}

func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(post).Error
}

// FindByID loads the bare post row.
func (r *PostRepository) FindByID(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.WithContext(ctx).First(&post, id).Error
	return &post, err
}

// FindThread loads the post with owner, likes and comments resolved.
func (r *PostRepository) FindThread(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := withThread(r.DB.WithContext(ctx)).First(&post, id).Error
	return &post, err
}

// ListThreads returns every post newest first.
func (r *PostRepository) ListThreads(ctx context.Context) ([]model.Post, error) {
	var list []model.Post
	err := withThread(r.DB.WithContext(ctx)).
		Order("created_at DESC, id DESC").
		Find(&list).Error
	return list, err
}

func (r *PostRepository) UpdateContent(ctx context.Context, post *model.Post, title, content, category string) error {
	return r.DB.WithContext(ctx).Model(post).Omit(clause.Associations).Updates(map[string]any{
		"title":    title,
		"content":  content,
		"category": category,
	}).Error
}

// DeleteWithNotice hard-deletes the post with its comments and likes. A non-nil notice is
// stored first, together with its outbox row, in the same transaction.
func (r *PostRepository) DeleteWithNotice(ctx context.Context, postID uint64, notice *model.Notification) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if notice != nil {
			if err := insertNotice(tx, model.EventPostRemoved, postID, notice); err != nil {
				return err
			}
		}
		if err := tx.Where("post_id = ?", postID).Delete(&model.PostLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Post{}, postID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
