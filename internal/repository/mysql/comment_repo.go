package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"budgetmate/internal/model"
)

type CommentRepository struct {
	DB *gorm.DB
}

func (r *CommentRepository) Create(ctx context.Context, c *model.Comment) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(c).Error
}

// Find resolves a comment only within its parent post.
func (r *CommentRepository) Find(ctx context.Context, postID, commentID uint64) (*model.Comment, error) {
	var c model.Comment
	err := r.DB.WithContext(ctx).Where("post_id = ? AND id = ?", postID, commentID).First(&c).Error
	return &c, err
}

func (r *CommentRepository) UpdateText(ctx context.Context, c *model.Comment, text string) error {
	return r.DB.WithContext(ctx).Model(c).Omit(clause.Associations).Update("text", text).Error
}

// DeleteWithNotice removes the comment; a non-nil notice is stored first in the same transaction.
func (r *CommentRepository) DeleteWithNotice(ctx context.Context, c *model.Comment, notice *model.Notification) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if notice != nil {
			if err := insertNotice(tx, model.EventCommentRemoved, c.PostID, notice); err != nil {
				return err
			}
		}
		res := tx.Where("post_id = ?", c.PostID).Delete(&model.Comment{}, c.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
