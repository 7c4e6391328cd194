package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"budgetmate/internal/model"
)

type PostLikeRepository struct {
	DB *gorm.DB
}

// Toggle removes the user's like if present and adds it otherwise. It reports the new state.
func (r *PostLikeRepository) Toggle(ctx context.Context, postID, userID uint64) (bool, error) {
	var liked bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pl model.PostLike
		err := tx.Where("post_id = ? AND user_id = ?", postID, userID).First(&pl).Error
		switch {
		case err == nil:
			liked = false
			return tx.Delete(&pl).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			liked = true
			// A concurrent toggle may have inserted the pair since the read; keep its row.
			return tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&model.PostLike{PostID: postID, UserID: userID}).Error
		default:
			return err
		}
	})
	return liked, err
}
