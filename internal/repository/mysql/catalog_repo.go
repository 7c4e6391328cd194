package mysql

import (
	"context"

	"gorm.io/gorm"

	"budgetmate/internal/model"
)

type ArticleRepository struct {
	DB *gorm.DB
}

type JobRepository struct {
	DB *gorm.DB
}

// ListPublished returns published articles newest first.
func (r *ArticleRepository) ListPublished(ctx context.Context) ([]model.Article, error) {
	var list []model.Article
	err := r.DB.WithContext(ctx).Where("is_published = ?", true).Order("created_at DESC, id DESC").Find(&list).Error
	return list, err
}

func (r *ArticleRepository) Create(ctx context.Context, a *model.Article) error {
	return r.DB.WithContext(ctx).Create(a).Error
}

func (r *ArticleRepository) FindByID(ctx context.Context, id uint64) (*model.Article, error) {
	var a model.Article
	err := r.DB.WithContext(ctx).First(&a, id).Error
	return &a, err
}

func (r *ArticleRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Article{}).Where("title = ?", title).Count(&n).Error
	return n > 0, err
}

func (r *ArticleRepository) Save(ctx context.Context, a *model.Article) error {
	return r.DB.WithContext(ctx).Save(a).Error
}

// Delete reports ErrNotFound when no row matched.
func (r *ArticleRepository) Delete(ctx context.Context, id uint64) error {
	res := r.DB.WithContext(ctx).Delete(&model.Article{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *JobRepository) ListPublished(ctx context.Context) ([]model.Job, error) {
	var list []model.Job
	err := r.DB.WithContext(ctx).Where("is_published = ?", true).Order("created_at DESC, id DESC").Find(&list).Error
	return list, err
}

func (r *JobRepository) Create(ctx context.Context, j *model.Job) error {
	return r.DB.WithContext(ctx).Create(j).Error
}

func (r *JobRepository) FindByID(ctx context.Context, id uint64) (*model.Job, error) {
	var j model.Job
	err := r.DB.WithContext(ctx).First(&j, id).Error
	return &j, err
}

func (r *JobRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Job{}).Where("title = ?", title).Count(&n).Error
	return n > 0, err
}

func (r *JobRepository) Save(ctx context.Context, j *model.Job) error {
	return r.DB.WithContext(ctx).Save(j).Error
}

func (r *JobRepository) Delete(ctx context.Context, id uint64) error {
	res := r.DB.WithContext(ctx).Delete(&model.Job{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
