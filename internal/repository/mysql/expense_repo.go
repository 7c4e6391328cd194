package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	"budgetmate/internal/model"
)

type ExpenseRepository struct {
	DB *gorm.DB
}

type EarningRepository struct {
	DB *gorm.DB
}

func (r *ExpenseRepository) Create(ctx context.Context, e *model.Expense) error {
	return r.DB.WithContext(ctx).Create(e).Error
}

func (r *ExpenseRepository) FindByID(ctx context.Context, id uint64) (*model.Expense, error) {
	var e model.Expense
	err := r.DB.WithContext(ctx).First(&e, id).Error
	return &e, err
}

// ListByUser returns the user's expenses, latest date first.
func (r *ExpenseRepository) ListByUser(ctx context.Context, userID uint64) ([]model.Expense, error) {
	var list []model.Expense
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&list).Error
	return list, err
}

// ListBetween returns expenses dated in [from, to).
func (r *ExpenseRepository) ListBetween(ctx context.Context, userID uint64, from, to time.Time) ([]model.Expense, error) {
	var list []model.Expense
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Order("date DESC, id DESC").
		Find(&list).Error
	return list, err
}

func (r *ExpenseRepository) Save(ctx context.Context, e *model.Expense) error {
	return r.DB.WithContext(ctx).Save(e).Error
}

func (r *ExpenseRepository) Delete(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Delete(&model.Expense{}, id).Error
}

func (r *EarningRepository) Create(ctx context.Context, e *model.Earning) error {
	return r.DB.WithContext(ctx).Create(e).Error
}

func (r *EarningRepository) FindByID(ctx context.Context, id uint64) (*model.Earning, error) {
	var e model.Earning
	err := r.DB.WithContext(ctx).First(&e, id).Error
	return &e, err
}

func (r *EarningRepository) ListByUser(ctx context.Context, userID uint64) ([]model.Earning, error) {
	var list []model.Earning
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&list).Error
	return list, err
}

func (r *EarningRepository) Delete(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Delete(&model.Earning{}, id).Error
}
