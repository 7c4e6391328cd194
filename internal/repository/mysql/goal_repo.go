package mysql

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"budgetmate/internal/model"
)

type GoalRepository struct {
	DB *gorm.DB
}

func (r *GoalRepository) Create(ctx context.Context, g *model.Goal) error {
	return r.DB.WithContext(ctx).Create(g).Error
}

func (r *GoalRepository) FindByID(ctx context.Context, id uint64) (*model.Goal, error) {
	var g model.Goal
	err := r.DB.WithContext(ctx).First(&g, id).Error
	return &g, err
}

func (r *GoalRepository) ListByUser(ctx context.Context, userID uint64) ([]model.Goal, error) {
	var list []model.Goal
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id DESC").Find(&list).Error
	return list, err
}

func (r *GoalRepository) Save(ctx context.Context, g *model.Goal) error {
	return r.DB.WithContext(ctx).Save(g).Error
}

// AddAmount increments current_amount in place so concurrent contributions are not lost.
func (r *GoalRepository) AddAmount(ctx context.Context, id uint64, amount decimal.Decimal) error {
	return r.DB.WithContext(ctx).Model(&model.Goal{}).Where("id = ?", id).
		UpdateColumn("current_amount", gorm.Expr("current_amount + ?", amount.StringFixed(2))).Error
}

func (r *GoalRepository) Delete(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Delete(&model.Goal{}, id).Error
}
