package mysql

import (
	"context"

	"gorm.io/gorm"

	"budgetmate/internal/model"
)

type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return &user, err
}

// FindByLogin matches either the email or the display name.
func (r *UserRepository) FindByLogin(ctx context.Context, login string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("email = ? OR name = ?", login, login).Order("id ASC").First(&user).Error
	return &user, err
}

// EmailTaken reports whether another user already owns the email.
func (r *UserRepository) EmailTaken(ctx context.Context, email string, exceptID uint64) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.User{}).
		Where("email = ? AND id <> ?", email, exceptID).
		Count(&n).Error
	return n > 0, err
}

func (r *UserRepository) UpdateProfile(ctx context.Context, user *model.User, name, email string) error {
	updates := map[string]any{}
	if name != "" {
		updates["name"] = name
	}
	if email != "" {
		updates["email"] = email
	}
	return r.DB.WithContext(ctx).Model(user).Updates(updates).Error
}

func (r *UserRepository) UpdatePassword(ctx context.Context, user *model.User, hash string) error {
	return r.DB.WithContext(ctx).Model(user).Update("password", hash).Error
}

func (r *UserRepository) UpdateRole(ctx context.Context, user *model.User, role model.Role) error {
	return r.DB.WithContext(ctx).Model(user).Update("role", role).Error
}

// SaveBudget overwrites every budget column of the user.
func (r *UserRepository) SaveBudget(ctx context.Context, user *model.User) error {
	return r.DB.WithContext(ctx).Model(user).
		Select("monthly_income", "payment_frequency", "spending_categories", "target_savings_rate", "emergency_fund_goal", "annual_savings_goal").
		Updates(user).Error
}
