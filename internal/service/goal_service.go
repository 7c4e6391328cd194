package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"budgetmate/internal/model"
	"budgetmate/internal/pkg"
	"budgetmate/internal/repository/mysql"
)

type GoalInput struct {
	Name          string
	TargetAmount  *decimal.Decimal
	CurrentAmount *decimal.Decimal
	Category      string
	TargetDate    *time.Time
}

type GoalService struct {
	repo *mysql.GoalRepository
}

func (in GoalInput) checkLen() error {
	return errors.Join(
		maxLen("Name", strings.TrimSpace(in.Name), model.GoalNameMaxLen),
		maxLen("Category", strings.TrimSpace(in.Category), model.CategoryMaxLen),
	)
}

func NewGoalService(db *gorm.DB) *GoalService {
	return &GoalService{repo: &mysql.GoalRepository{DB: db}}
}

func (s *GoalService) List(ctx context.Context, actor Actor) ([]model.Goal, error) {
	list, err := s.repo.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	if list == nil {
		list = []model.Goal{}
	}
	return list, nil
}

func (s *GoalService) Create(ctx context.Context, actor Actor, in GoalInput) (*model.Goal, error) {
	if blank(in.Name) {
		return nil, pkg.Validation("Name is required")
	}
	if err := in.checkLen(); err != nil {
		return nil, err
	}
	if in.TargetAmount == nil || !in.TargetAmount.IsPositive() {
		return nil, pkg.Validation("Target amount must be a positive number")
	}
	g := &model.Goal{
		UserID:        actor.ID,
		Name:          strings.TrimSpace(in.Name),
		TargetAmount:  *in.TargetAmount,
		CurrentAmount: decimal.Zero,
		Category:      model.DefaultGoalCategory,
	}
	if in.CurrentAmount != nil {
		if in.CurrentAmount.IsNegative() {
			return nil, pkg.Validation("Current amount cannot be negative")
		}
		g.CurrentAmount = *in.CurrentAmount
	}
	if !blank(in.Category) {
		g.Category = strings.TrimSpace(in.Category)
	}
	if in.TargetDate != nil && !in.TargetDate.IsZero() {
		d := in.TargetDate.UTC()
		g.TargetDate = &d
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}
	return g, nil
}

func (s *GoalService) owned(ctx context.Context, actor Actor, id uint64) (*model.Goal, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Goal not found")
	}
	if !actor.Owns(g.UserID) {
		return nil, errNotAuthorized
	}
	return g, nil
}

// Update applies the non-empty fields of in.
func (s *GoalService) Update(ctx context.Context, actor Actor, id uint64, in GoalInput) (*model.Goal, error) {
	if err := in.checkLen(); err != nil {
		return nil, err
	}
	g, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !blank(in.Name) {
		g.Name = strings.TrimSpace(in.Name)
	}
	if in.TargetAmount != nil {
		if !in.TargetAmount.IsPositive() {
			return nil, pkg.Validation("Target amount must be a positive number")
		}
		g.TargetAmount = *in.TargetAmount
	}
	if in.CurrentAmount != nil {
		if in.CurrentAmount.IsNegative() {
			return nil, pkg.Validation("Current amount cannot be negative")
		}
		g.CurrentAmount = *in.CurrentAmount
	}
	if !blank(in.Category) {
		g.Category = strings.TrimSpace(in.Category)
	}
	if in.TargetDate != nil && !in.TargetDate.IsZero() {
		d := in.TargetDate.UTC()
		g.TargetDate = &d
	}
	if err := s.repo.Save(ctx, g); err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}
	return g, nil
}

// Contribute adds amount to the goal's saved total.
func (s *GoalService) Contribute(ctx context.Context, actor Actor, id uint64, amount decimal.Decimal) (*model.Goal, error) {
	if !amount.IsPositive() {
		return nil, pkg.Validation("Amount must be a positive number")
	}
	g, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.AddAmount(ctx, g.ID, amount); err != nil {
		return nil, fmt.Errorf("contribute: %w", err)
	}
	g, err = s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload goal: %w", err)
	}
	return g, nil
}

func (s *GoalService) Delete(ctx context.Context, actor Actor, id uint64) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return nil
}
