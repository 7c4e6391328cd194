package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"budgetmate/internal/model"
	"budgetmate/internal/pkg"
	"budgetmate/internal/repository/mysql"
)

// BudgetPatch carries only the fields the client sent.
type BudgetPatch struct {
	MonthlyIncome      *decimal.Decimal
	PaymentFrequency   *string
	SpendingCategories *[]string
	TargetSavingsRate  *decimal.Decimal
	EmergencyFundGoal  *decimal.Decimal
	AnnualSavingsGoal  *decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

func validFrequency(f string) bool {
	switch f {
	case "", "weekly", "biweekly", "monthly":
		return true
	default:
		return false
	}
}

func (p BudgetPatch) validate() error {
	if p.PaymentFrequency != nil && !validFrequency(*p.PaymentFrequency) {
		return pkg.Validation("Payment frequency must be weekly, biweekly or monthly")
	}
	for _, v := range []*decimal.Decimal{p.MonthlyIncome, p.EmergencyFundGoal, p.AnnualSavingsGoal} {
		if v != nil && v.IsNegative() {
			return pkg.Validation("Amounts cannot be negative")
		}
	}
	if r := p.TargetSavingsRate; r != nil && (r.IsNegative() || r.GreaterThan(hundred)) {
		return pkg.Validation("Target savings rate must be between 0 and 100")
	}
	return nil
}

type BudgetService struct {
	users *mysql.UserRepository
}

func NewBudgetService(db *gorm.DB) *BudgetService {
	return &BudgetService{users: &mysql.UserRepository{DB: db}}
}

func (s *BudgetService) Get(ctx context.Context, actor Actor) (*model.BudgetSettings, error) {
	u, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, notFoundOr(err, "User not found")
	}
	b := normalizeBudget(u.BudgetSettings)
	return &b, nil
}

func (s *BudgetService) Update(ctx context.Context, actor Actor, p BudgetPatch) (*model.BudgetSettings, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	u, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, notFoundOr(err, "User not found")
	}
	b := &u.BudgetSettings
	if p.MonthlyIncome != nil {
		b.MonthlyIncome = *p.MonthlyIncome
	}
	if p.PaymentFrequency != nil {
		b.PaymentFrequency = *p.PaymentFrequency
	}
	if p.SpendingCategories != nil {
		b.SpendingCategories = *p.SpendingCategories
	}
	if p.TargetSavingsRate != nil {
		b.TargetSavingsRate = *p.TargetSavingsRate
	}
	if p.EmergencyFundGoal != nil {
		b.EmergencyFundGoal = *p.EmergencyFundGoal
	}
	if p.AnnualSavingsGoal != nil {
		b.AnnualSavingsGoal = *p.AnnualSavingsGoal
	}
	if err := s.users.SaveBudget(ctx, u); err != nil {
		return nil, fmt.Errorf("save budget: %w", err)
	}
	out := normalizeBudget(*b)
	return &out, nil
}

// normalizeBudget renders a missing category list as empty.
func normalizeBudget(b model.BudgetSettings) model.BudgetSettings {
	if b.SpendingCategories == nil {
		b.SpendingCategories = []string{}
	}
	return b
}
