package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"budgetmate/internal/model"
	"budgetmate/internal/pkg"
	"budgetmate/internal/repository/mysql"
)

// ExpenseInput is used for create and for partial update; nil or empty fields are left alone on update.
type ExpenseInput struct {
	Amount      *decimal.Decimal
	Category    string
	Description string
	Date        *time.Time
}

type EarningInput struct {
	Amount      *decimal.Decimal
	Source      string
	Description string
	Date        *time.Time
}

type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

// ExpenseSummary aggregates one calendar month (UTC).
type ExpenseSummary struct {
	Month      string          `json:"month"`
	Total      decimal.Decimal `json:"total"`
	Count      int             `json:"count"`
	Categories []CategoryTotal `json:"categories"`
}

func (in ExpenseInput) checkLen() error {
	return errors.Join(
		maxLen("Category", strings.TrimSpace(in.Category), model.CategoryMaxLen),
		maxLen("Description", in.Description, model.DescriptionMaxLen),
	)
}

func dateOrNow(d *time.Time) time.Time {
	if d == nil || d.IsZero() {
		return time.Now().UTC()
	}
	return d.UTC()
}

type ExpenseService struct {
	repo *mysql.ExpenseRepository
}

func NewExpenseService(db *gorm.DB) *ExpenseService {
	return &ExpenseService{repo: &mysql.ExpenseRepository{DB: db}}
}

func (s *ExpenseService) List(ctx context.Context, actor Actor) ([]model.Expense, error) {
	list, err := s.repo.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	if list == nil {
		list = []model.Expense{}
	}
	return list, nil
}

func (s *ExpenseService) Create(ctx context.Context, actor Actor, in ExpenseInput) (*model.Expense, error) {
	if in.Amount == nil {
		return nil, pkg.Validation("Amount must be a number")
	}
	if blank(in.Category) {
		return nil, pkg.Validation("Category is required")
	}
	if err := in.checkLen(); err != nil {
		return nil, err
	}
	e := &model.Expense{
		UserID:      actor.ID,
		Amount:      *in.Amount,
		Category:    strings.TrimSpace(in.Category),
		Description: in.Description,
		Date:        dateOrNow(in.Date),
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return e, nil
}

func (s *ExpenseService) owned(ctx context.Context, actor Actor, id uint64) (*model.Expense, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Expense not found")
	}
	if !actor.Owns(e.UserID) {
		return nil, errNotAuthorized
	}
	return e, nil
}

func (s *ExpenseService) Update(ctx context.Context, actor Actor, id uint64, in ExpenseInput) (*model.Expense, error) {
	if err := in.checkLen(); err != nil {
		return nil, err
	}
	e, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.Amount != nil {
		e.Amount = *in.Amount
	}
	if !blank(in.Category) {
		e.Category = strings.TrimSpace(in.Category)
	}
	if in.Description != "" {
		e.Description = in.Description
	}
	if in.Date != nil && !in.Date.IsZero() {
		e.Date = in.Date.UTC()
	}
	if err := s.repo.Save(ctx, e); err != nil {
		return nil, fmt.Errorf("update expense: %w", err)
	}
	return e, nil
}

func (s *ExpenseService) Delete(ctx context.Context, actor Actor, id uint64) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

// Summary totals the actor's expenses for month ("YYYY-MM"); empty means the current month.
func (s *ExpenseService) Summary(ctx context.Context, actor Actor, month string) (*ExpenseSummary, error) {
	var from time.Time
	if month == "" {
		now := time.Now().UTC()
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	} else {
		t, err := time.Parse("2006-01", month)
		if err != nil {
			return nil, pkg.Validation("month must be in YYYY-MM format")
		}
		from = t.UTC()
	}
	to := from.AddDate(0, 1, 0)

	list, err := s.repo.ListBetween(ctx, actor.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("summarize expenses: %w", err)
	}

	byCategory := map[string]*CategoryTotal{}
	sum := &ExpenseSummary{Month: from.Format("2006-01"), Total: decimal.Zero, Categories: []CategoryTotal{}}
	for _, e := range list {
		ct, ok := byCategory[e.Category]
		if !ok {
			ct = &CategoryTotal{Category: e.Category, Total: decimal.Zero}
			byCategory[e.Category] = ct
		}
		ct.Total = ct.Total.Add(e.Amount)
		ct.Count++
		sum.Total = sum.Total.Add(e.Amount)
		sum.Count++
	}
	for _, ct := range byCategory {
		sum.Categories = append(sum.Categories, *ct)
	}
	// Largest spend first; ties by name.
	slices.SortFunc(sum.Categories, func(a, b CategoryTotal) int {
		if c := b.Total.Cmp(a.Total); c != 0 {
			return c
		}
		return strings.Compare(a.Category, b.Category)
	})
	return sum, nil
}

type EarningService struct {
	repo *mysql.EarningRepository
}

func NewEarningService(db *gorm.DB) *EarningService {
	return &EarningService{repo: &mysql.EarningRepository{DB: db}}
}

func (s *EarningService) List(ctx context.Context, actor Actor) ([]model.Earning, error) {
	list, err := s.repo.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list earnings: %w", err)
	}
	if list == nil {
		list = []model.Earning{}
	}
	return list, nil
}

func (s *EarningService) Create(ctx context.Context, actor Actor, in EarningInput) (*model.Earning, error) {
	if in.Amount == nil {
		return nil, pkg.Validation("Amount must be a number")
	}
	if blank(in.Source) {
		return nil, pkg.Validation("Source is required")
	}
	if err := errors.Join(
		maxLen("Source", strings.TrimSpace(in.Source), model.CategoryMaxLen),
		maxLen("Description", in.Description, model.DescriptionMaxLen),
	); err != nil {
		return nil, err
	}
	e := &model.Earning{
		UserID:      actor.ID,
		Amount:      *in.Amount,
		Source:      strings.TrimSpace(in.Source),
		Description: in.Description,
		Date:        dateOrNow(in.Date),
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create earning: %w", err)
	}
	return e, nil
}

func (s *EarningService) Delete(ctx context.Context, actor Actor, id uint64) error {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "Earning not found")
	}
	if !actor.Owns(e.UserID) {
		return errNotAuthorized
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete earning: %w", err)
	}
	return nil
}
