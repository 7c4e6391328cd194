package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DescriptionMaxLen = 255
	GoalNameMaxLen    = 128
)

type Expense struct {
	ID          uint64          `gorm:"primaryKey" json:"id"`
	UserID      uint64          `gorm:"not null;index:idx_expense_user_date,priority:1" json:"user"`
	Amount      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	Category    string          `gorm:"size:64;not null" json:"category"`
	Description string          `gorm:"size:255" json:"description"`
	Date        time.Time       `gorm:"index:idx_expense_user_date,priority:2" json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type Earning struct {
	ID          uint64          `gorm:"primaryKey" json:"id"`
	UserID      uint64          `gorm:"not null;index:idx_earning_user_date,priority:1" json:"user"`
	Amount      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	Source      string          `gorm:"size:64;not null" json:"source"`
	Description string          `gorm:"size:255" json:"description"`
	Date        time.Time       `gorm:"index:idx_earning_user_date,priority:2" json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func init() {
	// Amounts go over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

const DefaultGoalCategory = "General"

type Goal struct {
	ID            uint64          `gorm:"primaryKey" json:"id"`
	UserID        uint64          `gorm:"not null;index" json:"user"`
	Name          string          `gorm:"size:128;not null" json:"name"`
	TargetAmount  decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"targetAmount"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"currentAmount"`
	Category      string          `gorm:"size:64;not null" json:"category"`
	TargetDate    *time.Time      `json:"targetDate,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}
