package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsAdmin treats unknown roles as regular users.
func (r Role) IsAdmin() bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleUser:
		return false
	default:
		return false
	}
}

const (
	NameMaxLen  = 64
	EmailMaxLen = 128
)

type User struct {
	ID         uint64  `gorm:"primaryKey" json:"id"`
	Name       string  `gorm:"size:64;index" json:"name"`
	Email      string  `gorm:"uniqueIndex;size:128;not null" json:"email"`
	Password   *string `gorm:"size:255" json:"-"` // nil for Google-only accounts
	GoogleID   string  `gorm:"size:64;index" json:"-"`
	Role       Role    `gorm:"size:16;not null" json:"role"`
	AvatarSeed string  `gorm:"size:64" json:"avatarSeed"`

	BudgetSettings `gorm:"embedded"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasPassword is false for accounts created through Google sign-in.
func (u *User) HasPassword() bool {
	return u.Password != nil && *u.Password != ""
}

type BudgetSettings struct {
	MonthlyIncome      decimal.Decimal             `gorm:"type:decimal(14,2);not null" json:"monthlyIncome"`
	PaymentFrequency   string                      `gorm:"size:16" json:"paymentFrequency"`
	SpendingCategories datatypes.JSONSlice[string] `json:"spendingCategories"`
	TargetSavingsRate  decimal.Decimal             `gorm:"type:decimal(5,2);not null" json:"targetSavingsRate"`
	EmergencyFundGoal  decimal.Decimal             `gorm:"type:decimal(14,2);not null" json:"emergencyFundGoal"`
	AnnualSavingsGoal  decimal.Decimal             `gorm:"type:decimal(14,2);not null" json:"annualSavingsGoal"`
}
