package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"budgetmate/internal/middleware"
	"budgetmate/internal/service"
)

type BudgetHandler struct {
	svc *service.BudgetService
	log *slog.Logger
}

// BudgetReq fields are optional; absent fields keep their stored value.
type BudgetReq struct {
	MonthlyIncome      *decimal.Decimal `json:"monthlyIncome"`
	PaymentFrequency   *string          `json:"paymentFrequency"`
	SpendingCategories *[]string        `json:"spendingCategories"`
	TargetSavingsRate  *decimal.Decimal `json:"targetSavingsRate"`
	EmergencyFundGoal  *decimal.Decimal `json:"emergencyFundGoal"`
	AnnualSavingsGoal  *decimal.Decimal `json:"annualSavingsGoal"`
}

func NewBudgetHandler(svc *service.BudgetService, log *slog.Logger) *BudgetHandler {
	return &BudgetHandler{svc: svc, log: log}
}

func (h *BudgetHandler) Get(c *gin.Context) {
	budget, err := h.svc.Get(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		fail(c, h.log, messageKey, err)
		return
	}
	c.JSON(http.StatusOK, budget)
}

func (h *BudgetHandler) Update(c *gin.Context) {
	var req BudgetReq
	if err := bind(c, &req); err != nil {
		fail(c, h.log, messageKey, err)
		return
	}
	budget, err := h.svc.Update(c.Request.Context(), middleware.Identity(c), service.BudgetPatch(req))
	if err != nil {
		fail(c, h.log, messageKey, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Budget settings updated", "budget": budget})
}
