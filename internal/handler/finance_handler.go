package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"budgetmate/internal/middleware"
	"budgetmate/internal/service"
)

type ExpenseHandler struct {
	svc *service.ExpenseService
	log *slog.Logger
}

type ExpenseReq struct {
	Amount      *decimal.Decimal `json:"amount"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	Date        *isoTime         `json:"date"`
}

func (r ExpenseReq) input() service.ExpenseInput {
	return service.ExpenseInput{
		Amount:      r.Amount,
		Category:    r.Category,
		Description: r.Description,
		Date:        r.Date.ptr(),
	}
}

func NewExpenseHandler(svc *service.ExpenseService, log *slog.Logger) *ExpenseHandler {
	return &ExpenseHandler{svc: svc, log: log}
}

func (h *ExpenseHandler) List(c *gin.Context) {
	expenses, err := h.svc.List(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	c.JSON(http.StatusOK, expenses)
}

func (h *ExpenseHandler) Create(c *gin.Context) {
	var req ExpenseReq
	if err := bind(c, &req); err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	expense, err := h.svc.Create(c.Request.Context(), middleware.Identity(c), req.input())
	if err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	c.JSON(http.StatusOK, expense)
}

func (h *ExpenseHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id", "expense")
	if err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	var req ExpenseReq
	if err := bind(c, &req); err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	expense, err := h.svc.Update(c.Request.Context(), middleware.Identity(c), id, req.input())
	if err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	c.JSON(http.StatusOK, expense)
}

func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id", "expense")
	if err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), middleware.Identity(c), id); err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Expense removed"})
}

// Summary totals one month, given as ?month=YYYY-MM (current month when omitted).
func (h *ExpenseHandler) Summary(c *gin.Context) {
	summary, err := h.svc.Summary(c.Request.Context(), middleware.Identity(c), c.Query("month"))
	if err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

type EarningHandler struct {
	svc *service.EarningService
	log *slog.Logger
}

type EarningReq struct {
	Amount      *decimal.Decimal `json:"amount"`
	Source      string           `json:"source"`
	Description string           `json:"description"`
	Date        *isoTime         `json:"date"`
}

func NewEarningHandler(svc *service.EarningService, log *slog.Logger) *EarningHandler {
	return &EarningHandler{svc: svc, log: log}
}

func (h *EarningHandler) List(c *gin.Context) {
	earnings, err := h.svc.List(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	c.JSON(http.StatusOK, earnings)
}

func (h *EarningHandler) Create(c *gin.Context) {
	var req EarningReq
	if err := bind(c, &req); err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	earning, err := h.svc.Create(c.Request.Context(), middleware.Identity(c), service.EarningInput{
		Amount:      req.Amount,
		Source:      req.Source,
		Description: req.Description,
		Date:        req.Date.ptr(),
	})
	if err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	c.JSON(http.StatusOK, earning)
}

func (h *EarningHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id", "earning")
	if err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), middleware.Identity(c), id); err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Earning removed"})
}
