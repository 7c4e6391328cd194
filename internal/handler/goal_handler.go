package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"budgetmate/internal/middleware"
	"budgetmate/internal/pkg"
	"budgetmate/internal/service"
)

type GoalHandler struct {
	svc *service.GoalService
	log *slog.Logger
}

type GoalReq struct {
	Name          string           `json:"name"`
	TargetAmount  *decimal.Decimal `json:"targetAmount"`
	CurrentAmount *decimal.Decimal `json:"currentAmount"`
	Category      string           `json:"category"`
	TargetDate    *isoTime         `json:"targetDate"`
}

func (r GoalReq) input() service.GoalInput {
	return service.GoalInput{
		Name:          r.Name,
		TargetAmount:  r.TargetAmount,
		CurrentAmount: r.CurrentAmount,
		Category:      r.Category,
		TargetDate:    r.TargetDate.ptr(),
	}
}

type ContributeReq struct {
	Amount *decimal.Decimal `json:"amount"`
}

func NewGoalHandler(svc *service.GoalService, log *slog.Logger) *GoalHandler {
	return &GoalHandler{svc: svc, log: log}
}

func (h *GoalHandler) List(c *gin.Context) {
	goals, err := h.svc.List(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

func (h *GoalHandler) Create(c *gin.Context) {
	var req GoalReq
	if err := bind(c, &req); err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	goal, err := h.svc.Create(c.Request.Context(), middleware.Identity(c), req.input())
	if err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	c.JSON(http.StatusCreated, goal)
}

func (h *GoalHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id", "goal")
	if err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	var req GoalReq
	if err := bind(c, &req); err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	goal, err := h.svc.Update(c.Request.Context(), middleware.Identity(c), id, req.input())
	if err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) Contribute(c *gin.Context) {
	id, err := pathID(c, "id", "goal")
	if err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	var req ContributeReq
	if err := bind(c, &req); err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	if req.Amount == nil {
		fail(c, h.log, msgKey, pkg.Validation("Amount must be a number"))
		return
	}
	goal, err := h.svc.Contribute(c.Request.Context(), middleware.Identity(c), id, *req.Amount)
	if err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id", "goal")
	if err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), middleware.Identity(c), id); err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Goal removed"})
}
