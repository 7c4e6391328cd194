package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"budgetmate/internal/middleware"
	"budgetmate/internal/service"
)

type NotificationHandler struct {
	svc *service.NotificationService
	log *slog.Logger
}

func NewNotificationHandler(svc *service.NotificationService, log *slog.Logger) *NotificationHandler {
	return &NotificationHandler{svc: svc, log: log}
}

func (h *NotificationHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		fail(c, h.log, msgKey, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
