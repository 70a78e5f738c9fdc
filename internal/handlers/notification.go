package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linkup-social/linkup/internal/middleware"
	"github.com/linkup-social/linkup/internal/services"
	"github.com/linkup-social/linkup/pkg/logger"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
	logger              *logger.Logger
}

func NewNotificationHandler(notificationService *services.NotificationService, logger *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		logger:              logger,
	}
}

func (h *NotificationHandler) List(c *gin.Context) {
	offset, limit := pagination(c)

	notifications, err := h.notificationService.List(c.Request.Context(), middleware.GetUserID(c), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"notifications": notifications,
	})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notificationService.MarkAllRead(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.notificationService.UnreadCount(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   count,
	})
}
